package models

import "github.com/rs/xid"

// CandidateStatus tracks a candidate's fate within a single tournament.
type CandidateStatus int32

const (
	CandidateActive     CandidateStatus = 0
	CandidateEliminated CandidateStatus = 1
)

func (s CandidateStatus) String() string {
	if s == CandidateEliminated {
		return "eliminated"
	}
	return "active"
}

// ByeRawOutput is recorded as the judge output of matches decided by a bye.
// Byes never reach the judge.
const ByeRawOutput = "bye: advanced without judging"

// Candidate is an item being ranked. Candidates are value objects: a
// tournament works on its own copies and never mutates the caller's
// originals. Byes carry an explicit flag rather than a sentinel title so a
// real candidate can never be mistaken for one.
type Candidate struct {
	ID         string            `json:"id" yaml:"id"`
	Title      string            `json:"title" yaml:"title"`
	Summary    string            `json:"summary,omitempty" yaml:"summary,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	// Rating is an externally supplied quality signal, consumed by
	// rating-based seeding.
	Rating float64 `json:"rating,omitempty" yaml:"rating,omitempty"`

	// Seed is assigned by the seeding strategy, 1..N, lower is stronger.
	Seed int `json:"seed,omitempty" yaml:"seed,omitempty"`

	Bye    bool            `json:"bye,omitempty" yaml:"bye,omitempty"`
	Status CandidateStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// NewCandidate creates a candidate with a generator-assigned id.
func NewCandidate(title, summary string) Candidate {
	return Candidate{
		ID:      xid.New().String(),
		Title:   title,
		Summary: summary,
	}
}

// ByeCandidate creates the placeholder opponent used to pad elimination
// pools to a power of two. It loses to any real candidate without judging.
func ByeCandidate(seed int) Candidate {
	return Candidate{
		ID:    "bye-" + xid.New().String(),
		Title: "BYE",
		Seed:  seed,
		Bye:   true,
	}
}

// Clone returns a copy whose attribute bag is independent of the original.
func (c Candidate) Clone() Candidate {
	out := c
	if c.Attributes != nil {
		out.Attributes = make(map[string]string, len(c.Attributes))
		for k, v := range c.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}

// Same reports whether two candidate values refer to the same candidate.
func (c Candidate) Same(other Candidate) bool {
	return c.ID == other.ID
}
