package tournament

import "github.com/inkfold/tourney/models"

// roundRobin plays every unordered pair of candidates exactly once:
// N*(N-1)/2 matches. No match depends on any other, so the whole schedule
// is planned in a single pass and each match is recorded as its own round.
type roundRobin struct {
	pairs  []Pairing
	issued bool
}

func newRoundRobin(seeded []models.Candidate) *roundRobin {
	r := &roundRobin{}
	for i := 0; i < len(seeded); i++ {
		for j := i + 1; j < len(seeded); j++ {
			r.pairs = append(r.pairs, Pairing{A: seeded[i], B: seeded[j]})
		}
	}
	return r
}

func (r *roundRobin) NextPairings(prior []models.Round) ([]Pairing, error) {
	if r.issued {
		return nil, errBracketDone
	}
	r.issued = true
	if len(r.pairs) == 0 {
		return nil, errBracketDone
	}
	return r.pairs, nil
}
