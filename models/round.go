package models

// Round is an ordered set of matches belonging to one stage of a bracket.
// Round numbers are 1-based and strictly increasing within a tournament.
type Round struct {
	Number  int     `json:"number"`
	Matches []Match `json:"matches"`
}

// Winners returns one winner per match, order-preserving.
func (r Round) Winners() []Candidate {
	out := make([]Candidate, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Winner
	}
	return out
}
