package models

import "sort"

// PointsPerWin is the round-robin and Swiss scoring rate.
const PointsPerWin = 3

// Standing is a candidate's running record in a non-elimination format.
// OpponentsFaced keys are candidate ids; byes are never recorded as
// opponents.
type Standing struct {
	Candidate      Candidate       `json:"candidate"`
	Wins           int             `json:"wins"`
	Losses         int             `json:"losses"`
	Points         int             `json:"points"`
	OpponentsFaced map[string]bool `json:"opponents_faced,omitempty"`
}

// NewStanding creates an empty standing for a candidate.
func NewStanding(c Candidate) *Standing {
	return &Standing{Candidate: c, OpponentsFaced: map[string]bool{}}
}

// RecordWin credits a win against opponent. Bye opponents count for the win
// but are not recorded as faced.
func (s *Standing) RecordWin(opponent Candidate) {
	s.Wins++
	s.Points += PointsPerWin
	s.face(opponent)
}

// RecordLoss debits a loss against opponent.
func (s *Standing) RecordLoss(opponent Candidate) {
	s.Losses++
	s.face(opponent)
}

func (s *Standing) face(opponent Candidate) {
	if opponent.Bye {
		return
	}
	if s.OpponentsFaced == nil {
		s.OpponentsFaced = map[string]bool{}
	}
	s.OpponentsFaced[opponent.ID] = true
}

// Faced reports whether the candidate has already played opponent.
func (s *Standing) Faced(opponent Candidate) bool {
	return s.OpponentsFaced[opponent.ID]
}

// SortStandings orders standings by points descending, then wins
// descending. The sort is stable so earlier input order breaks ties.
func SortStandings(standings []*Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].Wins > standings[j].Wins
	})
}
