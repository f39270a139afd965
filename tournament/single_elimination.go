package tournament

import (
	"fmt"

	"github.com/inkfold/tourney/models"
)

// singleElimination pairs consecutive seeds and carries winners forward
// until one candidate remains. The entrant pool is padded to a power of
// two, so every round halves it cleanly; total matches come to
// nextPowerOfTwo(N)-1.
type singleElimination struct {
	entrants []models.Candidate
}

func newSingleElimination(seeded []models.Candidate) *singleElimination {
	return &singleElimination{entrants: bracketOrder(padWithByes(seeded))}
}

func (s *singleElimination) NextPairings(prior []models.Round) ([]Pairing, error) {
	pool := s.entrants
	if len(prior) > 0 {
		pool = prior[len(prior)-1].Winners()
	}
	if len(pool) < 2 {
		return nil, errBracketDone
	}
	pairings, err := pairConsecutive(pool, models.BracketMain)
	if err != nil {
		return nil, fmt.Errorf("single elimination: %w", err)
	}
	return pairings, nil
}
