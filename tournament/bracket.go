package tournament

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/inkfold/tourney/models"
)

// Pairing is a planned match that has not been judged yet.
type Pairing struct {
	A, B    models.Candidate
	Bracket models.BracketSide
}

// errBracketDone signals that a bracket's terminal condition has been met
// and no further rounds exist.
var errBracketDone = errors.New("bracket complete")

// bracket plans the rounds of one tournament format. NextPairings reads
// only completed prior rounds; it is called again after each planned round
// has been fully evaluated.
type bracket interface {
	NextPairings(prior []models.Round) ([]Pairing, error)
}

// newBracket dispatches on the configured format.
func newBracket(cfg models.TournamentConfig, seeded []models.Candidate, logger *slog.Logger) (bracket, error) {
	switch cfg.Format {
	case models.FormatSingleElimination:
		return newSingleElimination(seeded), nil
	case models.FormatDoubleElimination:
		return newDoubleElimination(seeded), nil
	case models.FormatRoundRobin:
		return newRoundRobin(seeded), nil
	case models.FormatSwiss:
		return newSwiss(seeded, cfg.MaxRounds, logger), nil
	default:
		return nil, fmt.Errorf("%w: no bracket for format %v", models.ErrInvalidConfig, cfg.Format)
	}
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// padWithByes extends a seeded pool to the next power of two. Byes take
// the highest seed numbers.
func padWithByes(seeded []models.Candidate) []models.Candidate {
	out := append([]models.Candidate(nil), seeded...)
	for len(out) < nextPowerOfTwo(len(seeded)) {
		out = append(out, models.ByeCandidate(len(out)+1))
	}
	return out
}

// bracketOrder arranges a padded pool so consecutive pairing plays seed i
// against seed N+1-i: top seeds meet the byes first.
func bracketOrder(padded []models.Candidate) []models.Candidate {
	out := make([]models.Candidate, 0, len(padded))
	for i, j := 0, len(padded)-1; i < j; i, j = i+1, j-1 {
		out = append(out, padded[i], padded[j])
	}
	return out
}

// pairConsecutive turns an even pool into pairings in order. An odd pool
// is a bracket bug, never a judging condition.
func pairConsecutive(pool []models.Candidate, side models.BracketSide) ([]Pairing, error) {
	if len(pool)%2 != 0 {
		return nil, fmt.Errorf("%w: odd pool of %d in %s bracket", models.ErrBracket, len(pool), side)
	}
	pairings := make([]Pairing, 0, len(pool)/2)
	for i := 0; i < len(pool); i += 2 {
		pairings = append(pairings, Pairing{A: pool[i], B: pool[i+1], Bracket: side})
	}
	return pairings, nil
}
