package tournament

import (
	"fmt"

	"github.com/inkfold/tourney/models"
)

// doubleElimination keeps two pools. Winners-bracket losers drop into the
// losers pool; a losers-bracket loss eliminates. Each planning pass plays a
// winners-bracket round plus, when the losers pool has at least two
// members, a losers-bracket round. The tournament ends on a single grand
// final between the two pool survivors; there is no bracket-reset match,
// so the grand final decides outright even when the losers-bracket
// finalist wins it.
type doubleElimination struct {
	winners  []models.Candidate
	losers   []models.Candidate
	absorbed int
	done     bool
}

func newDoubleElimination(seeded []models.Candidate) *doubleElimination {
	return &doubleElimination{winners: bracketOrder(padWithByes(seeded))}
}

func (d *doubleElimination) NextPairings(prior []models.Round) ([]Pairing, error) {
	for ; d.absorbed < len(prior); d.absorbed++ {
		d.absorb(prior[d.absorbed])
	}
	if d.done {
		return nil, errBracketDone
	}

	var pairings []Pairing
	if len(d.winners) >= 2 {
		ps, err := pairConsecutive(d.winners, models.BracketWinners)
		if err != nil {
			return nil, fmt.Errorf("double elimination: %w", err)
		}
		pairings = append(pairings, ps...)
		d.winners = nil
	}
	if len(d.losers) >= 2 {
		pool := d.losers
		d.losers = nil
		if len(pool)%2 != 0 {
			// Odd losers pool: the trailing candidate waits for the
			// next pass.
			d.losers = pool[len(pool)-1:]
			pool = pool[:len(pool)-1]
		}
		ps, err := pairConsecutive(pool, models.BracketLosers)
		if err != nil {
			return nil, fmt.Errorf("double elimination: %w", err)
		}
		pairings = append(pairings, ps...)
	}
	if len(pairings) > 0 {
		return pairings, nil
	}

	switch {
	case len(d.winners) == 1 && len(d.losers) == 1:
		final := Pairing{A: d.winners[0], B: d.losers[0], Bracket: models.BracketFinal}
		d.winners, d.losers = nil, nil
		return []Pairing{final}, nil
	case len(d.winners) == 1 && len(d.losers) == 0:
		// Every potential losers-bracket entrant was a bye; the winners
		// bracket survivor takes the tournament without a grand final.
		d.done = true
		return nil, errBracketDone
	case len(d.winners) == 0 && len(d.losers) <= 1:
		d.done = true
		return nil, errBracketDone
	default:
		return nil, fmt.Errorf("%w: double elimination stalled with %d winners and %d losers",
			models.ErrBracket, len(d.winners), len(d.losers))
	}
}

func (d *doubleElimination) absorb(round models.Round) {
	for _, m := range round.Matches {
		switch m.Bracket {
		case models.BracketWinners:
			d.winners = append(d.winners, m.Winner)
			if loser := m.Loser(); !loser.Bye {
				d.losers = append(d.losers, loser)
			}
		case models.BracketLosers:
			if !m.Winner.Bye {
				d.losers = append(d.losers, m.Winner)
			}
		case models.BracketFinal:
			d.done = true
		}
	}
}
