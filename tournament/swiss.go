package tournament

import (
	"log/slog"
	"sort"

	"github.com/inkfold/tourney/models"
)

// swiss runs a fixed number of passes. Before each pass the field is
// sorted by wins, then rating, and consecutive candidates who have not yet
// met are paired greedily. When a candidate's every legal opponent has
// already been played, the next unpaired candidate is taken instead: a
// tolerated rematch, logged for audit. Odd fields give the trailing
// candidate a bye win for the pass.
type swiss struct {
	candidates []models.Candidate
	standings  map[string]*models.Standing
	maxRounds  int
	planned    int
	absorbed   int
	logger     *slog.Logger
}

func newSwiss(seeded []models.Candidate, maxRounds int, logger *slog.Logger) *swiss {
	if maxRounds <= 0 {
		maxRounds = models.DefaultSwissRounds(len(seeded))
	}
	standings := make(map[string]*models.Standing, len(seeded))
	for _, c := range seeded {
		standings[c.ID] = models.NewStanding(c)
	}
	return &swiss{
		candidates: append([]models.Candidate(nil), seeded...),
		standings:  standings,
		maxRounds:  maxRounds,
		logger:     logger,
	}
}

func (s *swiss) NextPairings(prior []models.Round) ([]Pairing, error) {
	for ; s.absorbed < len(prior); s.absorbed++ {
		s.absorb(prior[s.absorbed])
	}
	if s.planned >= s.maxRounds || len(s.candidates) < 2 {
		return nil, errBracketDone
	}
	s.planned++

	field := append([]models.Candidate(nil), s.candidates...)
	sort.SliceStable(field, func(i, j int) bool {
		si, sj := s.standings[field[i].ID], s.standings[field[j].ID]
		if si.Wins != sj.Wins {
			return si.Wins > sj.Wins
		}
		return field[i].Rating > field[j].Rating
	})

	var pairings []Pairing
	paired := make([]bool, len(field))
	for i, a := range field {
		if paired[i] {
			continue
		}
		paired[i] = true

		opponent := -1
		for j := i + 1; j < len(field); j++ {
			if !paired[j] && !s.standings[a.ID].Faced(field[j]) {
				opponent = j
				break
			}
		}
		if opponent == -1 {
			for j := i + 1; j < len(field); j++ {
				if !paired[j] {
					opponent = j
					if s.logger != nil {
						s.logger.Warn("swiss pairing has no fresh opponent, allowing rematch",
							"candidate", a.Title, "opponent", field[j].Title, "round", s.planned)
					}
					break
				}
			}
		}
		if opponent == -1 {
			// Trailing candidate in an odd field sits the pass out with
			// a bye win.
			pairings = append(pairings, Pairing{A: a, B: models.ByeCandidate(0)})
			continue
		}
		paired[opponent] = true
		pairings = append(pairings, Pairing{A: a, B: field[opponent]})
	}
	return pairings, nil
}

func (s *swiss) absorb(round models.Round) {
	for _, m := range round.Matches {
		winner, loser := m.Winner, m.Loser()
		if st := s.standings[winner.ID]; st != nil {
			st.RecordWin(loser)
		}
		if st := s.standings[loser.ID]; st != nil {
			st.RecordLoss(winner)
		}
	}
}
