package tournament

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/inkfold/tourney/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// makeCandidates builds n candidates titled c1..cn with strictly
// descending ratings, so c1 is the strongest.
func makeCandidates(n int) []models.Candidate {
	out := make([]models.Candidate, n)
	for i := range out {
		c := models.NewCandidate(fmt.Sprintf("c%d", i+1), "")
		c.Rating = float64(n - i)
		out[i] = c
	}
	return out
}

// ratingJudge always favors the higher-rated candidate, decisively enough
// to stay clear of the near-tie threshold.
var ratingJudge = models.JudgeFunc(func(ctx context.Context, a, b models.Candidate, crit *models.JudgingCriterion, params map[string]string) (models.Verdict, error) {
	if a.Rating >= b.Rating {
		return models.Verdict{ScoreA: 9, ScoreB: 1, Scored: true, RawText: "rating"}, nil
	}
	return models.Verdict{ScoreA: 1, ScoreB: 9, Scored: true, RawText: "rating"}, nil
})

func countMatches(rounds []models.Round) int {
	total := 0
	for _, r := range rounds {
		total += len(r.Matches)
	}
	return total
}

// pairKey identifies an unordered pairing.
func pairKey(a, b models.Candidate) string {
	if a.ID < b.ID {
		return a.ID + "|" + b.ID
	}
	return b.ID + "|" + a.ID
}
