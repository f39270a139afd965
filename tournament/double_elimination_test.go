package tournament

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfold/tourney/models"
)

func TestDoubleEliminationStrongestWins(t *testing.T) {
	for n := 2; n <= 6; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			cfg := models.TournamentConfig{
				Format:  models.FormatDoubleElimination,
				Seeding: models.SeedingRatingBased,
			}
			tour, err := New(cfg, makeCandidates(n), ratingJudge, testLogger())
			require.NoError(t, err)
			require.NoError(t, tour.Run(context.Background(), Options{}))

			winner := tour.Winner()
			require.NotNil(t, winner)
			assert.False(t, winner.Bye)
			assert.Equal(t, "c1", winner.Title)
		})
	}
}

// A single loss must not eliminate: a candidate dropped to the losers
// bracket in round one can still win the whole tournament.
func TestDoubleEliminationLosersBracketComeback(t *testing.T) {
	// The strongest candidate is upset in its opening match, then wins
	// everything after. Runs are sequential here, so the flag needs no
	// locking.
	upset := false
	upsetJudge := models.JudgeFunc(func(ctx context.Context, a, b models.Candidate, crit *models.JudgingCriterion, params map[string]string) (models.Verdict, error) {
		if !upset && a.Title == "c1" && b.Title == "c4" {
			upset = true
			return models.Verdict{ScoreA: 1, ScoreB: 9, Scored: true, RawText: "upset"}, nil
		}
		if !upset && a.Title == "c4" && b.Title == "c1" {
			upset = true
			return models.Verdict{ScoreA: 9, ScoreB: 1, Scored: true, RawText: "upset"}, nil
		}
		return ratingJudge.Judge(ctx, a, b, crit, params)
	})

	cfg := models.TournamentConfig{
		Format:  models.FormatDoubleElimination,
		Seeding: models.SeedingRatingBased,
		// One criterion, so the one-shot upset decides a whole match.
		Criteria: []models.JudgingCriterion{{Name: "market_appeal", Weight: 1}},
	}
	tour, err := New(cfg, makeCandidates(4), upsetJudge, testLogger())
	require.NoError(t, err)
	require.NoError(t, tour.Run(context.Background(), Options{}))

	winner := tour.Winner()
	require.NotNil(t, winner)
	assert.Equal(t, "c1", winner.Title, "one loss must not be fatal")

	// c1 did lose once along the way.
	losses := 0
	for _, round := range tour.Rounds() {
		for _, m := range round.Matches {
			if m.Loser().Title == "c1" {
				losses++
			}
		}
	}
	assert.Equal(t, 1, losses)

	// The deciding match is tagged as the grand final.
	rounds := tour.Rounds()
	last := rounds[len(rounds)-1]
	require.Len(t, last.Matches, 1)
	assert.Equal(t, models.BracketFinal, last.Matches[0].Bracket)
}

func TestDoubleEliminationBracketTags(t *testing.T) {
	cfg := models.TournamentConfig{
		Format:  models.FormatDoubleElimination,
		Seeding: models.SeedingRatingBased,
	}
	tour, err := New(cfg, makeCandidates(4), ratingJudge, testLogger())
	require.NoError(t, err)
	require.NoError(t, tour.Run(context.Background(), Options{}))

	seen := map[models.BracketSide]int{}
	for _, round := range tour.Rounds() {
		for _, m := range round.Matches {
			seen[m.Bracket]++
		}
	}
	assert.Positive(t, seen[models.BracketWinners])
	assert.Positive(t, seen[models.BracketLosers])
	assert.Equal(t, 1, seen[models.BracketFinal])
	assert.Zero(t, seen[models.BracketMain])
}

// Losing the grand final is a second loss for the winners-bracket
// finalist only when they arrived via the losers bracket; either way the
// final alone decides, with no bracket-reset match.
func TestDoubleEliminationSingleGrandFinal(t *testing.T) {
	cfg := models.TournamentConfig{
		Format:  models.FormatDoubleElimination,
		Seeding: models.SeedingRatingBased,
	}
	tour, err := New(cfg, makeCandidates(6), ratingJudge, testLogger())
	require.NoError(t, err)
	require.NoError(t, tour.Run(context.Background(), Options{}))

	finals := 0
	for _, round := range tour.Rounds() {
		for _, m := range round.Matches {
			if m.Bracket == models.BracketFinal {
				finals++
			}
		}
	}
	assert.Equal(t, 1, finals)

	finalists := tour.Finalists()
	require.Len(t, finalists, 2)
	assert.Contains(t, []string{finalists[0].Title, finalists[1].Title}, "c1")
}
