package tournament

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfold/tourney/models"
)

func TestNextPowerOfTwo(t *testing.T) {
	assert.Equal(t, 2, nextPowerOfTwo(2))
	assert.Equal(t, 4, nextPowerOfTwo(3))
	assert.Equal(t, 8, nextPowerOfTwo(5))
	assert.Equal(t, 8, nextPowerOfTwo(8))
	assert.Equal(t, 16, nextPowerOfTwo(9))
}

func TestPadWithByes(t *testing.T) {
	padded := padWithByes(makeCandidates(5))
	require.Len(t, padded, 8)
	byes := 0
	for _, c := range padded {
		if c.Bye {
			byes++
		}
	}
	assert.Equal(t, 3, byes)

	// Already a power of two: nothing added.
	assert.Len(t, padWithByes(padded), 8)
}

func TestBracketOrderTopMeetsBottom(t *testing.T) {
	pool := padWithByes(assignSeeds(makeCandidates(8)))
	ordered := bracketOrder(pool)
	require.Len(t, ordered, 8)
	assert.Equal(t, 1, ordered[0].Seed)
	assert.Equal(t, 8, ordered[1].Seed)
	assert.Equal(t, 2, ordered[2].Seed)
	assert.Equal(t, 7, ordered[3].Seed)
	assert.Equal(t, 4, ordered[6].Seed)
	assert.Equal(t, 5, ordered[7].Seed)
}

func TestSingleEliminationMatchCount(t *testing.T) {
	for n := 2; n <= 9; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			cfg := models.TournamentConfig{Format: models.FormatSingleElimination}
			tour, err := New(cfg, makeCandidates(n), ratingJudge, testLogger())
			require.NoError(t, err)
			require.NoError(t, tour.Run(context.Background(), Options{}))

			rounds := tour.Rounds()
			assert.Equal(t, nextPowerOfTwo(n)-1, countMatches(rounds))

			winner := tour.Winner()
			require.NotNil(t, winner)
			assert.False(t, winner.Bye, "a bye must never win a tournament")
			// The rating judge never lets the strongest candidate lose.
			assert.Equal(t, "c1", winner.Title)
		})
	}
}

func TestSingleEliminationFiveCandidateScenario(t *testing.T) {
	cfg := models.TournamentConfig{Format: models.FormatSingleElimination}
	tour, err := New(cfg, makeCandidates(5), ratingJudge, testLogger())
	require.NoError(t, err)
	require.NoError(t, tour.Run(context.Background(), Options{}))

	rounds := tour.Rounds()
	require.Len(t, rounds, 3)
	require.Len(t, rounds[0].Matches, 4)

	byeWins := 0
	for _, m := range rounds[0].Matches {
		if m.IsBye() {
			byeWins++
			assert.Equal(t, models.ByeRawOutput, m.RawJudgeOutput)
			assert.False(t, m.Winner.Bye)
			assert.Nil(t, m.Scores, "bye matches skip scoring")
		}
	}
	assert.GreaterOrEqual(t, byeWins, 3)

	assert.Equal(t, 7, countMatches(rounds))
	winner := tour.Winner()
	require.NotNil(t, winner)
	assert.False(t, winner.Bye)
}

func TestSingleEliminationRoundNumbersIncrease(t *testing.T) {
	cfg := models.TournamentConfig{Format: models.FormatSingleElimination}
	tour, err := New(cfg, makeCandidates(8), ratingJudge, testLogger())
	require.NoError(t, err)
	require.NoError(t, tour.Run(context.Background(), Options{}))

	for i, round := range tour.Rounds() {
		assert.Equal(t, i+1, round.Number)
		for _, m := range round.Matches {
			assert.Equal(t, round.Number, m.RoundNumber)
			assert.True(t, m.Winner.Same(m.A) || m.Winner.Same(m.B),
				"winner must be one of the participants")
		}
	}
}

func TestSingleEliminationFinalists(t *testing.T) {
	cfg := models.TournamentConfig{
		Format:  models.FormatSingleElimination,
		Seeding: models.SeedingRatingBased,
	}
	tour, err := New(cfg, makeCandidates(4), ratingJudge, testLogger())
	require.NoError(t, err)

	assert.Nil(t, tour.Finalists(), "no finalists before completion")
	require.NoError(t, tour.Run(context.Background(), Options{}))

	finalists := tour.Finalists()
	require.Len(t, finalists, 2)
	titles := []string{finalists[0].Title, finalists[1].Title}
	assert.ElementsMatch(t, []string{"c1", "c2"}, titles)
	assert.Nil(t, tour.Standings(), "elimination formats have no standings")
}

func TestSingleEliminationMarksEliminations(t *testing.T) {
	cfg := models.TournamentConfig{
		Format:  models.FormatSingleElimination,
		Seeding: models.SeedingRatingBased,
	}
	tour, err := New(cfg, makeCandidates(4), ratingJudge, testLogger())
	require.NoError(t, err)
	require.NoError(t, tour.Run(context.Background(), Options{}))

	eliminated := 0
	for _, c := range tour.Candidates() {
		if !c.Bye && c.Status == models.CandidateEliminated {
			eliminated++
		}
	}
	assert.Equal(t, 3, eliminated)
}
