package tournament

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfold/tourney/models"
)

func TestRandomSeederPermutes(t *testing.T) {
	input := makeCandidates(8)
	seeded := RandomSeeder{Rand: rand.New(rand.NewSource(42))}.Seed(input)

	require.Len(t, seeded, len(input))
	ids := map[string]bool{}
	for i, c := range seeded {
		assert.Equal(t, i+1, c.Seed)
		ids[c.ID] = true
	}
	assert.Len(t, ids, len(input), "seeding must be a permutation")

	// No side effects on the caller's slice.
	for _, c := range input {
		assert.Zero(t, c.Seed)
	}
}

func TestRatingSeederSortsDescending(t *testing.T) {
	a := models.NewCandidate("a", "")
	a.Rating = 2.5
	b := models.NewCandidate("b", "")
	b.Rating = 4.0
	c := models.NewCandidate("c", "")
	c.Rating = 2.5

	seeded := RatingSeeder{}.Seed([]models.Candidate{a, b, c})
	require.Len(t, seeded, 3)
	assert.Equal(t, "b", seeded[0].Title)
	// Equal ratings keep input order.
	assert.Equal(t, "a", seeded[1].Title)
	assert.Equal(t, "c", seeded[2].Title)
	assert.Equal(t, []int{1, 2, 3}, []int{seeded[0].Seed, seeded[1].Seed, seeded[2].Seed})
}

func TestManualSeederAppliesOrder(t *testing.T) {
	input := makeCandidates(4)
	order := []string{input[2].ID, input[0].ID}

	seeded := ManualSeeder{Order: order, Logger: testLogger()}.Seed(input)
	require.Len(t, seeded, 4)
	assert.Equal(t, "c3", seeded[0].Title)
	assert.Equal(t, "c1", seeded[1].Title)
	// Candidates the ordering missed keep input order at the back.
	assert.Equal(t, "c2", seeded[2].Title)
	assert.Equal(t, "c4", seeded[3].Title)
}

func TestManualSeederFallsBackToRandom(t *testing.T) {
	input := makeCandidates(5)
	seeded := ManualSeeder{Logger: testLogger()}.Seed(input)

	require.Len(t, seeded, 5)
	ids := map[string]bool{}
	for i, c := range seeded {
		assert.Equal(t, i+1, c.Seed)
		ids[c.ID] = true
	}
	assert.Len(t, ids, 5)
}

func TestNewSeederDispatch(t *testing.T) {
	logger := testLogger()
	assert.IsType(t, RandomSeeder{}, NewSeeder(models.TournamentConfig{Seeding: models.SeedingRandom}, logger))
	assert.IsType(t, RatingSeeder{}, NewSeeder(models.TournamentConfig{Seeding: models.SeedingRatingBased}, logger))
	assert.IsType(t, ManualSeeder{}, NewSeeder(models.TournamentConfig{Seeding: models.SeedingManual}, logger))
}
