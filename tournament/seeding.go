package tournament

import (
	"log/slog"
	"math/rand"
	"sort"

	"github.com/inkfold/tourney/models"
)

// Seeder orders candidates before bracket construction and assigns seed
// numbers 1..N. Seeders never call the judge and never mutate their input.
type Seeder interface {
	Seed(candidates []models.Candidate) []models.Candidate
}

// NewSeeder returns the seeder for a configured strategy.
func NewSeeder(cfg models.TournamentConfig, logger *slog.Logger) Seeder {
	switch cfg.Seeding {
	case models.SeedingRatingBased:
		return RatingSeeder{}
	case models.SeedingManual:
		return ManualSeeder{Order: cfg.ManualOrder, Logger: logger}
	default:
		return RandomSeeder{}
	}
}

// RandomSeeder assigns seeds by uniform random permutation.
type RandomSeeder struct {
	// Rand is optional; the shared source is used when nil.
	Rand *rand.Rand
}

func (s RandomSeeder) Seed(candidates []models.Candidate) []models.Candidate {
	out := cloneAll(candidates)
	perm := rand.Perm(len(out))
	if s.Rand != nil {
		perm = s.Rand.Perm(len(out))
	}
	shuffled := make([]models.Candidate, len(out))
	for i, p := range perm {
		shuffled[i] = out[p]
	}
	return assignSeeds(shuffled)
}

// RatingSeeder orders by the caller-supplied rating, best first. Input
// order breaks ties.
type RatingSeeder struct{}

func (RatingSeeder) Seed(candidates []models.Candidate) []models.Candidate {
	out := cloneAll(candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return assignSeeds(out)
}

// ManualSeeder applies a caller-supplied ordering of candidate ids. With no
// ordering it falls back to random: an unimplemented capability, not an
// error.
type ManualSeeder struct {
	Order  []string
	Logger *slog.Logger
}

func (s ManualSeeder) Seed(candidates []models.Candidate) []models.Candidate {
	if len(s.Order) == 0 {
		if s.Logger != nil {
			s.Logger.Warn("manual seeding requested without an ordering, falling back to random")
		}
		return RandomSeeder{}.Seed(candidates)
	}

	byID := make(map[string]models.Candidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c.Clone()
	}
	out := make([]models.Candidate, 0, len(candidates))
	for _, id := range s.Order {
		if c, ok := byID[id]; ok {
			out = append(out, c)
			delete(byID, id)
		}
	}
	// Candidates the ordering missed keep their input order at the back.
	for _, c := range candidates {
		if _, left := byID[c.ID]; left {
			out = append(out, byID[c.ID])
			delete(byID, c.ID)
		}
	}
	return assignSeeds(out)
}

func cloneAll(candidates []models.Candidate) []models.Candidate {
	out := make([]models.Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = c.Clone()
	}
	return out
}

func assignSeeds(candidates []models.Candidate) []models.Candidate {
	for i := range candidates {
		candidates[i].Seed = i + 1
	}
	return candidates
}
