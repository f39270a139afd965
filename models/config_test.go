package models

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	cfg := TournamentConfig{Format: FormatSingleElimination}
	require.NoError(t, cfg.Normalize())

	require.Len(t, cfg.Criteria, 3)
	for _, crit := range cfg.Criteria {
		assert.Positive(t, crit.Weight)
		assert.Equal(t, DefaultScoreRange, crit.Range)
	}
}

func TestNormalizeFillsCriterionRange(t *testing.T) {
	cfg := TournamentConfig{
		Format:   FormatSwiss,
		Criteria: []JudgingCriterion{{Name: "hook", Weight: 2}},
	}
	require.NoError(t, cfg.Normalize())
	assert.Equal(t, DefaultScoreRange, cfg.Criteria[0].Range)
}

func TestNormalizeRejections(t *testing.T) {
	cases := map[string]TournamentConfig{
		"unknown format": {Format: Format(42)},
		"negative max rounds": {
			Format:    FormatSwiss,
			MaxRounds: -1,
		},
		"zero weight": {
			Format:   FormatRoundRobin,
			Criteria: []JudgingCriterion{{Name: "x", Weight: 0}},
		},
		"unnamed criterion": {
			Format:   FormatRoundRobin,
			Criteria: []JudgingCriterion{{Weight: 1}},
		},
		"empty range": {
			Format:   FormatRoundRobin,
			Criteria: []JudgingCriterion{{Name: "x", Weight: 1, Range: ScoreRange{Min: 5, Max: 5}}},
		},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			err := cfg.Normalize()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestDefaultSwissRounds(t *testing.T) {
	assert.Equal(t, 4, DefaultSwissRounds(5))
	assert.Equal(t, 1, DefaultSwissRounds(2))
	assert.Equal(t, 8, DefaultSwissRounds(20))
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := TournamentConfig{
		Format:     FormatDoubleElimination,
		Seeding:    SeedingRatingBased,
		TieBreaker: TieBreakCriteriaWeighted,
		MaxRounds:  6,
		Criteria: []JudgingCriterion{
			{Name: "market_appeal", Weight: 2, Range: ScoreRange{Min: 0, Max: 5}},
		},
		JudgeParameters: map[string]string{"model": "large"},
	}

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteConfig(&buf))
	assert.Contains(t, buf.String(), "double_elimination")
	assert.Contains(t, buf.String(), "rating_based")

	got, err := LoadConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadConfigRejectsUnknownNames(t *testing.T) {
	_, err := LoadConfig(bytes.NewBufferString("format: ladder\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigCloneIsolation(t *testing.T) {
	cfg := TournamentConfig{
		Format:          FormatRoundRobin,
		Criteria:        []JudgingCriterion{{Name: "x", Weight: 1}},
		JudgeParameters: map[string]string{"model": "small"},
		ManualOrder:     []string{"a", "b"},
	}
	clone := cfg.Clone()
	clone.Criteria[0].Weight = 9
	clone.JudgeParameters["model"] = "large"
	clone.ManualOrder[0] = "z"

	assert.Equal(t, 1.0, cfg.Criteria[0].Weight)
	assert.Equal(t, "small", cfg.JudgeParameters["model"])
	assert.Equal(t, "a", cfg.ManualOrder[0])
}
