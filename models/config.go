package models

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format selects the bracket algorithm that drives a tournament.
type Format int32

const (
	FormatSingleElimination Format = 0
	FormatDoubleElimination Format = 1
	FormatRoundRobin        Format = 2
	FormatSwiss             Format = 3
)

var formatNames = map[Format]string{
	FormatSingleElimination: "single_elimination",
	FormatDoubleElimination: "double_elimination",
	FormatRoundRobin:        "round_robin",
	FormatSwiss:             "swiss",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int32(f))
}

// ParseFormat converts a config-file name back into a Format.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, name)
}

func (f Format) MarshalYAML() (interface{}, error) { return f.String(), nil }

func (f *Format) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseFormat(name)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// SeedingStrategy orders candidates before bracket construction.
type SeedingStrategy int32

const (
	SeedingRandom      SeedingStrategy = 0
	SeedingRatingBased SeedingStrategy = 1
	SeedingManual      SeedingStrategy = 2
)

var seedingNames = map[SeedingStrategy]string{
	SeedingRandom:      "random",
	SeedingRatingBased: "rating_based",
	SeedingManual:      "manual",
}

func (s SeedingStrategy) String() string {
	if name, ok := seedingNames[s]; ok {
		return name
	}
	return fmt.Sprintf("seeding(%d)", int32(s))
}

// ParseSeedingStrategy converts a config-file name back into a strategy.
func ParseSeedingStrategy(name string) (SeedingStrategy, error) {
	for s, n := range seedingNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown seeding strategy %q", ErrInvalidConfig, name)
}

func (s SeedingStrategy) MarshalYAML() (interface{}, error) { return s.String(), nil }

func (s *SeedingStrategy) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseSeedingStrategy(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TieBreaker resolves matches whose weighted scores land within the
// near-tie threshold.
type TieBreaker int32

const (
	TieBreakRandom           TieBreaker = 0
	TieBreakCriteriaWeighted TieBreaker = 1
)

var tieBreakerNames = map[TieBreaker]string{
	TieBreakRandom:           "random",
	TieBreakCriteriaWeighted: "criteria_weighted",
}

func (t TieBreaker) String() string {
	if name, ok := tieBreakerNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tie_breaker(%d)", int32(t))
}

// ParseTieBreaker converts a config-file name back into a policy.
func ParseTieBreaker(name string) (TieBreaker, error) {
	for t, n := range tieBreakerNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown tie breaker %q", ErrInvalidConfig, name)
}

func (t TieBreaker) MarshalYAML() (interface{}, error) { return t.String(), nil }

func (t *TieBreaker) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseTieBreaker(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MaxSwissRounds caps the default Swiss round count.
const MaxSwissRounds = 8

// DefaultSwissRounds returns the default number of Swiss passes for a
// field of n participants.
func DefaultSwissRounds(n int) int {
	if n-1 < MaxSwissRounds {
		return n - 1
	}
	return MaxSwissRounds
}

// TournamentConfig describes how a tournament is structured, seeded,
// judged and scored.
type TournamentConfig struct {
	Format   Format             `json:"format" yaml:"format"`
	Criteria []JudgingCriterion `json:"criteria,omitempty" yaml:"criteria,omitempty"`

	Seeding    SeedingStrategy `json:"seeding" yaml:"seeding"`
	TieBreaker TieBreaker      `json:"tie_breaker" yaml:"tie_breaker"`

	// ManualOrder lists candidate ids in the caller's desired seed order.
	// Consulted only by manual seeding; when empty, manual seeding falls
	// back to random.
	ManualOrder []string `json:"manual_order,omitempty" yaml:"manual_order,omitempty"`

	// MaxRounds bounds Swiss tournaments. Zero means the default of
	// min(8, participants-1); other formats ignore it.
	MaxRounds int `json:"max_rounds,omitempty" yaml:"max_rounds,omitempty"`

	// JudgeParameters is passed through to the judge untouched.
	JudgeParameters map[string]string `json:"judge_parameters,omitempty" yaml:"judge_parameters,omitempty"`
}

// Normalize fills defaults and validates. It is called once at tournament
// creation; configuration errors are the only errors that block execution.
func (c *TournamentConfig) Normalize() error {
	if _, ok := formatNames[c.Format]; !ok {
		return fmt.Errorf("%w: unknown format %d", ErrInvalidConfig, c.Format)
	}
	if _, ok := seedingNames[c.Seeding]; !ok {
		return fmt.Errorf("%w: unknown seeding strategy %d", ErrInvalidConfig, c.Seeding)
	}
	if _, ok := tieBreakerNames[c.TieBreaker]; !ok {
		return fmt.Errorf("%w: unknown tie breaker %d", ErrInvalidConfig, c.TieBreaker)
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("%w: max_rounds must not be negative", ErrInvalidConfig)
	}
	if len(c.Criteria) == 0 {
		c.Criteria = DefaultCriteria()
	}
	for i := range c.Criteria {
		crit := &c.Criteria[i]
		if crit.Name == "" {
			return fmt.Errorf("%w: criterion %d has no name", ErrInvalidConfig, i)
		}
		if crit.Weight <= 0 {
			return fmt.Errorf("%w: criterion %q weight must be positive", ErrInvalidConfig, crit.Name)
		}
		if crit.Range.Min == 0 && crit.Range.Max == 0 {
			crit.Range = DefaultScoreRange
		}
		if crit.Range.Max <= crit.Range.Min {
			return fmt.Errorf("%w: criterion %q has an empty scoring range", ErrInvalidConfig, crit.Name)
		}
	}
	return nil
}

// Clone returns a deep copy, so stored templates cannot be mutated through
// a previously returned config.
func (c TournamentConfig) Clone() TournamentConfig {
	out := c
	out.Criteria = append([]JudgingCriterion(nil), c.Criteria...)
	out.ManualOrder = append([]string(nil), c.ManualOrder...)
	if c.JudgeParameters != nil {
		out.JudgeParameters = make(map[string]string, len(c.JudgeParameters))
		for k, v := range c.JudgeParameters {
			out.JudgeParameters[k] = v
		}
	}
	return out
}

// LoadConfig reads a YAML tournament configuration.
func LoadConfig(r io.Reader) (TournamentConfig, error) {
	var cfg TournamentConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding tournament config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML tournament configuration from path.
func LoadConfigFile(path string) (TournamentConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return TournamentConfig{}, fmt.Errorf("opening tournament config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// WriteConfig writes the configuration as YAML.
func (c TournamentConfig) WriteConfig(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding tournament config: %w", err)
	}
	return nil
}
