package models

import "strings"

// ScoreRange bounds the numeric scores a judge may assign under a criterion.
type ScoreRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// DefaultScoreRange is used when a criterion leaves its range unset.
var DefaultScoreRange = ScoreRange{Min: 0, Max: 10}

// Mid returns the neutral midpoint of the range, contributed to both sides
// when a criterion's judge call fails.
func (r ScoreRange) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Clamp forces v into the range.
func (r ScoreRange) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Width returns the span of the range.
func (r ScoreRange) Width() float64 {
	return r.Max - r.Min
}

// JudgingCriterion is one named, weighted dimension a match is judged on.
type JudgingCriterion struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Weight      float64 `json:"weight" yaml:"weight"`

	// PromptTemplate is an opaque instruction handed to the judge. The
	// placeholders {{candidate_a}}, {{candidate_b}} and {{criterion}} are
	// substituted before the call.
	PromptTemplate string `json:"prompt_template,omitempty" yaml:"prompt_template,omitempty"`

	Range ScoreRange `json:"range" yaml:"range"`
}

// Prompt renders the criterion's template against a concrete pairing.
func (c JudgingCriterion) Prompt(a, b Candidate) string {
	return strings.NewReplacer(
		"{{candidate_a}}", a.Title,
		"{{candidate_b}}", b.Title,
		"{{criterion}}", c.Name,
	).Replace(c.PromptTemplate)
}

// DefaultCriteria returns the three standard criteria used when a
// configuration leaves the list empty.
func DefaultCriteria() []JudgingCriterion {
	return []JudgingCriterion{
		{
			Name:           "market_appeal",
			Description:    "How strongly the candidate would pull a browsing reader toward a purchase",
			Weight:         1.0,
			PromptTemplate: "Compare {{candidate_a}} and {{candidate_b}} on {{criterion}}. Score each from 0 to 10.",
			Range:          DefaultScoreRange,
		},
		{
			Name:           "originality",
			Description:    "How fresh the candidate feels against the existing catalog",
			Weight:         1.0,
			PromptTemplate: "Compare {{candidate_a}} and {{candidate_b}} on {{criterion}}. Score each from 0 to 10.",
			Range:          DefaultScoreRange,
		},
		{
			Name:           "clarity",
			Description:    "How clearly the candidate communicates what the book is",
			Weight:         1.0,
			PromptTemplate: "Compare {{candidate_a}} and {{candidate_b}} on {{criterion}}. Score each from 0 to 10.",
			Range:          DefaultScoreRange,
		},
	}
}
