package models

import "context"

// Side identifies which participant of a pairing a verdict favors.
type Side int32

const (
	SideA Side = 0
	SideB Side = 1
)

func (s Side) String() string {
	if s == SideB {
		return "B"
	}
	return "A"
}

// Verdict is a judge's answer for one pairing under one criterion.
type Verdict struct {
	// Winner is the side the judge favored. Consulted when no numeric
	// scores are available.
	Winner Side

	// RawText is the judge's unprocessed explanation, kept verbatim for
	// auditing.
	RawText string

	// ScoreA and ScoreB are the numeric scores, valid only when Scored is
	// true. Out-of-range values are clamped by the scoring engine.
	ScoreA float64
	ScoreB float64
	Scored bool
}

// Judge is the external pairwise judging capability. criterion may be nil
// for winner-only judging. Errors mean "this comparison is unavailable";
// callers recover locally and never treat them as fatal.
type Judge interface {
	Judge(ctx context.Context, a, b Candidate, criterion *JudgingCriterion, params map[string]string) (Verdict, error)
}

// JudgeFunc adapts a function to the Judge interface.
type JudgeFunc func(ctx context.Context, a, b Candidate, criterion *JudgingCriterion, params map[string]string) (Verdict, error)

func (f JudgeFunc) Judge(ctx context.Context, a, b Candidate, criterion *JudgingCriterion, params map[string]string) (Verdict, error) {
	return f(ctx, a, b, criterion, params)
}
