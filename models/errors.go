package models

import "errors"

var (
	// ErrTooFewCandidates rejects tournament creation with fewer than two
	// real candidates.
	ErrTooFewCandidates = errors.New("tournament needs at least two real candidates")

	// ErrInvalidConfig covers all other configuration errors. These block
	// execution outright; everything downstream degrades instead of
	// failing.
	ErrInvalidConfig = errors.New("invalid tournament configuration")

	// ErrBracket marks a bracket-building invariant violation. It
	// indicates a bug in a bracket implementation, never a judging
	// problem, and is raised rather than absorbed.
	ErrBracket = errors.New("bracket invariant violated")

	// ErrCompleted is returned when running or mutating a tournament that
	// has already completed.
	ErrCompleted = errors.New("tournament already completed")

	// ErrNotFound is returned for unknown tournament ids and template
	// names.
	ErrNotFound = errors.New("not found")
)
