// Package errs defines the four sentinel error kinds shared across the
// inference core (spec.md §7): InvalidObservation, Inconsistent, Timeout,
// and InternalError. Lower-level packages wrap these via fmt.Errorf("...: %w", ...)
// so callers anywhere in the stack can classify a failure with errors.Is,
// without internal packages depending on the root domino package.
package errs

import "errors"

var (
	// ErrInvalidObservation means an observation violated a precondition
	// (wrong tile, wrong ends, wrong player). The session is unchanged and
	// the caller may retry with a corrected observation.
	ErrInvalidObservation = errors.New("invalid observation")

	// ErrInconsistent means propagation (or enumeration/sampling) detected
	// that the feasible configuration set is empty. The session is dead;
	// this should never happen given well-formed observations.
	ErrInconsistent = errors.New("inconsistent constraint state")

	// ErrTimeout means a deadline expired during enumeration or sampling.
	ErrTimeout = errors.New("deadline exceeded")

	// ErrInternal means a post-computation marginal invariant was violated
	// outside floating-point tolerance. The session remains usable; only
	// the offending query result is discarded.
	ErrInternal = errors.New("internal invariant violation")
)
