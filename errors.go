package domino

import "github.com/ocp-domino/domino-infer/internal/errs"

// The four error kinds of spec.md §7, re-exported from internal/errs so
// external callers can classify a failure with errors.Is without any
// internal package needing to depend on this root package.
var (
	// ErrInvalidObservation means an observation violated a precondition.
	// Recoverable: the session is unchanged; retry with a corrected
	// observation.
	ErrInvalidObservation = errs.ErrInvalidObservation

	// ErrInconsistent means propagation (or enumeration/sampling) proved the
	// feasible configuration set empty. The session is dead: every
	// subsequent Apply or Marginals call fails until the caller starts over
	// or reloads an earlier Snapshot.
	ErrInconsistent = errs.ErrInconsistent

	// ErrTimeout means a deadline expired during enumeration or sampling.
	// Recoverable: retry with a larger budget, or accept the sampler's
	// partial result.
	ErrTimeout = errs.ErrTimeout

	// ErrInternal means a post-computation marginal invariant was violated
	// outside floating-point tolerance. The session remains usable; only
	// the offending Marginals call's result is discarded.
	ErrInternal = errs.ErrInternal
)
