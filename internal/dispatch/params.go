// Package dispatch implements spec.md §4.6: choose the exact enumerator or
// the Monte Carlo sampler based on an estimated workload bound, run it, and
// verify the resulting marginals against invariants I1-I5 (§8) before
// returning them.
package dispatch

import (
	"time"

	"github.com/rs/zerolog"
)

// Params are the dispatcher's tunable thresholds (spec.md §4.6/§6), passed
// in at session creation so behavior (and, with a fixed Seed, the sampler's
// output) is reproducible across runs.
type Params struct {
	// TauExact is the workload-bound threshold below which exact enumeration
	// is used outright.
	TauExact int64
	// AlphaFloor is the minimum pilot-estimated rejection acceptance rate
	// below which the dispatcher falls back to the MCMC swap chain.
	AlphaFloor float64
	// PilotSize is the number of rejection trials used to estimate the
	// acceptance rate.
	PilotSize int
	// TargetSamples is N: the number of accepted samples the Monte Carlo
	// back-end accumulates.
	TargetSamples int
	// BurnIn is the number of untracked swap steps run before the MCMC
	// chain's samples are collected.
	BurnIn int
	// Seed is the master seed for the sampler's per-worker generators.
	Seed uint64
	// Deadline, if non-zero, bounds enumeration/sampling wall-clock time via
	// a context Marginals derives from it when the caller's ctx carries no
	// deadline of its own (spec.md §5 cancellation).
	Deadline time.Time
	// Log receives the dispatcher's decision trace at debug level. The zero
	// value is zerolog's documented no-op logger, so domino's core stays
	// silent by default (SPEC_FULL.md Ambient Stack).
	Log zerolog.Logger
}

// DefaultParams matches the defaults named in spec.md §4.6.
func DefaultParams() Params {
	return Params{
		TauExact:      1_000_000,
		AlphaFloor:    0.01,
		PilotSize:     1000,
		TargetSamples: 10_000,
		BurnIn:        1000,
		Seed:          1,
	}
}
