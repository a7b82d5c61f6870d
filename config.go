// Package domino is the public entry point to the double-six domino
// Bayesian inference engine: a single observer's posterior over the other
// three players' hidden hands, derived from a stream of plays and passes
// (spec.md §1-§2). Everything that makes the inference correct lives under
// internal/; this package wires it into the four operations of spec.md §6.
package domino

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ocp-domino/domino-infer/internal/dispatch"
)

// Config bundles the dispatcher's tunable parameters (spec.md §4.6/§6),
// passed once at session creation. A zero Config is invalid; use
// DefaultConfig and override individual fields.
type Config struct {
	// TauExact is the workload-bound threshold below which the exact
	// enumerator runs outright rather than sampling.
	TauExact int64
	// AlphaFloor is the minimum pilot-estimated rejection acceptance rate
	// below which the dispatcher falls back to the MCMC swap chain.
	AlphaFloor float64
	// PilotSize is the number of rejection trials used to estimate the
	// acceptance rate before choosing rejection vs. MCMC.
	PilotSize int
	// TargetSamples is N, the number of accepted Monte Carlo samples to
	// collect.
	TargetSamples int
	// BurnIn is the number of untracked MCMC swap steps run before samples
	// are collected.
	BurnIn int
	// Seed is the master seed for the sampler's per-worker generators,
	// making sampled runs reproducible across calls and processes.
	Seed uint64
	// Deadline, if non-zero, bounds a Marginals call's wall-clock time when
	// the caller does not supply its own context deadline.
	Deadline time.Time
	// Logger receives the dispatcher's decision trace at debug level. The
	// zero value is zerolog's no-op logger, so the engine is silent unless
	// a caller opts in (logging is an external collaborator per spec.md §1).
	Logger zerolog.Logger
}

// DefaultConfig matches the defaults named in spec.md §4.6.
func DefaultConfig() Config {
	p := dispatch.DefaultParams()
	return Config{
		TauExact:      p.TauExact,
		AlphaFloor:    p.AlphaFloor,
		PilotSize:     p.PilotSize,
		TargetSamples: p.TargetSamples,
		BurnIn:        p.BurnIn,
		Seed:          p.Seed,
	}
}

func (cfg Config) toDispatchParams() dispatch.Params {
	return dispatch.Params{
		TauExact:      cfg.TauExact,
		AlphaFloor:    cfg.AlphaFloor,
		PilotSize:     cfg.PilotSize,
		TargetSamples: cfg.TargetSamples,
		BurnIn:        cfg.BurnIn,
		Seed:          cfg.Seed,
		Deadline:      cfg.Deadline,
		Log:           cfg.Logger,
	}
}
