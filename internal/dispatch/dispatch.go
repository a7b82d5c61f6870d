package dispatch

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ocp-domino/domino-infer/internal/errs"
	"github.com/ocp-domino/domino-infer/internal/exact"
	"github.com/ocp-domino/domino-infer/internal/montecarlo"
	"github.com/ocp-domino/domino-infer/internal/player"
	"github.com/ocp-domino/domino-infer/internal/tiles"
)

// epsilon is the floating-point tolerance for the post-computation marginal
// invariant check (spec.md §4.6/§8).
const epsilon = 1e-6

// Backend names the back-end the dispatcher selected, logged for
// observability only.
type Backend string

const (
	BackendExact     Backend = "exact"
	BackendRejection Backend = "rejection"
	BackendMCMC      Backend = "mcmc"
)

// Table is the marginal table of spec.md §3/§6: P(p,t) for every unknown
// player p and every tile t currently in U.
type Table struct {
	Backend Backend
	// P[slot][t] is P(player.Unknown[slot], t). Entries for t not in U are
	// zero and must not be read by callers (spec.md §3: "undefined" for
	// t ∉ U — callers should range over U, not the full tile universe).
	P [3][tiles.NumTiles]float64
}

// Get returns P(p,t). Panics if p is not an unknown player.
func (tb *Table) Get(p player.Player, t tiles.Tile) float64 {
	return tb.P[player.Slot(p)][t]
}

// Marginals implements spec.md §4.6: compute the exact-enumeration workload
// bound; if it is within τ_exact, enumerate exactly. Otherwise estimate the
// rejection acceptance rate from a pilot and use rejection sampling if it
// clears α_floor, or the MCMC swap chain otherwise. The result is verified
// against invariants I1-I5 before being returned; a violation outside ε is
// reported as errs.ErrInternal rather than returned to the caller silently.
func Marginals(ctx context.Context, u tiles.Set, c [3]tiles.Set, r [3]uint8, p Params) (*Table, error) {
	if u.IsEmpty() {
		return &Table{Backend: BackendExact}, nil
	}

	ctx, cancel := withDeadline(ctx, p.Deadline)
	defer cancel()

	w := exact.WorkloadBound(c, r)
	log := p.Log.With().Int64("workload_bound", w).Logger()

	if w <= p.TauExact {
		log.Debug().Msg("dispatch: exact enumeration")
		counts, err := exact.Enumerate(ctx, u, c, r)
		if err != nil {
			return nil, err
		}
		tb := &Table{Backend: BackendExact}
		for slot := 0; slot < 3; slot++ {
			for t := tiles.Tile(0); t < tiles.NumTiles; t++ {
				tb.P[slot][t] = counts.Marginal(slot, t)
			}
		}
		if err := verify(tb, u, c, r); err != nil {
			return nil, err
		}
		return tb, nil
	}

	alpha := montecarlo.EstimatePilotAcceptance(p.Seed, u, c, r, p.PilotSize)
	log = log.With().Float64("pilot_acceptance", alpha).Logger()

	var res *montecarlo.Result
	var backend Backend
	if alpha >= p.AlphaFloor {
		backend = BackendRejection
		log.Debug().Msg("dispatch: rejection sampling")
		res = montecarlo.SampleRejection(ctx, p.Seed, u, c, r, p.TargetSamples)
	} else {
		backend = BackendMCMC
		log.Debug().Msg("dispatch: MCMC swap chain")
		res = montecarlo.SampleMCMC(ctx, p.Seed, u, c, r, p.BurnIn, p.TargetSamples)
	}

	if res.Accepted == 0 {
		if res.Cancelled || ctx.Err() != nil {
			return nil, fmt.Errorf("%w: sampler deadline expired before any sample was accepted", errs.ErrTimeout)
		}
		return nil, fmt.Errorf("%w: sampler collected zero accepted draws", errs.ErrInconsistent)
	}

	tb := &Table{Backend: backend}
	for slot := 0; slot < 3; slot++ {
		for t := tiles.Tile(0); t < tiles.NumTiles; t++ {
			tb.P[slot][t] = res.Marginal(slot, t)
		}
	}
	if err := verify(tb, u, c, r); err != nil {
		return nil, err
	}
	return tb, nil
}

// withDeadline wraps ctx with deadline if the caller didn't already supply
// one and deadline is non-zero, so a Config.Deadline set at session creation
// still bounds a call made with context.Background() (spec.md §5/§6).
func withDeadline(ctx context.Context, deadline time.Time) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if deadline.IsZero() {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithDeadline(ctx, deadline)
}

// verify checks the §8 marginal invariants translated to probabilities,
// returning errs.ErrInternal (not panicking) if any is violated outside ε —
// per §4.6, this is a post-computation sanity check on the back-end's own
// output, not a precondition on caller input.
func verify(tb *Table, u tiles.Set, c [3]tiles.Set, r [3]uint8) error {
	for t := tiles.Tile(0); t < tiles.NumTiles; t++ {
		if !u.Has(t) {
			continue
		}
		sum := 0.0
		for slot := 0; slot < 3; slot++ {
			pv := tb.P[slot][t]
			if pv < -epsilon || pv > 1+epsilon {
				return fmt.Errorf("%w: P(%s,%s)=%v out of [0,1]", errs.ErrInternal, player.Unknown[slot], t, pv)
			}
			if !c[slot].Has(t) && math.Abs(pv) > epsilon {
				return fmt.Errorf("%w: P(%s,%s)=%v but %s has no candidacy for %s", errs.ErrInternal, player.Unknown[slot], t, pv, player.Unknown[slot], t)
			}
			sum += pv
		}
		if math.Abs(sum-1) > epsilon {
			return fmt.Errorf("%w: sum_p P(p,%s)=%v, want 1", errs.ErrInternal, t, sum)
		}
	}

	for slot := 0; slot < 3; slot++ {
		sum := 0.0
		u.Iter(func(t tiles.Tile) {
			sum += tb.P[slot][t]
		})
		if math.Abs(sum-float64(r[slot])) > epsilon {
			return fmt.Errorf("%w: sum_t P(%s,t)=%v, want r=%d", errs.ErrInternal, player.Unknown[slot], sum, r[slot])
		}
	}
	return nil
}
