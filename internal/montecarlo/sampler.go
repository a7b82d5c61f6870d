package montecarlo

import (
	"context"
	"runtime"
	"sync"

	"github.com/ocp-domino/domino-infer/internal/tiles"
)

// Result accumulates weighted occurrence counts across every worker; Marginal
// divides through by TotalWeight. For rejection/MCMC sampling every accepted
// draw has weight 1; for the constrained generator each draw carries its
// importance weight.
type Result struct {
	Count       [3][tiles.NumTiles]float64
	TotalWeight float64
	SumWeightSq float64
	Accepted    uint64
	Attempted   uint64
	// Cancelled is set if ctx expired before any worker reached its target
	// share, so a zero-Accepted result can be told apart from a genuinely
	// empty Ω_𝒞 (spec.md §5: a deadline expiry degrades to a partial result,
	// it never means Inconsistent).
	Cancelled bool
}

// Marginal returns P(p,t) for an unknown-player slot and tile.
func (res *Result) Marginal(slot int, t tiles.Tile) float64 {
	if res.TotalWeight == 0 {
		return 0
	}
	return res.Count[slot][t] / res.TotalWeight
}

// AcceptanceRate returns Accepted/Attempted, or 0 if nothing was attempted.
func (res *Result) AcceptanceRate() float64 {
	if res.Attempted == 0 {
		return 0
	}
	return float64(res.Accepted) / float64(res.Attempted)
}

// EffectiveSampleSize returns Kish's effective sample size, (ΣW)²/Σ(W²).
// For unweighted draws (every weight 1, as in rejection/MCMC sampling) this
// is exactly Accepted; for the importance-weighted constrained generator it
// is typically much smaller than Accepted when weights are uneven.
func (res *Result) EffectiveSampleSize() float64 {
	if res.SumWeightSq == 0 {
		return 0
	}
	return (res.TotalWeight * res.TotalWeight) / res.SumWeightSq
}

func workerCount() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}

// merge folds src's counts into dst.
func (dst *Result) merge(src *Result) {
	dst.TotalWeight += src.TotalWeight
	dst.SumWeightSq += src.SumWeightSq
	dst.Accepted += src.Accepted
	dst.Attempted += src.Attempted
	dst.Cancelled = dst.Cancelled || src.Cancelled
	for slot := 0; slot < 3; slot++ {
		for t := 0; t < tiles.NumTiles; t++ {
			dst.Count[slot][t] += src.Count[slot][t]
		}
	}
}

func recordHands(res *Result, hands [3]tiles.Set, weight float64) {
	res.TotalWeight += weight
	res.SumWeightSq += weight * weight
	for slot, hand := range hands {
		hand.Iter(func(t tiles.Tile) {
			res.Count[slot][t] += weight
		})
	}
}

// runWorkers fan the target sample count out across workerCount() goroutines,
// each with its own hashRng derived from masterSeed, and merges the results
// (spec.md §5: "split N samples across worker threads; each holds its own
// generator state and local counts; merge by summation").
func runWorkers(masterSeed uint64, target int, work func(rng *hashRng, share int) *Result) *Result {
	n := workerCount()
	if n > target && target > 0 {
		n = target
	}
	if n < 1 {
		n = 1
	}

	base := target / n
	extra := target % n

	results := make([]*Result, n)
	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		share := base
		if w < extra {
			share++
		}
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := newHashRng(masterSeed, w)
			results[w] = work(rng, share)
		}()
	}
	wg.Wait()

	out := &Result{}
	for _, r := range results {
		out.merge(r)
	}
	return out
}

// SampleRejection runs rejection sampling until target accepted samples are
// collected or ctx expires, splitting work across workers. On deadline
// expiry it returns whatever has accumulated so far (not an error): the
// sampler degrades gracefully, per spec.md §5.
func SampleRejection(ctx context.Context, masterSeed uint64, u tiles.Set, c [3]tiles.Set, r [3]uint8, target int) *Result {
	return runWorkers(masterSeed, target, func(rng *hashRng, share int) *Result {
		res := &Result{}
		for res.Accepted < uint64(share) {
			if ctxDone(ctx) {
				res.Cancelled = true
				return res
			}
			res.Attempted++
			hands, ok := rejectionTrial(rng, u, c, r)
			if !ok {
				continue
			}
			res.Accepted++
			recordHands(res, hands, 1)
		}
		return res
	})
}

// SampleMCMC runs the swap-chain sampler with the given burn-in, splitting
// the target sample count across workers (each with its own independent
// chain and burn-in, so workers don't share chain state).
func SampleMCMC(ctx context.Context, masterSeed uint64, u tiles.Set, c [3]tiles.Set, r [3]uint8, burnIn, target int) *Result {
	return runWorkers(masterSeed, target, func(rng *hashRng, share int) *Result {
		res := &Result{}
		res.Cancelled = mcmcChainCtx(ctx, rng, u, c, r, burnIn, share, func(hands [3]tiles.Set) {
			res.Accepted++
			res.Attempted++
			recordHands(res, hands, 1)
		})
		return res
	})
}

// SampleConstrained runs the importance-weighted constrained generator
// (spec.md §4.5). It is exposed for diagnostic use only (spec.md §9 Open
// Question 3): it always applies the importance weight, so its marginals
// are unbiased estimates of the same target as the other two back-ends, but
// typically at much lower effective sample size for a given draw count.
func SampleConstrained(ctx context.Context, masterSeed uint64, u tiles.Set, c [3]tiles.Set, r [3]uint8, target int) *Result {
	return runWorkers(masterSeed, target, func(rng *hashRng, share int) *Result {
		res := &Result{}
		for res.Accepted < uint64(share) {
			if ctxDone(ctx) {
				res.Cancelled = true
				return res
			}
			res.Attempted++
			hands, weight, ok := constrainedTrial(rng, u, c, r)
			if !ok {
				continue
			}
			res.Accepted++
			recordHands(res, hands, weight)
		}
		return res
	})
}

// EstimatePilotAcceptance runs a short rejection-sampling pilot (single
// worker, deterministic from masterSeed) and returns the observed acceptance
// rate α, used by the dispatcher to choose rejection vs. MCMC (spec.md §4.6).
func EstimatePilotAcceptance(masterSeed uint64, u tiles.Set, c [3]tiles.Set, r [3]uint8, pilotSize int) float64 {
	rng := newHashRng(masterSeed, 0)
	accepted := 0
	for i := 0; i < pilotSize; i++ {
		if _, ok := rejectionTrial(rng, u, c, r); ok {
			accepted++
		}
	}
	if pilotSize == 0 {
		return 0
	}
	return float64(accepted) / float64(pilotSize)
}

func ctxDone(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// mcmcChainCtx runs the swap chain from an initial valid configuration,
// burn-in first, then one swap per collected sample, with a deadline check
// between samples (not during burn-in or between every swap step, matching
// the rejection loop's per-sample granularity).
// It reports whether ctx expired before the chain collected its full share.
func mcmcChainCtx(ctx context.Context, rng *hashRng, u tiles.Set, c [3]tiles.Set, r [3]uint8, burnIn, samples int, collect func([3]tiles.Set)) (cancelled bool) {
	hands := initialValidConfig(rng, u, c, r)
	for i := 0; i < burnIn; i++ {
		mcmcStep(rng, c, &hands)
	}
	for i := 0; i < samples; i++ {
		if ctxDone(ctx) {
			return true
		}
		mcmcStep(rng, c, &hands)
		collect(hands)
	}
	return false
}
