// Package exact implements the exhaustive backtracking enumerator of
// spec.md §4.4: for every feasible assignment of the unknown tiles to the
// three unknown players, accumulate per-(player,tile) counts, then divide by
// the total to get marginals.
package exact

import (
	"context"
	"fmt"

	"github.com/ocp-domino/domino-infer/internal/errs"
	"github.com/ocp-domino/domino-infer/internal/player"
	"github.com/ocp-domino/domino-infer/internal/tiles"
)

// deadlineCheckInterval is how often (in outer p1-subset iterations)
// Enumerate polls ctx for expiry; checking every iteration would add
// overhead disproportionate to the cost of a single subset visit.
const deadlineCheckInterval = 256

// Counts holds accumulated per-(player-slot,tile) occurrence counts across
// every accepted configuration, plus the total accepted.
type Counts struct {
	Count [3][tiles.NumTiles]uint64
	Total uint64
}

// Marginal returns count[p][t] / Total. p is a slot 0..2 (W,N,E).
func (c *Counts) Marginal(slot int, t tiles.Tile) float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Count[slot][t]) / float64(c.Total)
}

// Enumerate visits every σ ∈ Ω_𝒞 and accumulates occurrence counts.
// Returns errs.ErrInconsistent if Ω_𝒞 is empty, or errs.ErrTimeout if ctx
// expires before enumeration completes — partial counts are inadmissible
// for an exact result, so a timeout discards them entirely rather than
// returning a biased partial table (spec.md §5).
func Enumerate(ctx context.Context, u tiles.Set, c [3]tiles.Set, r [3]uint8) (*Counts, error) {
	order := playerOrder(c, r)
	p1, p2, p3 := order[0], order[1], order[2]

	out := &Counts{}
	iterations := 0
	timedOut := false

	tiles.Subsets(c[p1], int(r[p1]), func(handP1 tiles.Set) bool {
		iterations++
		if iterations%deadlineCheckInterval == 0 && ctxExpired(ctx) {
			timedOut = true
			return false
		}
		remaining1 := u.Diff(handP1)
		poolP2 := c[p2].Intersect(remaining1)
		if poolP2.Popcnt() < int(r[p2]) {
			return true // prune: p2 cannot be filled from here, but keep trying other handP1
		}
		// Hall-style lower bound: p3's pool after any valid handP2 must still
		// reach r[p3]; the optimistic bound is checked once handP2 is fixed
		// below, this call only guards p2's own feasibility.

		tiles.Subsets(poolP2, int(r[p2]), func(handP2 tiles.Set) bool {
			remaining2 := remaining1.Diff(handP2)
			if remaining2.Popcnt() != int(r[p3]) {
				return true
			}
			if !remaining2.Diff(c[p3]).IsEmpty() {
				return true // p3's forced hand uses a tile it has no candidacy for
			}

			out.Total++
			accumulate(out, p1, handP1)
			accumulate(out, p2, handP2)
			accumulate(out, p3, remaining2)
			return true
		})
		return true
	})

	if timedOut {
		return nil, fmt.Errorf("%w: exact enumeration did not complete", errs.ErrTimeout)
	}
	if out.Total == 0 {
		return nil, fmt.Errorf("%w: no feasible configuration (Ω_C empty)", errs.ErrInconsistent)
	}
	return out, nil
}

func ctxExpired(ctx context.Context) bool {
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

func accumulate(out *Counts, slot int, hand tiles.Set) {
	hand.Iter(func(t tiles.Tile) {
		out.Count[slot][t]++
	})
}

// WorkloadBound returns the conservative upper bound
// C(|C(p1)|,r(p1)) · C(|C(p2)|,r(p2)) used by the dispatcher (spec.md §4.4),
// where p1,p2 are the first two players in the enumeration heuristic order.
func WorkloadBound(c [3]tiles.Set, r [3]uint8) int64 {
	order := playerOrder(c, r)
	p1, p2 := order[0], order[1]
	choose1 := tiles.Choose(c[p1].Popcnt(), int(r[p1]))
	choose2 := tiles.Choose(c[p2].Popcnt(), int(r[p2]))
	return satMul(choose1, choose2)
}

func satMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	const maxI64 = 1<<63 - 1
	if a > maxI64/b {
		return maxI64
	}
	return a * b
}

// slotName is a convenience for tests/logging.
func slotName(slot int) string {
	return player.Unknown[slot].String()
}
