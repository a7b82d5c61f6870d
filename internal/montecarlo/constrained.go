package montecarlo

import "github.com/ocp-domino/domino-infer/internal/tiles"

// constrainedTrial samples, for each player in turn, r(p) tiles uniformly
// without replacement from C(p) ∩ remaining. It rejects (ok=false) if at any
// step the pool is too small to supply r(p) tiles. Because sampling order
// and pool-shrinkage bias the result away from uniform over Ω_𝒞, the trial
// also returns the importance weight of spec.md §4.5:
// weight = 1 / ∏_p C(|C(p)∩remaining_p|, r(p)), evaluated along the sampled
// path. Callers MUST apply this weight; domino never exposes an unweighted
// constrained path (spec.md §9 Open Question 3).
func constrainedTrial(rng *hashRng, u tiles.Set, c [3]tiles.Set, r [3]uint8) (hands [3]tiles.Set, weight float64, ok bool) {
	remaining := u
	weight = 1.0

	for slot := 0; slot < 3; slot++ {
		pool := c[slot].Intersect(remaining)
		n := int(r[slot])
		if pool.Popcnt() < n {
			return hands, 0, false
		}

		chosen := chooseWithoutReplacement(rng, pool, n)
		hands[slot] = chosen
		remaining = remaining.Diff(chosen)

		denom := float64(tiles.Choose(pool.Popcnt(), n))
		if denom <= 0 {
			return hands, 0, false
		}
		weight /= denom
	}
	return hands, weight, true
}

// chooseWithoutReplacement draws exactly k tiles uniformly from s, via a
// partial Fisher-Yates over s's members.
func chooseWithoutReplacement(rng *hashRng, s tiles.Set, k int) tiles.Set {
	members := s.Slice()
	var out tiles.Set
	for i := 0; i < k; i++ {
		j := i + rng.intn(len(members)-i)
		members[i], members[j] = members[j], members[i]
		out = out.With(members[i])
	}
	return out
}
