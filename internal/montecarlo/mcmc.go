package montecarlo

import "github.com/ocp-domino/domino-infer/internal/tiles"

// initialValidConfig produces a σ ∈ Ω_𝒞 to seed the MCMC swap chain, via
// constrained generation retried until a feasible draw appears (spec.md
// §4.5). Propagate having already certified the state consistent guarantees
// this terminates.
func initialValidConfig(rng *hashRng, u tiles.Set, c [3]tiles.Set, r [3]uint8) [3]tiles.Set {
	for {
		hands, _, ok := constrainedTrial(rng, u, c, r)
		if ok {
			return hands
		}
	}
}

// pickTile returns a uniformly random member of s. Panics if s is empty.
func pickTile(rng *hashRng, s tiles.Set) tiles.Tile {
	members := s.Slice()
	return members[rng.intn(len(members))]
}

// mcmcStep attempts one swap: pick two distinct players and one tile from
// each hand, and swap them iff both destinations are candidate-legal. The
// chain is symmetric (the reverse swap is equally likely to be proposed) and
// irreducible within Ω_𝒞 for three players, so its stationary distribution
// is uniform over Ω_𝒞.
func mcmcStep(rng *hashRng, c [3]tiles.Set, hands *[3]tiles.Set) {
	p1 := rng.intn(3)
	p2 := rng.intn(2)
	if p2 >= p1 {
		p2++
	}

	if hands[p1].IsEmpty() || hands[p2].IsEmpty() {
		return
	}
	t1 := pickTile(rng, hands[p1])
	t2 := pickTile(rng, hands[p2])

	if !c[p1].Has(t2) || !c[p2].Has(t1) {
		return
	}

	hands[p1] = hands[p1].Without(t1).With(t2)
	hands[p2] = hands[p2].Without(t2).With(t1)
}
