package montecarlo

import "github.com/ocp-domino/domino-infer/internal/tiles"

// shuffle returns the members of s in a uniformly random order, Fisher-Yates
// driven by rng — the same shuffle shape as the teacher's DeterministicDeck,
// generalized from a fixed 52-card deck to an arbitrary tile set.
func shuffle(rng *hashRng, s tiles.Set) []tiles.Tile {
	members := s.Slice()
	for i := len(members) - 1; i > 0; i-- {
		j := rng.intn(i + 1)
		members[i], members[j] = members[j], members[i]
	}
	return members
}

// rejectionTrial shuffles u uniformly and cuts it into three contiguous
// blocks of sizes r(W),r(N),r(E); it accepts iff every tile in a player's
// block lies in that player's candidate set. Accepted trials are, by
// construction, uniform samples from Ω_𝒞.
func rejectionTrial(rng *hashRng, u tiles.Set, c [3]tiles.Set, r [3]uint8) (hands [3]tiles.Set, accepted bool) {
	order := shuffle(rng, u)

	off := 0
	for slot := 0; slot < 3; slot++ {
		n := int(r[slot])
		block := order[off : off+n]
		off += n
		var bs tiles.Set
		for _, t := range block {
			if !c[slot].Has(t) {
				return hands, false
			}
			bs = bs.With(t)
		}
		hands[slot] = bs
	}
	return hands, true
}
