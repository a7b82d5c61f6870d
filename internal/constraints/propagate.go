package constraints

import (
	"fmt"

	"github.com/ocp-domino/domino-infer/internal/errs"
	"github.com/ocp-domino/domino-infer/internal/player"
	"github.com/ocp-domino/domino-infer/internal/tiles"
)

// Propagate runs R3 (saturated hand), R4 (unique holder, absorbed by R3 once
// R5 has tightened candidate sets), and R5 (Hall pruning for |S|=2) to a
// fixed point, given the current remaining counts r(p) and unknown set u.
// It rescans all rules until a pass changes nothing, bounded by §4.3's
// analysis at O(|U|·|P|) reductions, and returns errs.ErrInconsistent the
// moment any invariant (I2/I3/I4) is violated.
func (s *Store) Propagate(r [3]uint8, u tiles.Set) error {
	for {
		before := s.snapshot()

		if err := checkCapacity(s.c, r); err != nil {
			return err
		}
		if err := checkCoverage(s.c, u); err != nil {
			return err
		}

		s.applySaturatedHands(r)
		if err := s.applyHallPairs(r); err != nil {
			return err
		}

		if s.c == before {
			return nil
		}
	}
}

// applySaturatedHands is R3: if |C(p)| == r(p), every other player's
// candidate set loses C(p) (those tiles are determined for p). R4 (unique
// holder) needs no separate mutation: a singleton unique holder is exactly a
// size-1 Hall-tight set, which R5 below removes from everyone else.
func (s *Store) applySaturatedHands(r [3]uint8) {
	for i := range s.c {
		if s.c[i].Popcnt() == int(r[i]) {
			for j := range s.c {
				if j == i {
					continue
				}
				s.c[j] = s.c[j].Diff(s.c[i])
			}
		}
	}
}

// applyHallPairs is R5 for |S|=2 (the only nontrivial case beyond |S|=1,
// since |P|=3): for each pair {p,q}, if |C(p) ∪ C(q)| == r(p)+r(q), those
// tiles are collectively owned by {p,q} and must be removed from the third
// player's candidate set.
func (s *Store) applyHallPairs(r [3]uint8) error {
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			union := s.c[i].Union(s.c[j])
			need := int(r[i]) + int(r[j])
			if union.Popcnt() < need {
				return fmt.Errorf("%w: Hall condition fails for {%s,%s}", errs.ErrInconsistent, player.Unknown[i], player.Unknown[j])
			}
			if union.Popcnt() == need {
				k := 3 - i - j
				s.c[k] = s.c[k].Diff(union)
			}
		}
	}
	return nil
}
