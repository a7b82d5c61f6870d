// Package constraints implements the per-player candidate-set store C(p) and
// the deterministic fixed-point propagator that enforces invariants I1-I5
// (spec.md §3, §4.3) after every observation.
package constraints

import (
	"fmt"

	"github.com/ocp-domino/domino-infer/internal/errs"
	"github.com/ocp-domino/domino-infer/internal/player"
	"github.com/ocp-domino/domino-infer/internal/tiles"
)

// Store holds the candidate set C(p) for each unknown player, indexed by
// player.Unknown's position (W=0, N=1, E=2).
type Store struct {
	c [3]tiles.Set
}

// NewStore initializes C(p) = u for every unknown player p, the state
// immediately after hand_S is dealt and before any observation.
func NewStore(u tiles.Set) *Store {
	return &Store{c: [3]tiles.Set{u, u, u}}
}

// Candidates returns C(p). Panics if p is not an unknown player.
func (s *Store) Candidates(p player.Player) tiles.Set {
	return s.c[player.Slot(p)]
}

// RemovePlayed applies R1: t is removed from every player's candidate set,
// unconditionally, when any play (by S or an unknown player) uses t.
func (s *Store) RemovePlayed(t tiles.Tile) {
	for i := range s.c {
		s.c[i] = s.c[i].Without(t)
	}
}

// RestrictPass applies R2: Pass(p,(a,b)) removes B(a,b) from C(p).
func (s *Store) RestrictPass(p player.Player, a, b uint8) {
	i := player.Slot(p)
	s.c[i] = s.c[i].Diff(tiles.Block(a, b))
}

// snapshot returns a value copy, used by Propagate to detect a quiescent
// pass without mutating on failure.
func (s *Store) snapshot() [3]tiles.Set {
	return s.c
}

// checkCapacity returns errs.ErrInconsistent if any |C(p)| < r(p) (I2).
func checkCapacity(c [3]tiles.Set, r [3]uint8) error {
	for i, cs := range c {
		if cs.Popcnt() < int(r[i]) {
			return fmt.Errorf("%w: |C(%s)|=%d < r=%d", errs.ErrInconsistent, player.Unknown[i], cs.Popcnt(), r[i])
		}
	}
	return nil
}

// checkCoverage returns errs.ErrInconsistent if some tile in u has no holder
// among the three candidate sets (I3).
func checkCoverage(c [3]tiles.Set, u tiles.Set) error {
	covered := c[0].Union(c[1]).Union(c[2])
	if missing := u.Diff(covered); !missing.IsEmpty() {
		return fmt.Errorf("%w: tile(s) %v have no holder", errs.ErrInconsistent, missing.Slice())
	}
	return nil
}
