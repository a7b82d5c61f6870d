package tiles

import "math/bits"

// Set is a bitmask over the 28-tile universe: bit i set means tile i is a
// member. All set operations are O(1) or O(popcount), the representation
// zurichess's Bitboard uses for squares on an 8x8 board.
type Set uint32

// full is the 28-tile universe: bits 0..27 set.
const full Set = (1 << NumTiles) - 1

// Empty is the empty tile set.
const Empty Set = 0

// Of builds a Set from individual tiles.
func Of(ts ...Tile) Set {
	var s Set
	for _, t := range ts {
		s = s.With(t)
	}
	return s
}

// With returns s with t added.
func (s Set) With(t Tile) Set {
	return s | (1 << t)
}

// Without returns s with t removed.
func (s Set) Without(t Tile) Set {
	return s &^ (1 << t)
}

// Has reports whether t is a member of s.
func (s Set) Has(t Tile) bool {
	return s&(1<<t) != 0
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	return s | o
}

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set {
	return s & o
}

// Diff returns s ∖ o.
func (s Set) Diff(o Set) Set {
	return s &^ o
}

// Popcnt returns |s|.
func (s Set) Popcnt() int {
	return bits.OnesCount32(uint32(s))
}

// IsEmpty reports whether s has no members.
func (s Set) IsEmpty() bool {
	return s == 0
}

// LSB returns the set containing only the lowest-indexed tile in s, or Empty
// if s is empty.
func (s Set) LSB() Set {
	return s & -s
}

// Pop removes and returns the lowest-indexed tile in s. Panics if s is empty.
func (s *Set) Pop() Tile {
	if *s == 0 {
		panic("tiles: Pop of empty set")
	}
	lsb := s.LSB()
	*s &^= lsb
	return Tile(bits.TrailingZeros32(uint32(lsb)))
}

// Iter calls fn for every tile in s in increasing index order.
func (s Set) Iter(fn func(Tile)) {
	for rest := s; rest != 0; {
		fn(rest.Pop())
	}
}

// Slice returns the members of s as a sorted slice.
func (s Set) Slice() []Tile {
	out := make([]Tile, 0, s.Popcnt())
	s.Iter(func(t Tile) { out = append(out, t) })
	return out
}
