// Package tiles implements the canonical double-six domino tile algebra:
// the 28-tile universe, dense indexing, suits, and the block-set function.
package tiles

import (
	"encoding/json"
	"fmt"
)

// Tile is a dense index 0..27 into the 28-tile double-six universe.
type Tile uint8

// NumTiles is the size of the double-six universe.
const NumTiles = 28

// NumSuits is the number of pip values 0..6.
const NumSuits = 7

type pair struct {
	a, b uint8
}

var (
	indexToPair [NumTiles]pair
	pairToIndex [NumSuits][NumSuits]Tile
)

func init() {
	idx := Tile(0)
	for a := uint8(0); a < NumSuits; a++ {
		for b := a; b < NumSuits; b++ {
			indexToPair[idx] = pair{a, b}
			pairToIndex[a][b] = idx
			pairToIndex[b][a] = idx
			idx++
		}
	}
	if int(idx) != NumTiles {
		panic(fmt.Sprintf("tiles: init produced %d tiles, want %d", idx, NumTiles))
	}
}

// New returns the tile (a,b), a<=b required only up to commutativity: New(a,b)
// and New(b,a) are the same tile. Panics if a or b is outside 0..6.
func New(a, b uint8) Tile {
	if a >= NumSuits || b >= NumSuits {
		panic(fmt.Sprintf("tiles: suit value out of range: %d,%d", a, b))
	}
	return pairToIndex[a][b]
}

// Values returns the one or two pip values on t, low value first.
func Values(t Tile) (uint8, uint8) {
	p := indexToPair[t]
	return p.a, p.b
}

// IsDouble reports whether t has the same value on both ends.
func IsDouble(t Tile) bool {
	p := indexToPair[t]
	return p.a == p.b
}

// HasSuit reports whether v is one of t's two pip values.
func HasSuit(t Tile, v uint8) bool {
	p := indexToPair[t]
	return p.a == v || p.b == v
}

// Other returns the value on t other than v. Panics if t does not carry v.
func Other(t Tile, v uint8) uint8 {
	p := indexToPair[t]
	switch {
	case p.a == v:
		return p.b
	case p.b == v:
		return p.a
	default:
		panic(fmt.Sprintf("tiles: tile %s does not carry suit %d", t, v))
	}
}

func (t Tile) String() string {
	p := indexToPair[t]
	return fmt.Sprintf("(%d,%d)", p.a, p.b)
}

// All returns the 28-tile universe as a Set.
func All() Set {
	return full
}

// MarshalJSON renders t as [a,b], the tile schema of spec.md §6.
func (t Tile) MarshalJSON() ([]byte, error) {
	a, b := Values(t)
	return json.Marshal([2]uint8{a, b})
}

// UnmarshalJSON parses [a,b].
func (t *Tile) UnmarshalJSON(data []byte) error {
	var pair [2]uint8
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if pair[0] >= NumSuits || pair[1] >= NumSuits {
		return fmt.Errorf("tiles: suit value out of range in %v", pair)
	}
	*t = New(pair[0], pair[1])
	return nil
}
