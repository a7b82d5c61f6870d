package gamestate

// Ends is the pair of open-end pip values of the chain, or the sentinel
// "empty chain" before the first play.
type Ends struct {
	Empty bool
	A, B  uint8
}

// noEnds is the sentinel for "no tile has been played yet".
var noEnds = Ends{Empty: true}

// playTile reports whether a tile with values vLo and vHi can be played
// against side, returning the new Ends (the matched end takes the tile's
// other value) and ok=true, or ok=false if side does not name a legal match
// against the current ends.
func (e Ends) playTile(vLo, vHi uint8, isDouble bool, side Side) (Ends, bool) {
	if e.Empty {
		// First play of the game: both ends come from the tile itself.
		return Ends{A: vLo, B: vHi}, true
	}

	tryEnd := func(endVal uint8, setA bool) (Ends, bool) {
		if !(vLo == endVal || vHi == endVal) {
			return Ends{}, false
		}
		var other uint8
		if isDouble {
			other = endVal
		} else if vLo == endVal {
			other = vHi
		} else {
			other = vLo
		}
		next := e
		if setA {
			next.A = other
		} else {
			next.B = other
		}
		return next, true
	}

	switch side {
	case SideLeft:
		return tryEnd(e.A, true)
	case SideRight:
		return tryEnd(e.B, false)
	default:
		return Ends{}, false
	}
}
