package gamestate

import (
	"encoding/json"
	"fmt"

	"github.com/ocp-domino/domino-infer/internal/tiles"
)

// Side names which open end a Play observation matched, disambiguating the
// ends-update rule (spec.md §9 Open Question 1).
type Side uint8

const (
	// SideStart marks the first play of the game, which establishes both
	// ends from the tile's own two values.
	SideStart Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideStart:
		return "start"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Kind discriminates the two observation shapes.
type Kind uint8

const (
	KindPlay Kind = iota
	KindPass
)

// Observation is the tagged variant of spec.md §3: either a Play or a Pass.
// Exactly the fields relevant to Kind are meaningful.
type Observation struct {
	Kind Kind

	// Play fields.
	Player Player
	Tile   tiles.Tile
	Side   Side

	// Pass fields (Player above is reused; A,B are the ends at pass time).
	A, B uint8
}

// Play constructs a Play(p, t, side) observation.
func Play(p Player, t tiles.Tile, side Side) Observation {
	return Observation{Kind: KindPlay, Player: p, Tile: t, Side: side}
}

// Pass constructs a Pass(p, (a,b)) observation.
func Pass(p Player, a, b uint8) Observation {
	return Observation{Kind: KindPass, Player: p, A: a, B: b}
}

// wireObservation is the exact interop schema of spec.md §6: a Play carries
// "tile"+"side", a Pass carries "ends"; the two shapes share "kind"+"player".
type wireObservation struct {
	Kind   string      `json:"kind"`
	Player Player      `json:"player"`
	Tile   *tiles.Tile `json:"tile,omitempty"`
	Side   *string     `json:"side,omitempty"`
	Ends   *[2]uint8   `json:"ends,omitempty"`
}

// MarshalJSON renders obs in the wire schema of spec.md §6.
func (obs Observation) MarshalJSON() ([]byte, error) {
	switch obs.Kind {
	case KindPlay:
		side := obs.Side.String()
		t := obs.Tile
		return json.Marshal(wireObservation{Kind: "play", Player: obs.Player, Tile: &t, Side: &side})
	case KindPass:
		ends := [2]uint8{obs.A, obs.B}
		return json.Marshal(wireObservation{Kind: "pass", Player: obs.Player, Ends: &ends})
	default:
		return nil, fmt.Errorf("gamestate: unknown observation kind %d", obs.Kind)
	}
}

// UnmarshalJSON parses the wire schema of spec.md §6.
func (obs *Observation) UnmarshalJSON(data []byte) error {
	var w wireObservation
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "play":
		if w.Tile == nil || w.Side == nil {
			return fmt.Errorf("gamestate: play observation missing tile/side")
		}
		side, err := parseSide(*w.Side)
		if err != nil {
			return err
		}
		*obs = Play(w.Player, *w.Tile, side)
	case "pass":
		if w.Ends == nil {
			return fmt.Errorf("gamestate: pass observation missing ends")
		}
		*obs = Pass(w.Player, w.Ends[0], w.Ends[1])
	default:
		return fmt.Errorf("gamestate: unknown observation kind %q", w.Kind)
	}
	return nil
}

func parseSide(s string) (Side, error) {
	switch s {
	case "start":
		return SideStart, nil
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	default:
		return 0, fmt.Errorf("gamestate: invalid side %q", s)
	}
}
