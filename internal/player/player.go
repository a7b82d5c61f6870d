// Package player defines the four table positions shared by every layer of
// the inference core, kept separate from gamestate so that both gamestate
// and constraints can depend on it without a import cycle between them.
package player

import (
	"encoding/json"
	"fmt"
)

// Player is one of the four table positions, in clockwise turn order.
type Player uint8

const (
	S Player = iota // the observer
	W
	N
	E
)

func (p Player) String() string {
	switch p {
	case S:
		return "S"
	case W:
		return "W"
	case N:
		return "N"
	case E:
		return "E"
	default:
		return fmt.Sprintf("Player(%d)", uint8(p))
	}
}

// Unknown lists the three players whose hands are not directly observed, in
// clockwise order starting from the observer's left.
var Unknown = [3]Player{W, N, E}

// Slot returns p's position (0,1,2) within Unknown. Panics for S.
func Slot(p Player) int {
	switch p {
	case W:
		return 0
	case N:
		return 1
	case E:
		return 2
	default:
		panic(fmt.Sprintf("player: %s has no candidate-set slot", p))
	}
}

// MarshalJSON renders p as one of "S"|"W"|"N"|"E", the player schema of
// spec.md §6.
func (p Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON parses one of "S"|"W"|"N"|"E".
func (p *Player) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "S":
		*p = S
	case "W":
		*p = W
	case "N":
		*p = N
	case "E":
		*p = E
	default:
		return fmt.Errorf("player: invalid player %q", s)
	}
	return nil
}
