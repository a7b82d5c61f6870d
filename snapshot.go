package domino

import "github.com/ocp-domino/domino-infer/internal/gamestate"

// Snapshot is the immutable state bundle of spec.md §6 `snapshot(session)`:
// U, r, C(·), ends, and the ordered observation history at the moment it was
// taken. It shares no memory with the Session it was taken from.
type Snapshot struct {
	U       []Tile            `json:"u"`
	R       map[Player]uint8  `json:"r"`
	C       map[Player][]Tile `json:"c"`
	Ends    gamestate.Ends    `json:"ends"`
	History []Observation     `json:"history"`
}
