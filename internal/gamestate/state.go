// Package gamestate implements the mutable per-session ledger of spec.md §3:
// the unknown tile set U, per-player remaining counts r(p), the open chain
// ends, and the ordered observation history. apply(observation) is the
// single entrypoint that mutates it, validating fully before writing
// anything (the same "check, then commit" shape as the teacher's
// CheckTx/deliverTx pair).
package gamestate

import (
	"fmt"

	"github.com/ocp-domino/domino-infer/internal/constraints"
	"github.com/ocp-domino/domino-infer/internal/errs"
	"github.com/ocp-domino/domino-infer/internal/player"
	"github.com/ocp-domino/domino-infer/internal/tiles"
)

type Player = player.Player

const (
	S = player.S
	W = player.W
	N = player.N
	E = player.E
)

// GameState is the ledger described in spec.md §3.
type GameState struct {
	handS tiles.Set // observer's 7 tiles, immutable after New
	u     tiles.Set
	r     [3]uint8 // remaining counts for W,N,E, indexed via player.Slot
	rS    uint8    // observer's remaining count, tracked but not used in inference
	ends  Ends
	hist  []Observation

	store *constraints.Store
}

// New creates the game state and its backing constraint store from the
// observer's 7-tile hand. Panics if handS does not have exactly 7 members —
// a caller bug, not a recoverable runtime condition.
func New(handS tiles.Set) *GameState {
	if n := handS.Popcnt(); n != 7 {
		panic(fmt.Sprintf("gamestate: hand_S must have 7 tiles, got %d", n))
	}
	u := tiles.All().Diff(handS)
	return &GameState{
		handS: handS,
		u:     u,
		r:     [3]uint8{7, 7, 7},
		rS:    7,
		ends:  noEnds,
		store: constraints.NewStore(u),
	}
}

// U returns the current unknown tile set.
func (g *GameState) U() tiles.Set { return g.u }

// R returns r(p) for an unknown player p. Panics for S.
func (g *GameState) R(p Player) uint8 { return g.r[player.Slot(p)] }

// RS returns the observer's remaining count.
func (g *GameState) RS() uint8 { return g.rS }

// CurrentEnds returns the current open ends.
func (g *GameState) CurrentEnds() Ends { return g.ends }

// History returns the ordered observation log. The returned slice must not
// be mutated by callers.
func (g *GameState) History() []Observation { return g.hist }

// Store returns the backing constraint store, so callers (the session
// orchestrator) can run Propagate after Apply succeeds.
func (g *GameState) Store() *constraints.Store { return g.store }

// Apply validates obs against the current state and, only if every
// precondition holds, commits it: updates ends/r/U/history and delegates the
// direct constraint rules (R1/R2) to the store. On failure the state is
// left byte-for-byte unchanged and the error wraps errs.ErrInvalidObservation.
func (g *GameState) Apply(obs Observation) error {
	switch obs.Kind {
	case KindPlay:
		return g.applyPlay(obs)
	case KindPass:
		return g.applyPass(obs)
	default:
		return fmt.Errorf("%w: unknown observation kind %d", errs.ErrInvalidObservation, obs.Kind)
	}
}

func (g *GameState) applyPlay(obs Observation) error {
	p, t, side := obs.Player, obs.Tile, obs.Side
	vLo, vHi := tiles.Values(t)
	isDouble := tiles.IsDouble(t)

	newEnds, ok := g.ends.playTile(vLo, vHi, isDouble, side)
	if !ok {
		return fmt.Errorf("%w: tile %s does not match ends %+v on side %s", errs.ErrInvalidObservation, t, g.ends, side)
	}

	if p == S {
		if !g.handS.Has(t) {
			return fmt.Errorf("%w: S does not hold tile %s", errs.ErrInvalidObservation, t)
		}
		if g.rS == 0 {
			return fmt.Errorf("%w: S has no tiles left to play", errs.ErrInvalidObservation)
		}
		g.ends = newEnds
		g.rS--
		g.hist = append(g.hist, obs)
		return nil
	}

	if !g.u.Has(t) {
		return fmt.Errorf("%w: tile %s is not in the unknown set", errs.ErrInvalidObservation, t)
	}
	slot := player.Slot(p)
	if g.r[slot] == 0 {
		return fmt.Errorf("%w: %s has no tiles left to play", errs.ErrInvalidObservation, p)
	}

	g.u = g.u.Without(t)
	g.r[slot]--
	g.ends = newEnds
	g.hist = append(g.hist, obs)
	g.store.RemovePlayed(t)
	return nil
}

func (g *GameState) applyPass(obs Observation) error {
	p := obs.Player
	if p == S {
		return fmt.Errorf("%w: S is never observed to pass", errs.ErrInvalidObservation)
	}
	if g.ends.Empty {
		return fmt.Errorf("%w: cannot pass before the chain is opened", errs.ErrInvalidObservation)
	}
	if !endsEqual(g.ends, obs.A, obs.B) {
		return fmt.Errorf("%w: pass ends (%d,%d) do not match current ends %+v", errs.ErrInvalidObservation, obs.A, obs.B, g.ends)
	}

	g.hist = append(g.hist, obs)
	g.store.RestrictPass(p, obs.A, obs.B)
	return nil
}

func endsEqual(e Ends, a, b uint8) bool {
	return (e.A == a && e.B == b) || (e.A == b && e.B == a)
}
