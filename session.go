package domino

import (
	"context"

	"github.com/google/uuid"

	"github.com/ocp-domino/domino-infer/internal/dispatch"
	"github.com/ocp-domino/domino-infer/internal/gamestate"
	"github.com/ocp-domino/domino-infer/internal/player"
	"github.com/ocp-domino/domino-infer/internal/tiles"
)

// Re-exports of the lower layers' public vocabulary, so callers never need
// to import internal/* themselves (spec.md §6: the core exposes exactly
// four operations plus their supporting types).
type (
	Player      = player.Player
	Tile        = tiles.Tile
	Side        = gamestate.Side
	Observation = gamestate.Observation
)

const (
	S = player.S
	W = player.W
	N = player.N
	E = player.E
)

const (
	SideStart = gamestate.SideStart
	SideLeft  = gamestate.SideLeft
	SideRight = gamestate.SideRight
)

// NewTile constructs the tile (a,b). Panics if a or b is outside 0..6.
func NewTile(a, b uint8) Tile { return tiles.New(a, b) }

// TileValues returns t's one or two pip values, low value first.
func TileValues(t Tile) (uint8, uint8) { return tiles.Values(t) }

// PlayObservation constructs a Play(p, t, side) observation.
func PlayObservation(p Player, t Tile, side Side) Observation {
	return gamestate.Play(p, t, side)
}

// PassObservation constructs a Pass(p, (a,b)) observation.
func PassObservation(p Player, a, b uint8) Observation {
	return gamestate.Pass(p, a, b)
}

// Session is a single game's inference state: the ledger, the candidate-set
// store, and the dispatcher configuration, created together from the
// observer's hand and mutated only through Apply (spec.md §3 "Lifecycle").
type Session struct {
	ID uuid.UUID

	cfg   Config
	state *gamestate.GameState
	dead  error // set once Inconsistent is detected; every call fails after
}

// NewSession creates a session from the observer's 7-tile hand (spec.md §6
// `new_session`). Panics if hand does not have exactly 7 distinct tiles —
// a caller bug, not a recoverable runtime condition (matches
// internal/gamestate.New and internal/tiles' own panic-on-malformed-input
// class of failure).
func NewSession(hand []Tile, cfg Config) *Session {
	handS := tiles.Of(hand...)
	return &Session{
		ID:    uuid.New(),
		cfg:   cfg,
		state: gamestate.New(handS),
	}
}

// Apply is the session's single mutator (spec.md §3/§6): it validates obs
// against the current state, and if valid, commits it and runs the
// constraint propagator to a fixed point. A rejected observation
// (ErrInvalidObservation) leaves the session unchanged and usable. A
// propagation failure (ErrInconsistent) is unrecoverable: the session is
// marked dead and every subsequent call fails until the caller discards it.
func (s *Session) Apply(obs Observation) error {
	if s.dead != nil {
		return s.dead
	}
	if err := s.state.Apply(obs); err != nil {
		return err
	}
	if err := s.state.Store().Propagate(s.remaining(), s.state.U()); err != nil {
		s.dead = err
		return err
	}
	return nil
}

// Marginals computes P(p,t) for every unknown player p and tile t ∈ U
// (spec.md §6 `marginals`), dispatching between the exact enumerator and the
// Monte Carlo sampler per spec.md §4.6. If ctx is nil, context.Background()
// is used, bounded by cfg.Deadline if set.
func (s *Session) Marginals(ctx context.Context) (*Table, error) {
	if s.dead != nil {
		return nil, s.dead
	}
	params := s.cfg.toDispatchParams()
	tb, err := dispatch.Marginals(ctx, s.state.U(), s.candidates(), s.remaining(), params)
	if err != nil {
		return nil, err
	}
	return &Table{u: s.state.U(), inner: tb}, nil
}

// Snapshot returns an immutable, JSON-serializable bundle of the session's
// current state (spec.md §6 `snapshot`): U, r, C(·), ends, and the ordered
// observation history. Taking a Snapshot does not mutate the session, and
// the returned value shares no memory with it (safe to read from another
// goroutine while the session continues to mutate, per spec.md §5).
func (s *Session) Snapshot() Snapshot {
	c := s.candidates()
	r := s.remaining()
	snap := Snapshot{
		U:    s.state.U().Slice(),
		Ends: s.state.CurrentEnds(),
		R:    map[Player]uint8{W: r[0], N: r[1], E: r[2]},
		C: map[Player][]Tile{
			W: c[0].Slice(),
			N: c[1].Slice(),
			E: c[2].Slice(),
		},
		History: append([]Observation(nil), s.state.History()...),
	}
	return snap
}

func (s *Session) remaining() [3]uint8 {
	return [3]uint8{s.state.R(W), s.state.R(N), s.state.R(E)}
}

func (s *Session) candidates() [3]tiles.Set {
	store := s.state.Store()
	return [3]tiles.Set{
		store.Candidates(W),
		store.Candidates(N),
		store.Candidates(E),
	}
}
