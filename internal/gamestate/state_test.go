package gamestate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ocp-domino/domino-infer/internal/tiles"
)

func handS() tiles.Set {
	return tiles.Of(
		tiles.New(0, 1), tiles.New(1, 3), tiles.New(2, 5), tiles.New(3, 3),
		tiles.New(4, 6), tiles.New(5, 5), tiles.New(6, 6),
	)
}

func TestNew_InitialState(t *testing.T) {
	g := New(handS())

	require.Equal(t, 21, g.U().Popcnt())
	require.EqualValues(t, 7, g.R(W))
	require.EqualValues(t, 7, g.R(N))
	require.EqualValues(t, 7, g.R(E))
	require.EqualValues(t, 7, g.RS())
	require.True(t, g.CurrentEnds().Empty)
	require.Empty(t, g.History())

	for _, p := range []Player{W, N, E} {
		require.Equal(t, g.U(), g.Store().Candidates(p))
	}
}

func TestNew_PanicsOnWrongHandSize(t *testing.T) {
	require.Panics(t, func() { New(tiles.Of(tiles.New(0, 0))) })
}

func TestApply_FirstPlayByS(t *testing.T) {
	g := New(handS())
	err := g.Apply(Play(S, tiles.New(3, 3), SideStart))
	require.NoError(t, err)

	ends := g.CurrentEnds()
	require.False(t, ends.Empty)
	require.Equal(t, uint8(3), ends.A)
	require.Equal(t, uint8(3), ends.B)
	require.EqualValues(t, 6, g.RS())
	require.Equal(t, 21, g.U().Popcnt()) // S's play never shrinks U
	require.Len(t, g.History(), 1)
}

func TestApply_PlayByS_RejectsTileNotInHand(t *testing.T) {
	g := New(handS())
	err := g.Apply(Play(S, tiles.New(0, 0), SideStart))
	require.Error(t, err)
	require.Empty(t, g.History())
}

func TestApply_Pass_RestrictsCandidates(t *testing.T) {
	g := New(handS())
	require.NoError(t, g.Apply(Play(S, tiles.New(3, 3), SideStart)))
	require.NoError(t, g.Apply(Pass(W, 3, 3)))

	excluded := []tiles.Tile{
		tiles.New(0, 3), tiles.New(2, 3), tiles.New(3, 4), tiles.New(3, 5), tiles.New(3, 6),
	}
	cw := g.Store().Candidates(W)
	require.Equal(t, 16, cw.Popcnt())
	for _, tl := range excluded {
		require.False(t, cw.Has(tl), "expected %s excluded from C(W)", tl)
	}

	require.Equal(t, 21, g.Store().Candidates(N).Popcnt())
	require.Equal(t, 21, g.Store().Candidates(E).Popcnt())
}

func TestApply_Pass_RejectsWrongEnds(t *testing.T) {
	g := New(handS())
	require.NoError(t, g.Apply(Play(S, tiles.New(3, 3), SideStart)))
	require.Error(t, g.Apply(Pass(W, 1, 2)))
}

func TestApply_Pass_RejectsBeforeChainOpened(t *testing.T) {
	g := New(handS())
	require.Error(t, g.Apply(Pass(W, 3, 3)))
}

func TestApply_Pass_RejectsFromS(t *testing.T) {
	g := New(handS())
	require.NoError(t, g.Apply(Play(S, tiles.New(3, 3), SideStart)))
	require.Error(t, g.Apply(Pass(S, 3, 3)))
}

func TestApply_PlayByOther_ShrinksU(t *testing.T) {
	g := New(handS())
	require.NoError(t, g.Apply(Play(S, tiles.New(3, 3), SideStart)))
	require.NoError(t, g.Apply(Pass(W, 3, 3)))
	require.NoError(t, g.Apply(Play(N, tiles.New(3, 6), SideLeft)))

	require.Equal(t, 20, g.U().Popcnt())
	require.False(t, g.U().Has(tiles.New(3, 6)))
	require.EqualValues(t, 6, g.R(N))
	ends := g.CurrentEnds()
	require.Equal(t, uint8(6), ends.A)
	require.Equal(t, uint8(3), ends.B)

	for _, p := range []Player{W, N, E} {
		require.False(t, g.Store().Candidates(p).Has(tiles.New(3, 6)))
	}
}

func TestApply_PlayByOther_RejectsTileNotInU(t *testing.T) {
	g := New(handS())
	require.NoError(t, g.Apply(Play(S, tiles.New(3, 3), SideStart)))
	err := g.Apply(Play(N, tiles.New(3, 3), SideLeft))
	require.Error(t, err)
}

func TestApply_SameObservationTwice_SecondFails(t *testing.T) {
	g := New(handS())
	require.NoError(t, g.Apply(Play(S, tiles.New(3, 3), SideStart)))
	obs := Play(N, tiles.New(3, 6), SideLeft)
	require.NoError(t, g.Apply(obs))
	require.Error(t, g.Apply(obs))
}

func TestApply_DoubleOnMatchingEndKeepsValue(t *testing.T) {
	g := New(handS())
	require.NoError(t, g.Apply(Play(S, tiles.New(2, 5), SideStart)))
	require.NoError(t, g.Apply(Play(W, tiles.New(2, 2), SideLeft)))

	ends := g.CurrentEnds()
	require.Equal(t, uint8(2), ends.A)
	require.Equal(t, uint8(5), ends.B)
}
