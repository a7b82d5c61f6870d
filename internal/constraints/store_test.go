package constraints

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ocp-domino/domino-infer/internal/player"
	"github.com/ocp-domino/domino-infer/internal/tiles"
)

func TestNewStore_InitialCandidatesEqualU(t *testing.T) {
	u := tiles.All().Diff(tiles.Of(tiles.New(0, 0)))
	s := NewStore(u)
	for _, p := range player.Unknown {
		require.Equal(t, u, s.Candidates(p))
	}
}

func TestRemovePlayed_RemovesFromEveryPlayer(t *testing.T) {
	u := tiles.All()
	s := NewStore(u)
	tl := tiles.New(2, 3)

	s.RemovePlayed(tl)
	for _, p := range player.Unknown {
		require.False(t, s.Candidates(p).Has(tl))
	}
}

func TestRestrictPass_RemovesBlockFromPasser(t *testing.T) {
	u := tiles.All()
	s := NewStore(u)

	s.RestrictPass(player.W, 3, 3)
	require.Equal(t, u.Diff(tiles.Suit(3)).Popcnt(), s.Candidates(player.W).Popcnt())
	require.Equal(t, u.Popcnt(), s.Candidates(player.N).Popcnt())
}
