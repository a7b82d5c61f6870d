package montecarlo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ocp-domino/domino-infer/internal/tiles"
)

func TestInitialValidConfig_IsFeasible(t *testing.T) {
	u := tiles.All()
	c := [3]tiles.Set{u, u, u}
	r := [3]uint8{10, 9, 9}

	rng := newHashRng(9, 0)
	hands := initialValidConfig(rng, u, c, r)
	require.Equal(t, u, hands[0].Union(hands[1]).Union(hands[2]))
	require.Equal(t, 10, hands[0].Popcnt())
}

func TestMcmcStep_PreservesPartitionAndSizes(t *testing.T) {
	u := tiles.All()
	c := [3]tiles.Set{u, u, u}
	r := [3]uint8{10, 9, 9}

	rng := newHashRng(9, 0)
	hands := initialValidConfig(rng, u, c, r)
	sizes := [3]int{hands[0].Popcnt(), hands[1].Popcnt(), hands[2].Popcnt()}

	for i := 0; i < 1000; i++ {
		mcmcStep(rng, c, &hands)
		require.Equal(t, sizes[0], hands[0].Popcnt())
		require.Equal(t, sizes[1], hands[1].Popcnt())
		require.Equal(t, sizes[2], hands[2].Popcnt())
		require.Equal(t, u, hands[0].Union(hands[1]).Union(hands[2]))
		require.True(t, hands[0].Intersect(hands[1]).IsEmpty())
		require.True(t, hands[1].Intersect(hands[2]).IsEmpty())
	}
}

func TestMcmcStep_NeverViolatesCandidateSets(t *testing.T) {
	u := tiles.Of(tiles.New(0, 0), tiles.New(1, 1), tiles.New(2, 2), tiles.New(3, 3), tiles.New(4, 4), tiles.New(5, 5))
	c := [3]tiles.Set{
		tiles.Of(tiles.New(0, 0), tiles.New(1, 1), tiles.New(2, 2)),
		tiles.Of(tiles.New(1, 1), tiles.New(2, 2), tiles.New(3, 3)),
		tiles.Of(tiles.New(2, 2), tiles.New(3, 3), tiles.New(4, 4), tiles.New(5, 5)),
	}
	r := [3]uint8{2, 2, 2}

	rng := newHashRng(11, 0)
	hands := initialValidConfig(rng, u, c, r)
	for i := 0; i < 2000; i++ {
		mcmcStep(rng, c, &hands)
		for slot := 0; slot < 3; slot++ {
			require.True(t, hands[slot].Diff(c[slot]).IsEmpty(), "slot %d holds a non-candidate tile", slot)
		}
	}
}
