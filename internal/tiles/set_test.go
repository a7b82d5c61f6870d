package tiles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet_BasicOps(t *testing.T) {
	a := New(0, 0)
	b := New(1, 1)
	c := New(2, 2)

	s := Of(a, b)
	require.True(t, s.Has(a))
	require.True(t, s.Has(b))
	require.False(t, s.Has(c))
	require.Equal(t, 2, s.Popcnt())

	s2 := s.With(c)
	require.Equal(t, 3, s2.Popcnt())

	s3 := s2.Without(b)
	require.False(t, s3.Has(b))
	require.Equal(t, 2, s3.Popcnt())
}

func TestSet_UnionIntersectDiff(t *testing.T) {
	x := Of(New(0, 0), New(1, 1), New(2, 2))
	y := Of(New(1, 1), New(2, 2), New(3, 3))

	require.Equal(t, 4, x.Union(y).Popcnt())
	require.Equal(t, 2, x.Intersect(y).Popcnt())
	require.Equal(t, Of(New(0, 0)), x.Diff(y))
}

func TestSet_IsEmpty(t *testing.T) {
	require.True(t, Empty.IsEmpty())
	require.False(t, Of(New(0, 0)).IsEmpty())
}

func TestSet_IterAndSlice(t *testing.T) {
	s := Of(New(4, 4), New(0, 0), New(2, 2))
	slice := s.Slice()
	require.Len(t, slice, 3)
	for i := 1; i < len(slice); i++ {
		require.Less(t, slice[i-1], slice[i])
	}

	var visited []Tile
	s.Iter(func(tl Tile) { visited = append(visited, tl) })
	require.Equal(t, slice, visited)
}

func TestSet_Pop(t *testing.T) {
	s := Of(New(1, 1), New(3, 3))
	first := s.Pop()
	require.Equal(t, New(1, 1), first)
	require.Equal(t, 1, s.Popcnt())
}

func TestSet_PopPanicsOnEmpty(t *testing.T) {
	var s Set
	require.Panics(t, func() { s.Pop() })
}
