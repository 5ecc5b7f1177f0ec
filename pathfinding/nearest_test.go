package pathfinding

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearest(t *testing.T) {
	nodes, _ := square()

	t.Run("closest node", func(t *testing.T) {
		i, d := Nearest(nodes, Point{9, 1})
		assert.Equal(t, 1, i)
		assert.InDelta(t, math.Sqrt2, d, 1e-12)
	})

	t.Run("exact hit", func(t *testing.T) {
		i, d := Nearest(nodes, Point{0, 10})
		assert.Equal(t, 3, i)
		assert.Zero(t, d)
	})

	t.Run("tie goes to lowest index", func(t *testing.T) {
		i, _ := Nearest(nodes, Point{5, 5})
		assert.Equal(t, 0, i)
		i, _ = Nearest(nodes, Point{10, 5})
		assert.Equal(t, 1, i)
	})

	t.Run("empty", func(t *testing.T) {
		i, d := Nearest(nil, Point{1, 1})
		assert.Equal(t, -1, i)
		assert.True(t, math.IsInf(d, 1))
	})
}

func TestPointIndexMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	// Integer grid plus duplicates produces plenty of exact ties
	var nodes []Point
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			nodes = append(nodes, Point{float64(x * 5), float64(y * 5)})
		}
	}
	nodes = append(nodes, Point{10, 10}, Point{25, 30})
	idx := NewPointIndex(nodes)
	require.Equal(t, len(nodes), idx.Len())

	queries := []Point{{2.5, 2.5}, {10, 10}, {27.5, 30}, {-4, -4}, {100, 100}}
	for i := 0; i < 200; i++ {
		queries = append(queries, Point{X: rng.Float64()*70 - 5, Y: rng.Float64()*70 - 5})
	}

	for _, q := range queries {
		wantID, wantDist := Nearest(nodes, q)
		gotID, gotDist := idx.Nearest(q)
		assert.Equal(t, wantID, gotID, "query %v", q)
		assert.Equal(t, wantDist, gotDist, "query %v", q)
	}
}

func TestPointIndexUnreachableQuery(t *testing.T) {
	nodes := []Point{{0, 0}, {10, 0}, {10, 10}}
	idx := NewPointIndex(nodes)

	// Every distance overflows to +Inf or is NaN, so no node qualifies
	for _, q := range []Point{
		{1e308, 1e308},
		{1e200, 0},
		{-1e308, 1e308},
		{math.Inf(1), 0},
		{math.NaN(), 3},
	} {
		wantID, wantDist := Nearest(nodes, q)
		require.NotPanics(t, func() { idx.Nearest(q) }, "query %v", q)
		gotID, gotDist := idx.Nearest(q)

		assert.Equal(t, -1, wantID, "query %v", q)
		assert.Equal(t, wantID, gotID, "query %v", q)
		assert.True(t, math.IsInf(wantDist, 1), "query %v", q)
		assert.True(t, math.IsInf(gotDist, 1), "query %v", q)
	}
}

func TestPointIndexEmpty(t *testing.T) {
	idx := NewPointIndex(nil)
	i, d := idx.Nearest(Point{1, 2})
	assert.Equal(t, -1, i)
	assert.True(t, math.IsInf(d, 1))
	assert.Empty(t, idx.Within(Point{1, 2}, 10))
}

func TestPointIndexWithin(t *testing.T) {
	nodes := []Point{{0, 0}, {3, 4}, {10, 0}, {0, 5}, {6, 8}}
	idx := NewPointIndex(nodes)

	assert.Equal(t, []int{0, 1, 3}, idx.Within(Point{0, 0}, 5))
	assert.Equal(t, []int{0}, idx.Within(Point{0, 0}, 4.99))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, idx.Within(Point{0, 0}, 10))
}
