package pathfinding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square returns the 4-cycle (0,0) (10,0) (10,10) (0,10)
func square() ([]Point, []Edge) {
	nodes := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	edges := []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	return nodes, edges
}

// nanPoint reports NaN for every distance
type nanPoint struct{}

func (nanPoint) Distance(nanPoint) float64 { return math.NaN() }

func TestBuildMatrix(t *testing.T) {
	t.Run("weights follow edges", func(t *testing.T) {
		nodes, edges := square()
		m, err := BuildMatrix(nodes, edges)
		require.NoError(t, err)
		require.Equal(t, 4, m.Len())

		for i := 0; i < 4; i++ {
			assert.Zero(t, m.Weight(i, i))
		}
		assert.Equal(t, 10.0, m.Weight(0, 1))
		assert.Equal(t, 10.0, m.Weight(1, 0))
		assert.Equal(t, 10.0, m.Weight(3, 0))
		assert.True(t, math.IsInf(m.Weight(0, 2), 1))
		assert.True(t, math.IsInf(m.Weight(1, 3), 1))
	})

	t.Run("symmetric", func(t *testing.T) {
		nodes, edges := square()
		edges = append(edges, Edge{2, 0})
		m, err := BuildMatrix(nodes, edges)
		require.NoError(t, err)

		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				assert.Equal(t, m.Weight(i, j), m.Weight(j, i), "w[%d][%d]", i, j)
			}
		}
		assert.InDelta(t, math.Sqrt(200), m.Weight(0, 2), 1e-12)
	})

	t.Run("idempotent", func(t *testing.T) {
		nodes, edges := square()
		a, err := BuildMatrix(nodes, edges)
		require.NoError(t, err)
		b, err := BuildMatrix(nodes, append(edges, Edge{1, 0}))
		require.NoError(t, err)
		assert.Equal(t, a.cells, b.cells)
	})

	t.Run("neighbors ascending", func(t *testing.T) {
		nodes, edges := square()
		m, err := BuildMatrix(nodes, append(edges, Edge{0, 2}))
		require.NoError(t, err)

		var got []int
		m.Neighbors(0, func(j int, _ float64) { got = append(got, j) })
		assert.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("rejects bad edges", func(t *testing.T) {
		nodes, _ := square()

		_, err := BuildMatrix(nodes, []Edge{{0, 4}})
		assert.ErrorIs(t, err, ErrInvalidIndex)

		_, err = BuildMatrix(nodes, []Edge{{-1, 2}})
		assert.ErrorIs(t, err, ErrInvalidIndex)

		_, err = BuildMatrix(nodes, []Edge{{0, 1}, {2, 2}})
		assert.ErrorIs(t, err, ErrSelfLoop)

		_, err = BuildMatrix([]nanPoint{{}, {}}, []Edge{{0, 1}})
		assert.ErrorIs(t, err, ErrInvalidWeight)
	})

	t.Run("empty graph", func(t *testing.T) {
		m, err := BuildMatrix[Point](nil, nil)
		require.NoError(t, err)
		assert.Zero(t, m.Len())
	})
}

func TestBuildAdjacency(t *testing.T) {
	nodes, edges := square()
	edges = append(edges, Edge{0, 2}, Edge{2, 0})

	a, err := BuildAdjacency(nodes, edges)
	require.NoError(t, err)
	m, err := BuildMatrix(nodes, edges)
	require.NoError(t, err)

	require.Equal(t, m.Len(), a.Len())
	for i := 0; i < m.Len(); i++ {
		for j := 0; j < m.Len(); j++ {
			assert.Equal(t, m.Weight(i, j), a.Weight(i, j), "w[%d][%d]", i, j)
		}

		var dense, sparse []int
		m.Neighbors(i, func(j int, _ float64) { dense = append(dense, j) })
		a.Neighbors(i, func(j int, _ float64) { sparse = append(sparse, j) })
		assert.Equal(t, dense, sparse, "neighbors of %d", i)
		assert.Equal(t, len(dense), a.Degree(i))
	}

	_, err = BuildAdjacency(nodes, []Edge{{1, 1}})
	assert.ErrorIs(t, err, ErrSelfLoop)
}

func TestPathCost(t *testing.T) {
	nodes, edges := square()
	m, err := BuildMatrix(nodes, edges)
	require.NoError(t, err)

	assert.Equal(t, 20.0, PathCost(m, []int{0, 1, 2}))
	assert.Zero(t, PathCost(m, []int{3}))
	assert.True(t, math.IsInf(PathCost(m, []int{0, 2}), 1))
}

func TestGeoPointDistance(t *testing.T) {
	maastricht := GeoPoint{Lon: 5.6909, Lat: 50.8514}
	amsterdam := GeoPoint{Lon: 4.9041, Lat: 52.3676}

	d := maastricht.Distance(amsterdam)
	assert.InDelta(t, 178000, d, 5000)
	assert.Equal(t, d, amsterdam.Distance(maastricht))
	assert.Zero(t, maastricht.Distance(maastricht))
}
