package pathfinding

import (
	"math"

	"github.com/tidwall/btree"
)

// Adjacency stores only finite weights, one ordered row per node.
// Rows are B-trees keyed by neighbour index so Neighbors iterates in the
// same ascending order as Matrix.
type Adjacency struct {
	rows []btree.Map[int, float64]
}

// NewAdjacency creates an adjacency table for n nodes with no edges
func NewAdjacency(n int) *Adjacency {
	return &Adjacency{rows: make([]btree.Map[int, float64], n)}
}

func (a *Adjacency) Len() int { return len(a.rows) }

func (a *Adjacency) Weight(i, j int) float64 {
	if i == j {
		return 0
	}
	if w, ok := a.rows[i].Get(j); ok {
		return w
	}
	return math.Inf(1)
}

func (a *Adjacency) Neighbors(i int, visit func(j int, w float64)) {
	a.rows[i].Scan(func(j int, w float64) bool {
		visit(j, w)
		return true
	})
}

// Degree returns the number of neighbours of node i
func (a *Adjacency) Degree(i int) int {
	return a.rows[i].Len()
}

func (a *Adjacency) set(i, j int, w float64) {
	a.rows[i].Set(j, w)
	a.rows[j].Set(i, w)
}
