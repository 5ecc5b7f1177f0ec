package pathfinding

import (
	"fmt"
	"math"
)

// BuildMatrix converts nodes and an undirected edge list into a dense
// weight matrix. Each edge weight is the distance between its endpoints.
func BuildMatrix[N Locator[N]](nodes []N, edges []Edge) (*Matrix, error) {
	m := NewMatrix(len(nodes))
	if err := buildInto(nodes, edges, m.set); err != nil {
		return nil, err
	}
	return m, nil
}

// BuildAdjacency is BuildMatrix for large graphs: storage is proportional
// to the number of edges rather than N^2
func BuildAdjacency[N Locator[N]](nodes []N, edges []Edge) (*Adjacency, error) {
	a := NewAdjacency(len(nodes))
	if err := buildInto(nodes, edges, a.set); err != nil {
		return nil, err
	}
	return a, nil
}

// buildInto validates every edge before writing any weight
func buildInto[N Locator[N]](nodes []N, edges []Edge, set func(i, j int, w float64)) error {
	weights := make([]float64, len(edges))
	for k, e := range edges {
		w, err := edgeWeight(nodes, e)
		if err != nil {
			return fmt.Errorf("edge %d (%d-%d): %w", k, e.A, e.B, err)
		}
		weights[k] = w
	}
	for k, e := range edges {
		set(e.A, e.B, weights[k])
	}
	return nil
}

func edgeWeight[N Locator[N]](nodes []N, e Edge) (float64, error) {
	n := len(nodes)
	if e.A < 0 || e.A >= n || e.B < 0 || e.B >= n {
		return 0, fmt.Errorf("%w: graph has %d nodes", ErrInvalidIndex, n)
	}
	if e.A == e.B {
		return 0, ErrSelfLoop
	}
	w := nodes[e.A].Distance(nodes[e.B])
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidWeight, w)
	}
	return w, nil
}
