package pathfinding

import "math"

// Edge is an undirected connection between two node indices
type Edge struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
}

// Weights is the read-only weight lookup used by the solver.
//
// Weight returns 0 on the diagonal and +Inf for pairs without an edge.
// Neighbors visits every j != i with a finite weight in ascending order
// of j; the solver's tie-break relies on that order being stable.
type Weights interface {
	Len() int
	Weight(i, j int) float64
	Neighbors(i int, visit func(j int, w float64))
}

// Matrix is a dense N x N weight table stored row-major
type Matrix struct {
	n     int
	cells []float64
}

// NewMatrix creates an n x n matrix with a zero diagonal and +Inf elsewhere
func NewMatrix(n int) *Matrix {
	cells := make([]float64, n*n)
	for i := range cells {
		cells[i] = math.Inf(1)
	}
	for i := 0; i < n; i++ {
		cells[i*n+i] = 0
	}
	return &Matrix{n: n, cells: cells}
}

func (m *Matrix) Len() int { return m.n }

func (m *Matrix) Weight(i, j int) float64 {
	return m.cells[i*m.n+j]
}

func (m *Matrix) Neighbors(i int, visit func(j int, w float64)) {
	row := m.cells[i*m.n : (i+1)*m.n]
	for j, w := range row {
		if j == i || math.IsInf(w, 1) {
			continue
		}
		visit(j, w)
	}
}

// set writes w to both [i][j] and [j][i]
func (m *Matrix) set(i, j int, w float64) {
	m.cells[i*m.n+j] = w
	m.cells[j*m.n+i] = w
}

// PathCost sums the weights along consecutive nodes of path.
// Returns +Inf if any hop has no edge.
func PathCost(w Weights, path []int) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += w.Weight(path[i], path[i+1])
	}
	return total
}
