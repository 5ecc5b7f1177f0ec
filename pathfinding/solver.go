package pathfinding

import (
	"container/heap"
	"fmt"
	"math"
)

// Strategy selects the frontier ordering used by a Solver
type Strategy int

const (
	// Dijkstra orders the frontier by tentative cost alone
	Dijkstra Strategy = iota
	// AStar adds the straight-line distance to the goal
	AStar
)

func (s Strategy) String() string {
	switch s {
	case Dijkstra:
		return "dijkstra"
	case AStar:
		return "astar"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy converts "dijkstra" or "astar" to a Strategy
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "a*":
		return AStar, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", name)
	}
}

// Result is the outcome of a shortest-path query
type Result struct {
	Path     []int   // Node indices from start to end inclusive
	Cost     float64 // Sum of edge weights along Path
	Expanded int     // Number of nodes settled before the search stopped
}

// Solver answers repeated shortest-path queries over one graph.
//
// The cost, predecessor and frontier buffers are allocated once and reset
// on every query, so a Solver must not be shared between goroutines. The
// weights and nodes are only read and can be shared by any number of
// solvers.
type Solver[N Locator[N]] struct {
	weights  Weights
	nodes    []N
	strategy Strategy

	costs     []float64
	prev      []int
	heuristic []float64
	open      frontier
}

// NewSolver creates a solver for the given graph. nodes may be nil when
// strategy is Dijkstra; A* needs one node per graph index.
func NewSolver[N Locator[N]](weights Weights, nodes []N, strategy Strategy) (*Solver[N], error) {
	if strategy != Dijkstra && strategy != AStar {
		return nil, fmt.Errorf("unknown strategy %v", strategy)
	}
	n := weights.Len()
	if strategy == AStar && len(nodes) != n {
		return nil, fmt.Errorf("%w: %d nodes for %d weights", ErrNodeCount, len(nodes), n)
	}

	s := &Solver[N]{
		weights:  weights,
		nodes:    nodes,
		strategy: strategy,
		costs:    make([]float64, n),
		prev:     make([]int, n),
		open:     make(frontier, 0, n),
	}
	if strategy == AStar {
		s.heuristic = make([]float64, n)
	}
	return s, nil
}

// Strategy returns the frontier ordering used by the solver
func (s *Solver[N]) Strategy() Strategy { return s.strategy }

// ShortestPath computes the minimum-cost path from start to end.
// Returns ErrInvalidIndex for out-of-range endpoints and ErrNoPath when
// end is not reachable from start.
func (s *Solver[N]) ShortestPath(start, end int) (Result, error) {
	n := s.weights.Len()
	if start < 0 || start >= n {
		return Result{}, fmt.Errorf("%w: start %d, graph has %d nodes", ErrInvalidIndex, start, n)
	}
	if end < 0 || end >= n {
		return Result{}, fmt.Errorf("%w: end %d, graph has %d nodes", ErrInvalidIndex, end, n)
	}
	if start == end {
		return Result{Path: []int{start}}, nil
	}

	s.reset(end)
	s.costs[start] = 0
	heap.Push(&s.open, entry{node: start, cost: 0, key: s.estimate(start, 0)})

	expanded := 0
	for s.open.Len() > 0 {
		current := heap.Pop(&s.open).(entry)
		if current.node == end {
			break
		}
		// Stale entry: a cheaper route to this node was pushed after it
		if s.costs[current.node] < current.cost {
			continue
		}
		expanded++

		s.weights.Neighbors(current.node, func(j int, w float64) {
			cost := current.cost + w
			if cost < s.costs[j] {
				s.costs[j] = cost
				s.prev[j] = current.node
				heap.Push(&s.open, entry{node: j, cost: cost, key: s.estimate(j, cost)})
			}
		})
	}

	path, err := s.reconstruct(start, end)
	if err != nil {
		return Result{Expanded: expanded}, err
	}
	return Result{Path: path, Cost: s.costs[end], Expanded: expanded}, nil
}

// reset clears the scratch state left by the previous query
func (s *Solver[N]) reset(end int) {
	n := len(s.costs)
	for i := range s.costs {
		s.costs[i] = math.Inf(1)
		s.prev[i] = n
	}
	s.open = s.open[:0]

	if s.strategy == AStar {
		goal := s.nodes[end]
		for i := range s.heuristic {
			s.heuristic[i] = s.nodes[i].Distance(goal)
		}
	}
}

func (s *Solver[N]) estimate(node int, cost float64) float64 {
	if s.strategy == AStar {
		return cost + s.heuristic[node]
	}
	return cost
}

// reconstruct walks predecessors back from end. The walk is bounded by the
// node count so a broken chain can never loop.
func (s *Solver[N]) reconstruct(start, end int) ([]int, error) {
	n := len(s.prev)
	path := []int{end}
	for i, steps := end, 0; i != start; steps++ {
		i = s.prev[i]
		if i == n || steps >= n {
			return nil, fmt.Errorf("%w: %d to %d", ErrNoPath, start, end)
		}
		path = append(path, i)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// ShortestPath runs a single Dijkstra query with a throwaway solver
func ShortestPath(weights Weights, start, end int) (Result, error) {
	s, err := NewSolver[Point](weights, nil, Dijkstra)
	if err != nil {
		return Result{}, err
	}
	return s.ShortestPath(start, end)
}

// AStarPath runs a single A* query with a throwaway solver
func AStarPath[N Locator[N]](weights Weights, nodes []N, start, end int) (Result, error) {
	s, err := NewSolver(weights, nodes, AStar)
	if err != nil {
		return Result{}, err
	}
	return s.ShortestPath(start, end)
}
