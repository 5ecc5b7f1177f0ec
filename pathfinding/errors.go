package pathfinding

import "errors"

// Sentinel errors for graph construction and path queries.
var (
	// ErrInvalidIndex is returned when a node index falls outside 0..N-1.
	ErrInvalidIndex = errors.New("node index out of range")

	// ErrSelfLoop is returned when an edge connects a node to itself.
	ErrSelfLoop = errors.New("edge connects a node to itself")

	// ErrInvalidWeight is returned when the distance between two connected
	// nodes is NaN, infinite or negative.
	ErrInvalidWeight = errors.New("edge weight is not a finite non-negative number")

	// ErrNodeCount is returned when the node list does not match the graph size.
	ErrNodeCount = errors.New("node count does not match graph size")

	// ErrNoPath is returned when the end node cannot be reached from the start node.
	ErrNoPath = errors.New("no path between nodes")
)
