// Package waypoints loads navigation levels: waypoint positions, the edges
// between them and the walls that block line of sight.
package waypoints

import (
	"errors"
	"fmt"
	"math"

	"waypoint-planner/pathfinding"
)

var (
	// ErrUnknownFormat is returned for level files with an unsupported extension
	ErrUnknownFormat = errors.New("unknown level format")
	// ErrDanglingEdge is returned when an edge endpoint matches no node
	ErrDanglingEdge = errors.New("edge endpoint is not a node")
	// ErrEmptyLevel is returned for a level without nodes
	ErrEmptyLevel = errors.New("level has no nodes")
)

// Level is a loaded waypoint graph
type Level struct {
	Nodes []pathfinding.Point
	Edges []pathfinding.Edge
	Walls []Segment

	// ConnectRadius, when positive, adds an edge between every pair of
	// mutually visible nodes within this distance
	ConnectRadius float64
}

// Validate checks that the level can be turned into a weight table
func (l *Level) Validate() error {
	if len(l.Nodes) == 0 {
		return ErrEmptyLevel
	}
	for i, p := range l.Nodes {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("node %d: %w: position (%v, %v)", i, pathfinding.ErrInvalidWeight, p.X, p.Y)
		}
	}
	n := len(l.Nodes)
	for k, e := range l.Edges {
		if e.A < 0 || e.A >= n || e.B < 0 || e.B >= n {
			return fmt.Errorf("edge %d (%d-%d): %w", k, e.A, e.B, pathfinding.ErrInvalidIndex)
		}
		if e.A == e.B {
			return fmt.Errorf("edge %d (%d-%d): %w", k, e.A, e.B, pathfinding.ErrSelfLoop)
		}
	}
	return nil
}

// Connect appends the visibility edges for ConnectRadius, skipping pairs
// already joined by an authored edge
func (l *Level) Connect() int {
	if l.ConnectRadius <= 0 {
		return 0
	}
	seen := make(map[pathfinding.Edge]struct{}, len(l.Edges))
	for _, e := range l.Edges {
		seen[canonical(e)] = struct{}{}
	}

	added := 0
	for _, e := range ConnectVisible(l.Nodes, l.ConnectRadius, l.Walls) {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		l.Edges = append(l.Edges, e)
		added++
	}
	return added
}

// Weights builds the weight table for the level, a B-tree adjacency when
// sparse is set and a dense matrix otherwise
func (l *Level) Weights(sparse bool) (pathfinding.Weights, error) {
	if sparse {
		adj, err := pathfinding.BuildAdjacency(l.Nodes, l.Edges)
		if err != nil {
			return nil, err
		}
		return adj, nil
	}
	m, err := pathfinding.BuildMatrix(l.Nodes, l.Edges)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Lines returns every distinct edge once as a pair of end points
func (l *Level) Lines() [][2]pathfinding.Point {
	seen := make(map[pathfinding.Edge]struct{}, len(l.Edges))
	lines := make([][2]pathfinding.Point, 0, len(l.Edges))
	for _, e := range l.Edges {
		key := canonical(e)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		lines = append(lines, [2]pathfinding.Point{l.Nodes[e.A], l.Nodes[e.B]})
	}
	return lines
}

func canonical(e pathfinding.Edge) pathfinding.Edge {
	if e.B < e.A {
		return pathfinding.Edge{A: e.B, B: e.A}
	}
	return e
}
