package waypoints

import "waypoint-planner/pathfinding"

// ConnectVisible links every pair of nodes no farther apart than radius
// whose connecting line crosses no wall. Edges come out in ascending
// (A, B) order with A < B.
func ConnectVisible(nodes []pathfinding.Point, radius float64, walls []Segment) []pathfinding.Edge {
	if len(nodes) < 2 || radius <= 0 {
		return nil
	}

	index := pathfinding.NewPointIndex(nodes)
	var edges []pathfinding.Edge
	for i, p := range nodes {
		for _, j := range index.Within(p, radius) {
			if j <= i {
				continue
			}
			if !Visible(p, nodes[j], walls) {
				continue
			}
			edges = append(edges, pathfinding.Edge{A: i, B: j})
		}
	}
	return edges
}
