package pathfinding

import "math"

// Nearest finds the closest node to a given point.
// Ties go to the lowest index. Returns -1 and +Inf for an empty node list.
func Nearest[N Locator[N]](nodes []N, point N) (int, float64) {
	nearestID := -1
	minDist := math.Inf(1)

	for i, node := range nodes {
		dist := point.Distance(node)
		if dist < minDist {
			minDist = dist
			nearestID = i
		}
	}

	return nearestID, minDist
}
