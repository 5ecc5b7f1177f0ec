package pathfinding

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// pointTolerance gives indexed points a non-degenerate bounding box
const pointTolerance = 1e-9

// pointEntry wraps a node for R-tree storage
type pointEntry struct {
	index int
	point Point
}

// Bounds implements rtreego.Spatial interface
func (e *pointEntry) Bounds() rtreego.Rect {
	return rtreego.Point{e.point.X, e.point.Y}.ToRect(pointTolerance)
}

// PointIndex answers nearest-node queries over a fixed node list in
// logarithmic time. Results match Nearest exactly, including ties.
type PointIndex struct {
	tree   *rtreego.Rtree
	points []Point
}

// NewPointIndex creates a spatial index over nodes
func NewPointIndex(nodes []Point) *PointIndex {
	objs := make([]rtreego.Spatial, len(nodes))
	for i, p := range nodes {
		objs[i] = &pointEntry{index: i, point: p}
	}
	points := make([]Point, len(nodes))
	copy(points, nodes)

	return &PointIndex{
		tree:   rtreego.NewTree(2, 25, 50, objs...), // 2D, min 25, max 50 entries per node
		points: points,
	}
}

// Len returns the number of indexed nodes
func (idx *PointIndex) Len() int { return len(idx.points) }

// Nearest returns the index of the closest node to point and its distance.
// Returns -1 and +Inf for an empty index, and also when no node is at a
// finite distance (non-finite or overflowing query coordinates).
func (idx *PointIndex) Nearest(point Point) (int, float64) {
	if idx.tree.Size() == 0 {
		return -1, math.Inf(1)
	}

	q := rtreego.Point{point.X, point.Y}
	// NearestNeighbor returns nil when every candidate distance is non-finite
	best, ok := idx.tree.NearestNeighbor(q).(*pointEntry)
	if !ok || best == nil {
		return -1, math.Inf(1)
	}
	radius := point.Distance(best.point)
	if math.IsNaN(radius) || math.IsInf(radius, 1) {
		return -1, math.Inf(1)
	}

	// NearestNeighbor picks an arbitrary winner among equidistant nodes;
	// rescan every node in the winning radius for the lowest index.
	nearestID, minDist := best.index, radius
	for _, obj := range idx.tree.SearchIntersect(q.ToRect(radius + pointTolerance*2)) {
		e := obj.(*pointEntry)
		dist := point.Distance(e.point)
		if dist < minDist || (dist == minDist && e.index < nearestID) {
			nearestID, minDist = e.index, dist
		}
	}

	return nearestID, minDist
}

// Within returns the indices of all nodes no farther than radius from point,
// in ascending index order
func (idx *PointIndex) Within(point Point, radius float64) []int {
	q := rtreego.Point{point.X, point.Y}
	results := idx.tree.SearchIntersect(q.ToRect(radius + pointTolerance))

	found := make([]bool, len(idx.points))
	for _, obj := range results {
		e := obj.(*pointEntry)
		if point.Distance(e.point) <= radius {
			found[e.index] = true
		}
	}

	indices := make([]int, 0, len(results))
	for i, ok := range found {
		if ok {
			indices = append(indices, i)
		}
	}
	return indices
}
