package waypoints

import (
	"math"

	"github.com/paulmach/orb"

	"waypoint-planner/pathfinding"
)

// Segment is a straight wall between two points
type Segment struct {
	A, B pathfinding.Point
}

// Bound returns the axis-aligned bounding box of the segment
func (s Segment) Bound() orb.Bound {
	return orb.LineString{s.A.Orb(), s.B.Orb()}.Bound()
}

// Crosses reports whether two segments intersect. Segments that only share
// an endpoint do not cross, so edges may meet at a wall's corner.
func (s Segment) Crosses(other Segment) bool {
	p1, p2 := s.A, s.B
	p3, p4 := other.A, other.B

	if p1 == p3 || p1 == p4 || p2 == p3 || p2 == p4 {
		return false
	}
	if !s.Bound().Intersects(other.Bound()) {
		return false
	}

	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear touching
	switch {
	case d1 == 0 && onSegment(p3, p4, p1):
		return true
	case d2 == 0 && onSegment(p3, p4, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, p3):
		return true
	case d4 == 0 && onSegment(p1, p2, p4):
		return true
	}
	return false
}

// direction is the cross product of (p2-p1) and (p3-p1), sign gives orientation
func direction(p1, p2, p3 pathfinding.Point) float64 {
	return (p3.X-p1.X)*(p2.Y-p1.Y) - (p2.X-p1.X)*(p3.Y-p1.Y)
}

// onSegment reports whether q lies inside the bounding box of pr
func onSegment(p, r, q pathfinding.Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// Visible reports whether the straight line from a to b crosses no wall
func Visible(a, b pathfinding.Point, walls []Segment) bool {
	sight := Segment{A: a, B: b}
	for _, wall := range walls {
		if sight.Crosses(wall) {
			return false
		}
	}
	return true
}
