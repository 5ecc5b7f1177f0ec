package waypoints

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"waypoint-planner/pathfinding"
)

func seg(ax, ay, bx, by float64) Segment {
	return Segment{A: pathfinding.Point{X: ax, Y: ay}, B: pathfinding.Point{X: bx, Y: by}}
}

func TestSegmentCrosses(t *testing.T) {
	tests := []struct {
		name string
		a, b Segment
		want bool
	}{
		{"proper crossing", seg(0, 0, 10, 10), seg(0, 10, 10, 0), true},
		{"parallel", seg(0, 0, 10, 0), seg(0, 5, 10, 5), false},
		{"disjoint boxes", seg(0, 0, 1, 1), seg(5, 5, 6, 7), false},
		{"shared endpoint", seg(0, 0, 10, 0), seg(10, 0, 10, 10), false},
		{"t junction", seg(0, 0, 10, 0), seg(5, 0, 5, 10), true},
		{"collinear overlap", seg(0, 0, 10, 0), seg(5, 0, 15, 0), true},
		{"collinear apart", seg(0, 0, 4, 0), seg(5, 0, 15, 0), false},
		{"near miss", seg(0, 0, 10, 0), seg(5, 0.01, 5, 10), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Crosses(tt.b))
			assert.Equal(t, tt.want, tt.b.Crosses(tt.a))
		})
	}
}

func TestVisible(t *testing.T) {
	walls := []Segment{seg(5, -5, 5, 5)}
	a := pathfinding.Point{X: 0, Y: 0}

	assert.False(t, Visible(a, pathfinding.Point{X: 10, Y: 0}, walls))
	assert.True(t, Visible(a, pathfinding.Point{X: 10, Y: 20}, walls))
	assert.True(t, Visible(a, pathfinding.Point{X: 10, Y: 0}, nil))
}
