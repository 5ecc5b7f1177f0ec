package pathfinding

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Locator is implemented by node types that can measure the distance to
// another node of the same type. Distance must be non-negative, symmetric
// and satisfy the triangle inequality, otherwise A* loses optimality.
type Locator[N any] interface {
	Distance(other N) float64
}

// Point is a position on the 2D plane
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Orb converts the point to an orb.Point
func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// FromOrb converts an orb.Point to a Point
func FromOrb(p orb.Point) Point {
	return Point{X: p.X(), Y: p.Y()}
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return planar.Distance(p.Orb(), other.Orb())
}

// GeoPoint is a longitude/latitude pair in degrees
type GeoPoint struct {
	Lon float64 `json:"lon" yaml:"lon"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// Distance calculates the distance in meters between two points using the
// Haversine formula (geo.Distance is not a metric)
func (p GeoPoint) Distance(other GeoPoint) float64 {
	return geo.DistanceHaversine(orb.Point{p.Lon, p.Lat}, orb.Point{other.Lon, other.Lat})
}
