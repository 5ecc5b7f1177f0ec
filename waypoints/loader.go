package waypoints

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gopkg.in/yaml.v3"

	"waypoint-planner/pathfinding"
)

// Load reads a level from a GeoJSON (.geojson, .json) or YAML (.yaml, .yml)
// file, adds visibility edges when the level sets a connect radius, and
// validates the result
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}

	var level *Level
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		level, err = ParseGeoJSON(data)
	case ".yaml", ".yml":
		level, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse level %s: %w", filepath.Base(path), err)
	}

	level.Connect()
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", filepath.Base(path), err)
	}
	return level, nil
}

// ParseGeoJSON decodes a feature collection. Point features become nodes in
// file order. LineStrings with the property kind=wall become walls, one per
// consecutive pair of coordinates; every other LineString is a chain of
// edges whose coordinates must coincide with nodes. A numeric
// "connect_radius" member on the collection sets Level.ConnectRadius.
func ParseGeoJSON(data []byte) (*Level, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	level := &Level{}
	var chains []orb.LineString
	for i, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Point:
			level.Nodes = append(level.Nodes, pathfinding.FromOrb(g))
		case orb.LineString:
			if len(g) < 2 {
				return nil, fmt.Errorf("feature %d: line string needs at least two points", i)
			}
			kind, _ := f.Properties["kind"].(string)
			if kind == "wall" {
				for k := 1; k < len(g); k++ {
					level.Walls = append(level.Walls, Segment{A: pathfinding.FromOrb(g[k-1]), B: pathfinding.FromOrb(g[k])})
				}
				continue
			}
			chains = append(chains, g)
		default:
			return nil, fmt.Errorf("feature %d: unsupported geometry %T", i, f.Geometry)
		}
	}

	// Edges may precede the nodes they reference, so resolve them last.
	// The first node at a position owns it.
	lookup := make(map[orb.Point]int, len(level.Nodes))
	for i, p := range level.Nodes {
		if _, ok := lookup[p.Orb()]; !ok {
			lookup[p.Orb()] = i
		}
	}
	for _, chain := range chains {
		prev, ok := lookup[chain[0]]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrDanglingEdge, chain[0])
		}
		for _, p := range chain[1:] {
			next, ok := lookup[p]
			if !ok {
				return nil, fmt.Errorf("%w: %v", ErrDanglingEdge, p)
			}
			level.Edges = append(level.Edges, pathfinding.Edge{A: prev, B: next})
			prev = next
		}
	}

	if r, ok := fc.ExtraMembers["connect_radius"].(float64); ok {
		level.ConnectRadius = r
	}
	return level, nil
}

// levelFile is the YAML level layout
type levelFile struct {
	Nodes         [][]float64   `yaml:"nodes"`
	Edges         [][]int       `yaml:"edges"`
	Walls         [][][]float64 `yaml:"walls"`
	ConnectRadius float64       `yaml:"connect_radius"`
}

// ParseYAML decodes a level of the form
//
//	nodes: [[x, y], ...]
//	edges: [[i, j], ...]
//	walls: [[[x, y], [x, y]], ...]
//	connect_radius: 60
func ParseYAML(data []byte) (*Level, error) {
	var file levelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	level := &Level{ConnectRadius: file.ConnectRadius}
	for i, n := range file.Nodes {
		p, err := point(n)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		level.Nodes = append(level.Nodes, p)
	}
	for i, e := range file.Edges {
		if len(e) != 2 {
			return nil, fmt.Errorf("edge %d: want 2 indices, got %d", i, len(e))
		}
		level.Edges = append(level.Edges, pathfinding.Edge{A: e[0], B: e[1]})
	}
	for i, w := range file.Walls {
		if len(w) != 2 {
			return nil, fmt.Errorf("wall %d: want 2 points, got %d", i, len(w))
		}
		a, err := point(w[0])
		if err != nil {
			return nil, fmt.Errorf("wall %d: %w", i, err)
		}
		b, err := point(w[1])
		if err != nil {
			return nil, fmt.Errorf("wall %d: %w", i, err)
		}
		level.Walls = append(level.Walls, Segment{A: a, B: b})
	}
	return level, nil
}

func point(xy []float64) (pathfinding.Point, error) {
	if len(xy) != 2 {
		return pathfinding.Point{}, fmt.Errorf("want 2 coordinates, got %d", len(xy))
	}
	return pathfinding.Point{X: xy[0], Y: xy[1]}, nil
}
