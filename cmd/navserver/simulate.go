package main

import (
	"errors"
	"log/slog"
	"math"

	"waypoint-planner/config"
	"waypoint-planner/navigation"
	"waypoint-planner/pathfinding"
)

// orbitPeriod is the number of ticks for the cursor to circle the level once
const orbitPeriod = 600

type summary struct {
	Ticks       int
	Advances    int
	Unreachable int
	Distance    float64 // Total distance travelled by the agent
}

// simulate spawns an agent on waypoint 0 and steers it toward a cursor that
// orbits the level's bounding box
func simulate(g *graph, cfg *config.Config, logger *slog.Logger) (summary, error) {
	nav, err := navigation.NewNavigator(g.level.Nodes, g.weights, cfg.NavigatorConfig(), navigation.WithLogger(logger))
	if err != nil {
		return summary{}, err
	}
	agent, err := nav.Spawn(0)
	if err != nil {
		return summary{}, err
	}

	center, radius := orbit(g.level.Nodes)
	var s summary
	for tick := 0; tick < cfg.Simulation.Ticks; tick++ {
		angle := 2 * math.Pi * float64(tick) / orbitPeriod
		cursor := pathfinding.Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}

		before := agent.Position
		step, err := nav.Step(&agent, cursor)
		switch {
		case errors.Is(err, pathfinding.ErrNoPath):
			s.Unreachable++
		case err != nil:
			return s, err
		}
		if step.Advanced {
			s.Advances++
		}
		s.Distance += before.Distance(agent.Position)
		s.Ticks++

		if tick%60 == 0 {
			logger.Info("tick",
				slog.Int("tick", tick),
				slog.Int("waypoint", agent.Waypoint),
				slog.Int("target", step.Target),
				slog.Int("hops", max(len(step.Path)-1, 0)),
				slog.Float64("x", agent.Position.X),
				slog.Float64("y", agent.Position.Y),
			)
		}
	}
	return s, nil
}

// orbit returns the center of the nodes' bounding box and half its larger side
func orbit(nodes []pathfinding.Point) (pathfinding.Point, float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range nodes {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	center := pathfinding.Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
	return center, math.Max(maxX-minX, maxY-minY) / 2
}
