// Package navigation turns shortest paths into agent motion.
//
// Every tick the Navigator picks the waypoint nearest to the cursor,
// re-solves from the agent's current waypoint, steps the agent to the
// next waypoint once it has arrived, and integrates a damped steering
// force toward the current waypoint. The full solve runs every tick;
// graphs are small and the target moves freely.
package navigation

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"waypoint-planner/metrics"
	"waypoint-planner/pathfinding"
)

// ErrNoNodes is returned when a navigator is created over an empty graph
var ErrNoNodes = errors.New("navigation graph has no nodes")

// normalizeEpsilon keeps normalize finite for zero-length vectors
const normalizeEpsilon = 1.1920929e-07

// Config holds the steering tuning of a Navigator
type Config struct {
	ArrivalRadius float64              // Distance at which the current waypoint counts as reached
	Acceleration  float64              // Steering force added per tick
	Drag          float64              // Velocity multiplier applied per tick
	Strategy      pathfinding.Strategy // Frontier ordering for the per-tick solve
	SpatialIndex  bool                 // Use an R-tree for the cursor lookup
}

// DefaultConfig returns the stock steering tuning with A* search
func DefaultConfig() Config {
	return Config{
		ArrivalRadius: 16.5 / 2,
		Acceleration:  0.6975,
		Drag:          0.825,
		Strategy:      pathfinding.AStar,
	}
}

// Agent is the per-agent navigation state mutated by Step
type Agent struct {
	Waypoint int               // Index of the waypoint the agent is heading to
	Position pathfinding.Point // World position
	Velocity pathfinding.Point // Displacement per tick
}

// Step reports what happened during one tick
type Step struct {
	Target   int     // Waypoint nearest to the cursor
	Path     []int   // Solved path from the agent's waypoint (before advancing) to Target
	Cost     float64 // Cost of Path
	Expanded int     // Nodes settled by the solver
	Advanced bool    // Whether the agent moved on to Path[1] this tick
}

// Option configures a Navigator
type Option func(*Navigator)

// WithLogger sets the logger used for debug output
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) { n.logger = logger }
}

// Navigator drives agents over one waypoint graph. It owns a solver with
// reusable scratch buffers and must not be used from several goroutines.
type Navigator struct {
	nodes  []pathfinding.Point
	solver *pathfinding.Solver[pathfinding.Point]
	index  *pathfinding.PointIndex
	cfg    Config
	logger *slog.Logger
}

// NewNavigator creates a navigator over nodes and their weights
func NewNavigator(nodes []pathfinding.Point, weights pathfinding.Weights, cfg Config, opts ...Option) (*Navigator, error) {
	if len(nodes) == 0 {
		return nil, ErrNoNodes
	}
	if weights.Len() != len(nodes) {
		return nil, fmt.Errorf("%w: %d nodes for %d weights", pathfinding.ErrNodeCount, len(nodes), weights.Len())
	}
	solver, err := pathfinding.NewSolver(weights, nodes, cfg.Strategy)
	if err != nil {
		return nil, fmt.Errorf("create solver: %w", err)
	}

	n := &Navigator{
		nodes:  nodes,
		solver: solver,
		cfg:    cfg,
		logger: slog.Default(),
	}
	if cfg.SpatialIndex {
		n.index = pathfinding.NewPointIndex(nodes)
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Config returns the navigator's tuning
func (n *Navigator) Config() Config { return n.cfg }

// Nodes returns the waypoint positions
func (n *Navigator) Nodes() []pathfinding.Point { return n.nodes }

// Spawn returns an agent at rest on the given waypoint
func (n *Navigator) Spawn(waypoint int) (Agent, error) {
	if waypoint < 0 || waypoint >= len(n.nodes) {
		return Agent{}, fmt.Errorf("%w: waypoint %d, graph has %d nodes", pathfinding.ErrInvalidIndex, waypoint, len(n.nodes))
	}
	return Agent{Waypoint: waypoint, Position: n.nodes[waypoint]}, nil
}

// Nearest returns the waypoint closest to point
func (n *Navigator) Nearest(point pathfinding.Point) (int, float64) {
	if n.index != nil {
		return n.index.Nearest(point)
	}
	return pathfinding.Nearest(n.nodes, point)
}

// Step advances agent by one tick toward the waypoint nearest to cursor.
//
// When the target is unreachable the agent keeps its waypoint, still
// coasts under drag, and the wrapped pathfinding.ErrNoPath is returned
// with the rest of Step filled in. An agent waypoint outside the graph
// returns pathfinding.ErrInvalidIndex and leaves the agent untouched.
func (n *Navigator) Step(agent *Agent, cursor pathfinding.Point) (Step, error) {
	strategy := n.cfg.Strategy.String()

	target, _ := n.Nearest(cursor)
	step := Step{Target: target}

	res, err := n.solver.ShortestPath(agent.Waypoint, target)
	step.Expanded = res.Expanded
	switch {
	case errors.Is(err, pathfinding.ErrNoPath):
		metrics.ObserveQuery(strategy, metrics.OutcomeNoPath, res.Expanded)
		n.logger.Debug("target unreachable, holding waypoint",
			slog.Int("waypoint", agent.Waypoint),
			slog.Int("target", target),
		)
		n.steer(agent)
		return step, err
	case err != nil:
		metrics.ObserveQuery(strategy, metrics.OutcomeInvalid, 0)
		return step, err
	}
	metrics.ObserveQuery(strategy, metrics.OutcomeFound, res.Expanded)

	step.Path = res.Path
	step.Cost = res.Cost

	if len(res.Path) > 1 && n.gap(agent) <= n.cfg.ArrivalRadius {
		agent.Waypoint = res.Path[1]
		step.Advanced = true
		n.logger.Debug("waypoint reached",
			slog.Int("next", agent.Waypoint),
			slog.Int("target", target),
			slog.Int("remaining", len(res.Path)-1),
		)
	}

	n.steer(agent)
	return step, nil
}

// gap is the distance from the agent to its current waypoint
func (n *Navigator) gap(agent *Agent) float64 {
	return agent.Position.Distance(n.nodes[agent.Waypoint])
}

// steer accelerates toward the current waypoint unless already within the
// arrival radius, then applies drag and integrates position
func (n *Navigator) steer(agent *Agent) {
	if n.cfg.ArrivalRadius < n.gap(agent) {
		wp := n.nodes[agent.Waypoint]
		dir := normalize(wp.X-agent.Position.X, wp.Y-agent.Position.Y)
		agent.Velocity.X += dir.X * n.cfg.Acceleration
		agent.Velocity.Y += dir.Y * n.cfg.Acceleration
	}
	agent.Velocity.X *= n.cfg.Drag
	agent.Velocity.Y *= n.cfg.Drag

	agent.Position.X += agent.Velocity.X
	agent.Position.Y += agent.Velocity.Y
}

func normalize(x, y float64) pathfinding.Point {
	l := math.Hypot(x, y) + normalizeEpsilon
	return pathfinding.Point{X: x / l, Y: y / l}
}
