package main

import (
	"fmt"
	"log/slog"
	"time"

	"waypoint-planner/config"
	"waypoint-planner/metrics"
	"waypoint-planner/pathfinding"
	"waypoint-planner/waypoints"
)

// graph is an immutable snapshot of a loaded level. Requests share it
// read-only; a reload builds a new one and swaps the pointer.
type graph struct {
	level   *waypoints.Level
	weights pathfinding.Weights
	index   *pathfinding.PointIndex
	built   time.Time
}

// buildGraph loads the configured level and builds its weight table
func buildGraph(cfg *config.Config, logger *slog.Logger) (*graph, error) {
	start := time.Now()
	g, err := loadGraph(cfg)
	metrics.GraphBuildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GraphBuilds.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}
	metrics.GraphBuilds.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.GraphNodes.Set(float64(len(g.level.Nodes)))

	logger.Info("graph built",
		slog.String("level", cfg.Level),
		slog.Int("nodes", len(g.level.Nodes)),
		slog.Int("edges", len(g.level.Edges)),
		slog.Int("walls", len(g.level.Walls)),
		slog.Bool("sparse", cfg.Navigation.Sparse),
		slog.Duration("elapsed", time.Since(start)),
	)
	return g, nil
}

func loadGraph(cfg *config.Config) (*graph, error) {
	level, err := waypoints.Load(cfg.Level)
	if err != nil {
		return nil, err
	}
	weights, err := level.Weights(cfg.Navigation.Sparse)
	if err != nil {
		return nil, fmt.Errorf("build weights: %w", err)
	}
	return &graph{
		level:   level,
		weights: weights,
		index:   pathfinding.NewPointIndex(level.Nodes),
		built:   time.Now(),
	}, nil
}
