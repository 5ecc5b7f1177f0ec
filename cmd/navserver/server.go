package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"waypoint-planner/config"
	"waypoint-planner/metrics"
	"waypoint-planner/pathfinding"
)

type RouteRequest struct {
	Start pathfinding.Point `json:"start"`
	End   pathfinding.Point `json:"end"`
}

type RouteResponse struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message,omitempty"`
	Nodes    []int               `json:"nodes,omitempty"`
	Path     []pathfinding.Point `json:"path,omitempty"`
	Cost     float64             `json:"cost,omitempty"`
	Expanded int                 `json:"expanded"`
}

// server answers route queries against the current graph
type server struct {
	cfg    *config.Config
	logger *slog.Logger

	mu    sync.RWMutex
	graph *graph
}

func newServer(cfg *config.Config, g *graph, logger *slog.Logger) *server {
	return &server{cfg: cfg, graph: g, logger: logger}
}

func (s *server) current() *graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// reload rebuilds the graph from disk. On failure the previous graph stays
// in service.
func (s *server) reload() error {
	g, err := buildGraph(s.cfg, s.logger)
	if err != nil {
		s.logger.Error("graph reload failed, keeping previous graph", slog.Any("error", err))
		return err
	}
	s.mu.Lock()
	s.graph = g
	s.mu.Unlock()
	return nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/graph", corsMiddleware(s.graphHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// corsMiddleware adds CORS headers so a browser debug view can call the API
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// POST /route - snap start and end to their nearest waypoints and solve
func (s *server) routeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("invalid route request", slog.Any("error", err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	g := s.current()
	nav := s.cfg.NavigatorConfig()
	strategy := nav.Strategy.String()

	// One solver per request; the graph snapshot is shared read-only
	solver, err := pathfinding.NewSolver(g.weights, g.level.Nodes, nav.Strategy)
	if err != nil {
		s.logger.Error("create solver", slog.Any("error", err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	start, _ := g.index.Nearest(req.Start)
	end, _ := g.index.Nearest(req.End)
	if start < 0 || end < 0 {
		s.logger.Warn("route endpoints too far from any waypoint",
			slog.Float64("start_x", req.Start.X), slog.Float64("start_y", req.Start.Y),
			slog.Float64("end_x", req.End.X), slog.Float64("end_y", req.End.Y),
		)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	res, err := solver.ShortestPath(start, end)
	switch {
	case errors.Is(err, pathfinding.ErrNoPath):
		metrics.ObserveQuery(strategy, metrics.OutcomeNoPath, res.Expanded)
		s.logger.Info("no route", slog.Int("start", start), slog.Int("end", end))
		writeJSON(w, http.StatusOK, RouteResponse{
			Message:  "No path between the nearest waypoints",
			Expanded: res.Expanded,
		})
		return
	case err != nil:
		metrics.ObserveQuery(strategy, metrics.OutcomeInvalid, 0)
		s.logger.Error("route query failed", slog.Any("error", err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	metrics.ObserveQuery(strategy, metrics.OutcomeFound, res.Expanded)

	path := make([]pathfinding.Point, len(res.Path))
	for i, n := range res.Path {
		path[i] = g.level.Nodes[n]
	}

	s.logger.Debug("route found",
		slog.Int("start", start),
		slog.Int("end", end),
		slog.Int("waypoints", len(res.Path)),
		slog.Float64("cost", res.Cost),
		slog.Int("expanded", res.Expanded),
	)
	writeJSON(w, http.StatusOK, RouteResponse{
		Success:  true,
		Nodes:    res.Path,
		Path:     path,
		Cost:     res.Cost,
		Expanded: res.Expanded,
	})
}

// GET /graph - edges as line segments for visualization
func (s *server) graphHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	g := s.current()
	lines := g.level.Lines()
	walls := make([][2]pathfinding.Point, len(g.level.Walls))
	for i, wall := range g.level.Walls {
		walls[i] = [2]pathfinding.Point{wall.A, wall.B}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"nodes":    g.level.Nodes,
		"lines":    lines,
		"walls":    walls,
		"numNodes": len(g.level.Nodes),
		"numEdges": len(lines),
	})
}

// GET /health
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	g := s.current()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ready",
		"level":    s.cfg.Level,
		"numNodes": len(g.level.Nodes),
		"builtAt":  g.built,
	})
}
