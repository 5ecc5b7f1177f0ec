// Package config loads the navserver YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"waypoint-planner/navigation"
	"waypoint-planner/pathfinding"
)

// ErrInvalidConfig is returned when a loaded value is out of range
var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level navserver configuration
type Config struct {
	// Level is the path of the waypoint level file
	Level string `yaml:"level"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	Server     ServerConfig     `yaml:"server"`
	Navigation NavigationConfig `yaml:"navigation"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// ServerConfig holds HTTP settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// NavigationConfig holds graph and steering settings
type NavigationConfig struct {
	ArrivalRadius float64 `yaml:"arrival_radius"`
	Acceleration  float64 `yaml:"acceleration"`
	Drag          float64 `yaml:"drag"`
	Strategy      string  `yaml:"strategy"`
	SpatialIndex  bool    `yaml:"spatial_index"`
	Sparse        bool    `yaml:"sparse"`
}

// SimulationConfig holds headless simulation settings
type SimulationConfig struct {
	Ticks int `yaml:"ticks"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	nav := navigation.DefaultConfig()
	return &Config{
		Level:    "levels/arena.geojson",
		LogLevel: "info",
		Server:   ServerConfig{Addr: ":8080"},
		Navigation: NavigationConfig{
			ArrivalRadius: nav.ArrivalRadius,
			Acceleration:  nav.Acceleration,
			Drag:          nav.Drag,
			Strategy:      nav.Strategy.String(),
		},
		Simulation: SimulationConfig{Ticks: 600},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every value that would otherwise fail later at startup
func (c *Config) Validate() error {
	if _, err := pathfinding.ParseStrategy(c.Navigation.Strategy); err != nil {
		return fmt.Errorf("%w: navigation.strategy: %v", ErrInvalidConfig, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	n := c.Navigation
	if !(n.ArrivalRadius >= 0) || math.IsInf(n.ArrivalRadius, 0) {
		return fmt.Errorf("%w: navigation.arrival_radius must be finite and non-negative, got %v", ErrInvalidConfig, n.ArrivalRadius)
	}
	if !(n.Acceleration >= 0) || math.IsInf(n.Acceleration, 0) {
		return fmt.Errorf("%w: navigation.acceleration must be finite and non-negative, got %v", ErrInvalidConfig, n.Acceleration)
	}
	if !(n.Drag >= 0 && n.Drag <= 1) {
		return fmt.Errorf("%w: navigation.drag must be within [0, 1], got %v", ErrInvalidConfig, n.Drag)
	}
	if c.Simulation.Ticks < 0 {
		return fmt.Errorf("%w: simulation.ticks must be non-negative, got %d", ErrInvalidConfig, c.Simulation.Ticks)
	}
	return nil
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel)))
	return level, err
}

// NavigatorConfig converts the navigation section for navigation.NewNavigator
func (c *Config) NavigatorConfig() navigation.Config {
	strategy, _ := pathfinding.ParseStrategy(c.Navigation.Strategy)
	return navigation.Config{
		ArrivalRadius: c.Navigation.ArrivalRadius,
		Acceleration:  c.Navigation.Acceleration,
		Drag:          c.Navigation.Drag,
		Strategy:      strategy,
		SpatialIndex:  c.Navigation.SpatialIndex,
	}
}
