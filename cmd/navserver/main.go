// Command navserver serves shortest-path queries over a waypoint level and
// runs headless navigation simulations.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"waypoint-planner/config"
	"waypoint-planner/waypoints"
)

var (
	configPath string
	levelPath  string
	ticks      int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "navserver",
		Short:        "Waypoint graph shortest-path server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file")
	root.PersistentFlags().StringVarP(&levelPath, "level", "l", "", "Level file, overrides the config")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve route queries over HTTP and hot-reload the level",
		RunE:  runServe,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drive an agent toward an orbiting cursor without rendering",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().IntVarP(&ticks, "ticks", "t", 0, "Number of ticks, overrides the config")

	root.AddCommand(serveCmd, simulateCmd)
	return root
}

// setup loads the config, applies flag overrides and installs the logger
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if levelPath != "" {
		cfg.Level = levelPath
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	g, err := buildGraph(cfg, logger)
	if err != nil {
		return fmt.Errorf("initial graph build: %w", err)
	}
	srv := newServer(cfg, g, logger)

	watcher, err := waypoints.NewWatcher(cfg.Level, 0, logger)
	if err != nil {
		return fmt.Errorf("watch level: %w", err)
	}
	defer watcher.Close()
	go func() {
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				_ = srv.reload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("level watcher error", slog.Any("error", err))
			}
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("strategy", cfg.Navigation.Strategy),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if ticks > 0 {
		cfg.Simulation.Ticks = ticks
	}

	g, err := buildGraph(cfg, logger)
	if err != nil {
		return err
	}
	summary, err := simulate(g, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("simulation finished",
		slog.Int("ticks", summary.Ticks),
		slog.Int("advances", summary.Advances),
		slog.Int("unreachable", summary.Unreachable),
		slog.Float64("distance", summary.Distance),
	)
	return nil
}
