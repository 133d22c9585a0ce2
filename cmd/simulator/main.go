package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"fritter/internal/logging"
	"fritter/simulator"
)

func main() {
	if err := logging.Init(os.Getenv("LOG_LEVEL")); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	config := simulator.DefaultSimConfig()
	if url := os.Getenv("ENGINE_URL"); url != "" {
		config.EngineURL = url
	}

	slog.Info("simulation configuration",
		"engine_url", config.EngineURL,
		"users", config.NumUsers,
		"duration", config.SimulationTime,
		"freet_frequency", config.FreetFrequency,
		"comment_frequency", config.CommentFrequency,
		"like_frequency", config.LikeFrequency,
		"zipf_s", config.ZipfS,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, config.SimulationTime)
	defer cancel()

	sim := simulator.NewSimulator(config, slog.Default())
	defer sim.Close()

	if err := sim.Run(ctx); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}

	metrics := sim.GetMetrics()
	slog.Info("simulation completed",
		"users", metrics.TotalUsers,
		"active_users", metrics.ActiveUsers,
		"average_latency", metrics.AverageLatency,
		"errors", metrics.ErrorCount,
	)

	ops := make([]string, 0, len(metrics.Operations))
	for op := range metrics.Operations {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	for _, op := range ops {
		counts := metrics.Operations[op]
		slog.Info("operation totals", "operation", op, "success", counts.Success, "failure", counts.Failure)
	}
}
