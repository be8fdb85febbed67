package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"homeprice/internal/config"
	"homeprice/internal/infrastructure"
	"homeprice/internal/run"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	input := flag.String("input", "", "input snapshot path (overrides the configured one)")
	artifactsDir := flag.String("artifacts", "", "artifacts directory (overrides the configured one)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.Data.InputPath = *input
	}
	if *artifactsDir != "" {
		cfg.Paths.ArtifactsDir = *artifactsDir
	}

	if err := cfg.Paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	runID := infrastructure.NewRunID()
	logger = infrastructure.WithRunID(logger, runID)

	logger.Info("Starting training run",
		slog.String("input", cfg.Data.InputPath),
		slog.String("artifacts_dir", cfg.Paths.ArtifactsDir),
		slog.Int("trees", cfg.Model.Trees),
		slog.Float64("learning_rate", cfg.Model.LearningRate))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := run.NewState(runID, cfg)
	runner := run.NewRunner(logger, run.TrainingSteps(logger)...)
	if err := runner.Run(ctx, state); err != nil {
		logger.Error("Training run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Trained on %d rows, evaluated on %d rows\n",
		len(state.Train), len(state.Test))
	fmt.Printf("MAE:  %.2f zł\n", state.Metrics.MAE)
	fmt.Printf("RMSE: %.2f zł\n", state.Metrics.RMSE)
	fmt.Printf("Model written to %s\n", state.ModelPath)
}
