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
	exportDir := flag.String("export", "", "export directory (overrides the configured one)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.Data.InputPath = *input
	}
	if *exportDir != "" {
		cfg.Paths.ExportDir = *exportDir
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

	logger.Info("Starting snapshot profiling",
		slog.String("input", cfg.Data.InputPath),
		slog.String("export_dir", cfg.Paths.ExportDir))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := run.NewState(runID, cfg)
	runner := run.NewRunner(logger, run.ProfileSteps(logger)...)
	if err := runner.Run(ctx, state); err != nil {
		logger.Error("Profiling run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Loaded %d rows, kept %d after cleaning and fences\n",
		state.Report.TotalRows, len(state.Rows))
	fmt.Printf("Dropped %d rows without an asking price\n", state.Report.DroppedNoPrice)
	fmt.Printf("Cleaned dataset written to %s\n", state.CleanedPath)
}
