package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"txetl/internal/config"
	"txetl/internal/infrastructure"
	"txetl/internal/pipeline"
)

func main() {
	inFile := flag.String("in", "", "input CSV or XLSX file (defaults to configured input)")
	outFile := flag.String("out", "", "output JSON file (defaults to configured output)")
	configFile := flag.String("config", "config.yaml", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	applyOverrides(cfg, *inFile, *outFile)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	runID := uuid.NewString()
	ctx := infrastructure.WithRunID(context.Background(), runID)

	logger.InfoContext(ctx, "starting transaction ETL run",
		slog.String("input_file", cfg.Pipeline.InputFile),
		slog.String("output_file", cfg.Pipeline.OutputFile),
		slog.Int("top_count", cfg.Pipeline.TopCount))

	reporter := pipeline.NewConsoleReporter(os.Stdout)
	p := pipeline.New(logger, reporter, cfg.Pipeline)

	if err := p.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "run finished")
}

// applyOverrides lets command-line flags take precedence over the
// configured paths.
func applyOverrides(cfg *config.Config, inFile, outFile string) {
	if inFile != "" {
		cfg.Pipeline.InputFile = inFile
	}
	if outFile != "" {
		cfg.Pipeline.OutputFile = outFile
	}
}
