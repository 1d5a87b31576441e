package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"txetl/internal/config"
	"txetl/internal/errors"
)

// ErrNoTransactions is returned when extraction succeeds but yields zero
// records; the run halts before the transform stage.
var ErrNoTransactions = errors.NewValidationError("no transactions extracted")

// Pipeline sequences the extract, transform and load stages over a single
// input file. All stages run synchronously within one Run call and hand
// their full output to the next stage.
type Pipeline struct {
	logger      *slog.Logger
	reporter    Reporter
	extractor   *Extractor
	transformer *Transformer
	loader      *Loader
	inputFile   string
	outputFile  string
}

// New creates a pipeline for the given configuration.
func New(logger *slog.Logger, reporter Reporter, cfg config.PipelineConfig) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Pipeline{
		logger:      logger,
		reporter:    reporter,
		extractor:   NewExtractor(logger, reporter),
		transformer: NewTransformer(logger, reporter, cfg.TopCount),
		loader:      NewLoader(logger, reporter),
		inputFile:   cfg.InputFile,
		outputFile:  cfg.OutputFile,
	}
}

// Run executes the full batch. Extraction failure or an empty extraction
// result is fatal: the run halts without touching the output file. A load
// failure completes the run with errors; nothing is retried or rolled back.
func (p *Pipeline) Run(ctx context.Context) error {
	banner := strings.Repeat("=", 50)
	p.reporter.Reportf("%s", banner)
	p.reporter.Reportf("ETL Pipeline Started")
	p.reporter.Reportf("%s", banner)

	txs, err := p.extractor.Extract(ctx, p.inputFile)
	if err == nil && len(txs) == 0 {
		err = ErrNoTransactions
	}
	if err != nil {
		p.reporter.Reportf("Pipeline failed at extraction stage")
		p.logger.ErrorContext(ctx, "pipeline halted",
			slog.String("stage", "extract"),
			slog.String("error", err.Error()))
		return fmt.Errorf("extract stage: %w", err)
	}

	enriched, summary := p.transformer.Transform(ctx, txs)

	loadErr := p.loader.Load(ctx, enriched, summary, p.outputFile)

	p.reporter.Reportf("%s", banner)
	if loadErr != nil {
		p.reporter.Reportf("ETL Pipeline Completed with Errors")
		p.reporter.Reportf("%s", banner)
		return fmt.Errorf("load stage: %w", loadErr)
	}
	p.reporter.Reportf("ETL Pipeline Completed Successfully")
	p.reporter.Reportf("%s", banner)
	return nil
}
