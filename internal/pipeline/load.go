package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"txetl/internal/errors"
)

// DefaultOutputFile is the destination used when none is supplied.
const DefaultOutputFile = "transformed_transactions.json"

// Loader writes the pipeline output document.
type Loader struct {
	logger   *slog.Logger
	reporter Reporter
}

// NewLoader creates a loader with the given logger and reporter.
func NewLoader(logger *slog.Logger, reporter Reporter) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Loader{logger: logger, reporter: reporter}
}

// Load serializes the enriched transactions and summary to path as
// pretty-printed JSON. The document is written to a temp file in the
// destination directory and renamed into place, so a failed run never
// leaves a partial output file behind.
func (l *Loader) Load(ctx context.Context, transactions []EnrichedTransaction, summary *Summary, path string) error {
	if path == "" {
		path = DefaultOutputFile
	}
	if transactions == nil {
		transactions = []EnrichedTransaction{}
	}

	output := Output{Summary: summary, Transactions: transactions}

	if err := l.write(output, path); err != nil {
		l.reporter.Reportf("✗ Error loading data: %v", err)
		l.logger.ErrorContext(ctx, "load failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return err
	}

	l.reporter.Reportf("✓ Loaded data to %s", path)
	l.logger.InfoContext(ctx, "load complete",
		slog.String("path", path),
		slog.Int("transaction_count", len(transactions)))
	return nil
}

func (l *Loader) write(output Output, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".etl-out-*.json")
	if err != nil {
		return errors.NewStorageError("failed to create temp output file", err)
	}
	tmpName := tmp.Name()

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStorageError("failed to encode output document", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageError("failed to flush output document", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageError("failed to move output into place", err)
	}
	return nil
}
