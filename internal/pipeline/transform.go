package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// timestampLayout is the only accepted input timestamp format.
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04:05"

	// unknownField marks derived date fields when the timestamp does not
	// parse. The record is still enriched and aggregated.
	unknownField = "Unknown"

	// defaultTopCount is how many top senders/recipients the summary keeps.
	defaultTopCount = 5
)

// Transformer enriches transactions and aggregates batch statistics.
type Transformer struct {
	logger   *slog.Logger
	reporter Reporter
	topCount int
	printer  *message.Printer
}

// NewTransformer creates a transformer. A non-positive topCount falls back
// to the default of 5.
func NewTransformer(logger *slog.Logger, reporter Reporter, topCount int) *Transformer {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	if topCount <= 0 {
		topCount = defaultTopCount
	}
	return &Transformer{
		logger:   logger,
		reporter: reporter,
		topCount: topCount,
		printer:  message.NewPrinter(language.English),
	}
}

// Transform derives per-record fields and accumulates the batch summary in
// a single pass over txs, preserving input order. An empty input
// short-circuits to (nil, nil) before any aggregation begins; this is
// "nothing to do", not a summary over zero records.
func (t *Transformer) Transform(ctx context.Context, txs []Transaction) ([]EnrichedTransaction, *Summary) {
	if len(txs) == 0 {
		t.logger.WarnContext(ctx, "no transactions to transform")
		return nil, nil
	}

	enriched := make([]EnrichedTransaction, 0, len(txs))
	var totalAmount float64
	senders := newCounter()
	recipients := newCounter()

	for _, tx := range txs {
		enriched = append(enriched, enrich(tx))

		totalAmount += tx.Amount
		senders.Add(tx.Sender)
		recipients.Add(tx.Recipient)
	}

	summary := &Summary{
		TotalTransactions: len(enriched),
		TotalAmount:       totalAmount,
		AverageAmount:     totalAmount / float64(len(enriched)),
		TopSenders:        senders.Top(t.topCount),
		TopRecipients:     recipients.Top(t.topCount),
	}

	t.reporter.Reportf("✓ Transformed %d transactions", len(enriched))
	t.reporter.Reportf("  Total amount: %s", t.printer.Sprintf("$%.2f", totalAmount))
	t.reporter.Reportf("  Average amount: $%.2f", summary.AverageAmount)
	t.logger.InfoContext(ctx, "transformation complete",
		slog.Int("transaction_count", len(enriched)),
		slog.Float64("total_amount", totalAmount),
		slog.Float64("average_amount", summary.AverageAmount))

	return enriched, summary
}

// enrich derives the display fields for one transaction. Timestamp parse
// failure is recoverable: the three date fields become "Unknown" and the
// record stays in the batch.
func enrich(tx Transaction) EnrichedTransaction {
	out := EnrichedTransaction{
		Sender:    tx.Sender,
		Recipient: tx.Recipient,
		Amount:    tx.Amount,
		Timestamp: tx.Timestamp,
		AmountUSD: fmt.Sprintf("$%.2f", tx.Amount),
	}

	ts, err := time.Parse(timestampLayout, tx.Timestamp)
	if err != nil {
		out.Date = unknownField
		out.Time = unknownField
		out.DayOfWeek = unknownField
		return out
	}

	out.Date = ts.Format(dateLayout)
	out.Time = ts.Format(timeLayout)
	out.DayOfWeek = ts.Weekday().String()
	return out
}
