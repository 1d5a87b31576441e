package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"txetl/internal/errors"
)

// Column names required in the input header row.
const (
	columnSender    = "sender"
	columnRecipient = "recipient"
	columnAmount    = "amount"
	columnTimestamp = "timestamp"
)

// Extractor reads raw transactions from a delimited or spreadsheet file.
//
// Extraction is all-or-nothing: a missing file, a malformed row, or an
// unparseable amount aborts the whole stage and yields no records. Bad
// rows are never skipped.
type Extractor struct {
	logger   *slog.Logger
	reporter Reporter
}

// NewExtractor creates an extractor with the given logger and reporter.
func NewExtractor(logger *slog.Logger, reporter Reporter) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Extractor{logger: logger, reporter: reporter}
}

// Extract reads all transactions from path in file order. Files ending in
// .xlsx are read as spreadsheets; anything else is read as CSV.
func (e *Extractor) Extract(ctx context.Context, path string) ([]Transaction, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		e.reporter.Reportf("✗ Error: File %s not found", path)
		e.logger.ErrorContext(ctx, "input file not found", slog.String("path", path))
		return nil, errors.NewNotFoundError(path)
	}

	var (
		txs []Transaction
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		txs, err = e.extractXLSX(path)
	} else {
		txs, err = e.extractCSV(path)
	}
	if err != nil {
		e.reporter.Reportf("✗ Error extracting data: %v", err)
		e.logger.ErrorContext(ctx, "extraction failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	e.reporter.Reportf("✓ Extracted %d transactions from %s", len(txs), path)
	e.logger.InfoContext(ctx, "extraction complete",
		slog.String("path", path),
		slog.Int("transaction_count", len(txs)))
	return txs, nil
}

// extractCSV reads transactions from a CSV file with a header row.
func (e *Extractor) extractCSV(path string) ([]Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open input file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParsingError("input file is empty", nil)
	}
	if err != nil {
		return nil, errors.NewParsingError("failed to read header row", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var txs []Transaction
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError("malformed row", err).WithContext("row", row)
		}

		tx, err := rowToTransaction(record, columns)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// extractXLSX reads transactions from the first sheet of an Excel workbook.
// The first row must be a header row with the same named columns as CSV
// input. Fully empty rows are ignored.
func (e *Extractor) extractXLSX(path string) ([]Transaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError("failed to read sheet rows", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewParsingError("input file is empty", nil)
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var txs []Transaction
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		tx, err := rowToTransaction(row, columns)
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("row %d", i+2), err)
		}
		txs = append(txs, tx)
	}

	return txs, nil
}

// mapColumns maps the required column names to their positions in the
// header row. Matching is case-insensitive and tolerates surrounding
// whitespace; column order does not matter.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case columnSender:
			columns[columnSender] = i
		case columnRecipient:
			columns[columnRecipient] = i
		case columnAmount:
			columns[columnAmount] = i
		case columnTimestamp:
			columns[columnTimestamp] = i
		}
	}

	for _, required := range []string{columnSender, columnRecipient, columnAmount, columnTimestamp} {
		if _, ok := columns[required]; !ok {
			return nil, errors.NewParsingError(fmt.Sprintf("missing required column: %s", required), nil)
		}
	}
	return columns, nil
}

// rowToTransaction builds a Transaction from one data row, coercing the
// amount field. A row shorter than the mapped columns or a non-numeric
// amount is a parsing error.
func rowToTransaction(row []string, columns map[string]int) (Transaction, error) {
	for name, idx := range columns {
		if idx >= len(row) {
			return Transaction{}, errors.NewParsingError(fmt.Sprintf("row has no value for column %s", name), nil)
		}
	}

	amountText := strings.TrimSpace(row[columns[columnAmount]])
	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil {
		return Transaction{}, errors.NewParsingError(fmt.Sprintf("invalid amount %q", amountText), err)
	}

	return Transaction{
		Sender:    row[columns[columnSender]],
		Recipient: row[columns[columnRecipient]],
		Amount:    amount,
		Timestamp: row[columns[columnTimestamp]],
	}, nil
}

// isEmptyRow reports whether every cell in the row is blank.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
