package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"txetl/internal/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractor_Extract_CSV(t *testing.T) {
	ctx := context.Background()
	csvData := `sender,recipient,amount,timestamp
alice,bob,10.00,2023-01-02 10:00:00
alice,carol,5.5,2023-01-02 11:00:00
bob,alice,10.00,bad-timestamp
`
	reporter := &recordingReporter{}
	e := NewExtractor(nil, reporter)

	txs, err := e.Extract(ctx, writeCSV(t, csvData))
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, Transaction{Sender: "alice", Recipient: "bob", Amount: 10.0, Timestamp: "2023-01-02 10:00:00"}, txs[0])
	assert.Equal(t, Transaction{Sender: "alice", Recipient: "carol", Amount: 5.5, Timestamp: "2023-01-02 11:00:00"}, txs[1])
	// A bad timestamp is not an extraction concern; it passes through as text.
	assert.Equal(t, "bad-timestamp", txs[2].Timestamp)

	assert.True(t, reporter.contains("✓ Extracted 3 transactions"))
}

func TestExtractor_Extract_HeaderMapping(t *testing.T) {
	ctx := context.Background()
	// Shuffled column order, mixed case, padded names.
	csvData := `Timestamp, AMOUNT ,recipient,Sender
2023-01-02 10:00:00,12.34,bob,alice
`
	e := NewExtractor(nil, nil)

	txs, err := e.Extract(ctx, writeCSV(t, csvData))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "alice", txs[0].Sender)
	assert.Equal(t, "bob", txs[0].Recipient)
	assert.Equal(t, 12.34, txs[0].Amount)
}

func TestExtractor_Extract_MissingFile(t *testing.T) {
	ctx := context.Background()
	reporter := &recordingReporter{}
	e := NewExtractor(nil, reporter)

	txs, err := e.Extract(ctx, filepath.Join(t.TempDir(), "nope.csv"))

	assert.Nil(t, txs)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
	assert.True(t, reporter.contains("✗ Error: File"))
}

func TestExtractor_Extract_AbortsWholeFile(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		csvData string
	}{
		{
			name: "unparseable amount",
			csvData: `sender,recipient,amount,timestamp
alice,bob,10.00,2023-01-02 10:00:00
alice,carol,not-a-number,2023-01-02 11:00:00
bob,alice,3.00,2023-01-02 12:00:00
`,
		},
		{
			name: "short row",
			csvData: `sender,recipient,amount,timestamp
alice,bob,10.00,2023-01-02 10:00:00
alice,carol
`,
		},
		{
			name: "missing required column",
			csvData: `sender,recipient,value,timestamp
alice,bob,10.00,2023-01-02 10:00:00
`,
		},
		{
			name:    "empty file",
			csvData: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &recordingReporter{}
			e := NewExtractor(nil, reporter)

			txs, err := e.Extract(ctx, writeCSV(t, tt.csvData))

			// A single bad row invalidates the whole extraction.
			assert.Nil(t, txs)
			assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
			assert.True(t, reporter.contains("✗ Error extracting data"))
		})
	}
}

func TestExtractor_Extract_HeaderOnly(t *testing.T) {
	ctx := context.Background()
	reporter := &recordingReporter{}
	e := NewExtractor(nil, reporter)

	txs, err := e.Extract(ctx, writeCSV(t, "sender,recipient,amount,timestamp\n"))

	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.True(t, reporter.contains("✓ Extracted 0 transactions"))
}

func TestExtractor_Extract_XLSX(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "transactions.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"sender", "recipient", "amount", "timestamp"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"alice", "bob", "10.00", "2023-01-02 10:00:00"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"bob", "carol", "2.5", "2023-01-03 09:30:00"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	e := NewExtractor(nil, nil)
	txs, err := e.Extract(ctx, path)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "alice", txs[0].Sender)
	assert.Equal(t, 10.0, txs[0].Amount)
	assert.Equal(t, "bob", txs[1].Sender)
	assert.Equal(t, 2.5, txs[1].Amount)
}

func TestExtractor_Extract_XLSXBadAmount(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "transactions.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"sender", "recipient", "amount", "timestamp"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"alice", "bob", "oops", "2023-01-02 10:00:00"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	e := NewExtractor(nil, nil)
	txs, err := e.Extract(ctx, path)

	assert.Nil(t, txs)
	assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
}
