package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"txetl/internal/config"
)

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name    string
		inFile  string
		outFile string
		wantIn  string
		wantOut string
	}{
		{
			name:    "no overrides keeps config",
			wantIn:  "transactions.csv",
			wantOut: "transformed_transactions.json",
		},
		{
			name:    "input override",
			inFile:  "batch.csv",
			wantIn:  "batch.csv",
			wantOut: "transformed_transactions.json",
		},
		{
			name:    "both overrides",
			inFile:  "batch.xlsx",
			outFile: "result.json",
			wantIn:  "batch.xlsx",
			wantOut: "result.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			applyOverrides(cfg, tt.inFile, tt.outFile)

			assert.Equal(t, tt.wantIn, cfg.Pipeline.InputFile)
			assert.Equal(t, tt.wantOut, cfg.Pipeline.OutputFile)
		})
	}
}
