package pipeline

import (
	"fmt"
	"io"
)

// Reporter receives human-readable status lines emitted by the pipeline
// stages. It is a side channel for the operator, not a data contract.
type Reporter interface {
	Reportf(format string, args ...interface{})
}

// ConsoleReporter writes status lines to the given writer, one per call.
type ConsoleReporter struct {
	w io.Writer
}

// NewConsoleReporter creates a reporter writing to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

// Reportf implements Reporter.
func (r *ConsoleReporter) Reportf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// NopReporter discards all status lines.
type NopReporter struct{}

// Reportf implements Reporter.
func (NopReporter) Reportf(string, ...interface{}) {}
