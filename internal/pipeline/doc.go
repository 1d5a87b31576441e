// Package pipeline implements the transaction ETL batch pipeline.
//
// The pipeline runs three stages strictly in sequence, each consuming the
// previous stage's full in-memory output:
//
//   - Extractor reads raw transactions from a CSV or XLSX file and coerces
//     field types. Any read or parse error aborts the whole extraction.
//   - Transformer derives per-record display fields (formatted amount,
//     date, time, weekday) and aggregates batch statistics (totals,
//     averages, top senders and recipients).
//   - Loader serializes the enriched transactions together with the
//     summary into a single pretty-printed JSON document, written
//     atomically via a temp file and rename.
//
// Human-readable status lines are emitted through the Reporter interface
// so tests can assert on stage outcomes without capturing stdout; they are
// a side channel, not part of the data contract.
package pipeline
