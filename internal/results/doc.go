// Package results owns the two output surfaces of a batch: the delimited
// CSV artifact handed to the laboratory information system, and the SQLite
// run-history store the CLI queries for past batches.
//
// The CSV writer is deliberately dumb: it serializes whatever records it is
// given against a declared field list, ignoring extra fields, so the batch
// runner stays the single source of truth for result semantics.
package results
