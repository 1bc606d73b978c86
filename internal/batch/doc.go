// Package batch orchestrates one quantification run: report discovery and
// ingestion, blank averaging, per-sample concentration computation, run
// history persistence, and the CSV artifact.
//
// Failure policy mirrors the engine's: a bad blank aborts the whole batch,
// while a sample or compound that cannot be quantified is recorded with
// its cause and the batch continues. The engine never substitutes
// defaults, so every number in the output traces to a successful
// computation.
package batch
