// Package quant implements the TRH quantification engine: resolution of
// fraction retention-time boundaries to peak positions, internal standard
// identification, blank-batch averaging, and the blank-corrected,
// ISTD-normalised concentration computation.
//
// Every operation is a pure function over immutable inputs; the engine
// performs no I/O and never downgrades a failure. Callers (the batch
// runner) decide what to do with a sample that cannot be quantified.
package quant
