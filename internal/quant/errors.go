package quant

import "errors"

// Sentinel markers for the failure kinds the engine can produce. The batch
// layer classifies wrapped errors with errors.Is against these.
var (
	// ErrBoundaryResolution marks a fraction boundary that no peak satisfies.
	ErrBoundaryResolution = errors.New("boundary resolution")

	// ErrISTD marks a run whose internal standard peak cannot be isolated,
	// whether no candidate fell inside the identity windows or the
	// candidates could not be narrowed to one.
	ErrISTD = errors.New("internal standard")

	// ErrNumericDegeneracy marks a division by zero in the normalisation or
	// calibration inversion steps.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
)
