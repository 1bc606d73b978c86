// Package config loads, normalizes, and validates trhquant configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and batch runner need: fraction boundary retention times, the
// internal standard identity window, per-compound calibration parameters,
// and output locations.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
