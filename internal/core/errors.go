package core

import "errors"

var (
	// ErrInvalidInput covers malformed processes and unknown algorithm keys.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidConfiguration covers run options that cannot be clamped into range.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrModelFailure is raised by the regressor. It is recovered by falling
	// back to the heuristic predictor and never aborts a run.
	ErrModelFailure = errors.New("model failure")
)
