package shiftquality

import "errors"

// Sentinel kinds for shift-quality errors.
var (
	ErrInsufficientEvents = errors.New("insufficient events for shift analysis")
)
