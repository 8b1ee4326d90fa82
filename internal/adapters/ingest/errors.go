package ingest

import "errors"

// Sentinel kinds for ingest errors.
var (
	ErrBadHeader = errors.New("telemetry log header invalid")
)
