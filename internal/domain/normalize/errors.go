package normalize

import "errors"

// Sentinel kinds for normalization errors.
var (
	ErrInsufficientData = errors.New("insufficient data after cleaning")
)
