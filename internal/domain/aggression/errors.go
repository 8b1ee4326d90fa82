package aggression

import "errors"

// Sentinel kinds for aggression-scoring errors.
var (
	ErrInvalidWeights = errors.New("invalid aggression weights")
)
