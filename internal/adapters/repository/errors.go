package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound       = errors.New("session not found")
	ErrEmptySessionID = errors.New("empty session id")
)
