// Package repository defines the session-result store interface and errors.
package repository

import (
	"context"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/types"
)

// Store provides read/write access to analyzed session results.
type Store interface {
	// Put stores or replaces the result for its session id. Used both to
	// mark a session pending at submit time and to record the final
	// completed/failed result.
	Put(ctx context.Context, res types.SessionResult) error

	// Get returns the stored result for a session id.
	// Returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (types.SessionResult, error)

	// Count returns the number of stored sessions.
	Count(ctx context.Context) int
}
