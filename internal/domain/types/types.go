// Package types contains read-model types shared between the service
// and the HTTP API.
package types

import (
	"time"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
)

// Status of a submitted analysis session.
type Status string

// Session lifecycle states.
const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// SessionResult is everything the service retains about one analyzed
// session. Consumers read it as-is; nothing is mutated after completion.
type SessionResult struct {
	SessionID   string    `json:"session_id"`
	Status      Status    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
	CompletedAt time.Time `json:"completed_at,omitzero"`

	Summary *model.SessionSummary `json:"summary,omitempty"`
	Shifts  []model.ShiftEvent    `json:"shifts,omitempty"`
	Derived []model.DerivedSample `json:"derived,omitempty"`
	Dropped model.DropReport      `json:"dropped"`

	// ShiftAnalysisError carries a failed shift-quality stage without
	// discarding the rest of the analysis.
	ShiftAnalysisError string `json:"shift_analysis_error,omitempty"`

	// Error is set only when the whole pipeline failed.
	Error string `json:"error,omitempty"`
}
