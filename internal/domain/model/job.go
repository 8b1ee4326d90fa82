package model

import "time"

// AnalysisJob is a queued request to analyze one session's raw samples.
type AnalysisJob struct {
	SessionID   string
	Samples     []RawSample
	SubmittedAt time.Time
}
