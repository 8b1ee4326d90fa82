// Package testdrive generates synthetic telemetry sessions and drives a
// running analysis service end to end over HTTP.
package testdrive

import "time"

// Config controls one test-drive run.
type Config struct {
	// BaseURL of the running service, e.g. http://localhost:8090.
	BaseURL string

	// Sessions is how many synthetic sessions to submit.
	Sessions int

	// SamplesPerSession sets the session length.
	SamplesPerSession int

	// Seed makes the generated telemetry reproducible.
	Seed int64

	// LogFile optionally points at a CSV telemetry log. When set, the
	// run submits that log as one session instead of generating traffic.
	LogFile string

	// Timeout for individual HTTP requests.
	Timeout time.Duration

	// PollInterval and PollAttempts bound the wait for results.
	PollInterval time.Duration
	PollAttempts int
}

// Defaults for test-drive runs.
const (
	DefaultSessions          = 5
	DefaultSamplesPerSession = 600
	DefaultSeed              = 42
	DefaultTimeout           = 10 * time.Second
	DefaultPollInterval      = 200 * time.Millisecond
	DefaultPollAttempts      = 50
)
