// Package config defines service configuration structures and loading.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer file and env providers over defaults in Load.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"runtime"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/aggression"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// JobQueueSize bounds the in-memory analysis job queue.
	JobQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of analysis workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the session-id idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// CriticalFields lists the channels whose absence drops a sample.
	CriticalFields []string `koanf:"critical_fields"`

	// Acceleration-event thresholds.
	AccelRPMThreshold float64 `koanf:"accel_rpm_threshold"`
	AccelTPSThreshold float64 `koanf:"accel_tps_threshold"`

	// Gear-shift detection thresholds. ShiftRPMThreshold is negative: the
	// RPM drop that marks a shift candidate.
	ShiftRPMThreshold float64 `koanf:"shift_rpm_threshold"`
	ShiftTPSFloor     float64 `koanf:"shift_tps_floor"`

	// EarlyShiftMargin is how far below the optimal shift point the
	// average observed shift must sit to be flagged.
	EarlyShiftMargin float64 `koanf:"early_shift_margin"`

	// PowerQuantile defines the top power-producing band.
	PowerQuantile float64 `koanf:"power_quantile"`

	// AggressionWeights are the four composite-score weights.
	AggressionWeights aggression.Weights `koanf:"aggression_weights"`

	// Style cutoffs on the aggression score.
	SmoothCutoff     float64 `koanf:"smooth_cutoff"`
	AggressiveCutoff float64 `koanf:"aggressive_cutoff"`
}

// New creates a Config holding the documented defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8090",
		JobQueueSize:      1024,
		WorkerCount:       runtime.NumCPU(),
		DedupeSize:        10_000,
		CriticalFields:    []string{"rpm", "tps", "map", "lambda"},
		AccelRPMThreshold: 100,
		AccelTPSThreshold: 50,
		ShiftRPMThreshold: -500,
		ShiftTPSFloor:     30,
		EarlyShiftMargin:  500,
		PowerQuantile:     0.9,
		AggressionWeights: aggression.DefaultWeights(),
		SmoothCutoff:      0.3,
		AggressiveCutoff:  0.5,
	}
}
