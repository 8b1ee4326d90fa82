// Package model contains the telemetry domain models passed between
// pipeline stages and layers.
package model

// Field identifies a telemetry channel on a sample. Used to configure
// which channels are critical during normalization.
type Field string

// Telemetry channels recorded per sample.
const (
	FieldRPM       Field = "rpm"
	FieldTPS       Field = "tps"
	FieldMAP       Field = "map"
	FieldBarometer Field = "barometer"
	FieldLambda    Field = "lambda"
)

// DefaultCriticalFields are the channels a sample cannot be analyzed
// without. Samples missing any of them are dropped, not imputed.
func DefaultCriticalFields() []Field {
	return []Field{FieldRPM, FieldTPS, FieldMAP, FieldLambda}
}

// RawSample is one reading as delivered by the ingestion collaborator.
// A nil field means the value was explicitly missing in the source log.
type RawSample struct {
	Timestamp *float64 `json:"timestamp"`
	RPM       *float64 `json:"rpm"`
	TPS       *float64 `json:"tps"`
	MAP       *float64 `json:"map"`
	Barometer *float64 `json:"barometer"`
	Lambda    *float64 `json:"lambda"`
}

// Missing reports whether the named channel is absent on the sample.
func (r RawSample) Missing(f Field) bool {
	switch f {
	case FieldRPM:
		return r.RPM == nil
	case FieldTPS:
		return r.TPS == nil
	case FieldMAP:
		return r.MAP == nil
	case FieldBarometer:
		return r.Barometer == nil
	case FieldLambda:
		return r.Lambda == nil
	}
	return true
}

// Sample is a fully populated reading after normalization. Timestamps are
// seconds; ordering of a normalized sequence is load-bearing because every
// derived signal is a function of a sample and its predecessor.
type Sample struct {
	Timestamp float64 `json:"timestamp"`
	RPM       float64 `json:"rpm"`
	TPS       float64 `json:"tps"`
	MAP       float64 `json:"map"`
	Barometer float64 `json:"barometer"`
	Lambda    float64 `json:"lambda"`
}

// DerivedSample extends a Sample with the differential and ratio signals
// computed by the derivation stage plus the flags set by event detection
// and aggression scoring.
//
// HasDeltas is false on the first sample of a sequence (no predecessor).
// HasRates is false when the time delta to the predecessor is zero; in
// that case AccelerationRate and MAPRate hold zero and must be excluded
// from aggregates rather than read as values.
type DerivedSample struct {
	Sample

	TimeElapsed          float64 `json:"time_elapsed"`
	VolumetricEfficiency float64 `json:"volumetric_efficiency"`
	PowerIndex           float64 `json:"power_index"`

	HasDeltas bool    `json:"has_deltas"`
	RPMDelta  float64 `json:"rpm_delta"`
	TPSDelta  float64 `json:"tps_delta"`
	MAPDelta  float64 `json:"map_delta"`
	TimeDelta float64 `json:"time_delta"`

	HasRates         bool    `json:"has_rates"`
	AccelerationRate float64 `json:"acceleration_rate"`
	MAPRate          float64 `json:"map_rate"`

	IsAccelerating   bool `json:"is_accelerating"`
	IsShiftCandidate bool `json:"is_shift_candidate"`

	AggressionScore float64 `json:"aggression_score"`
	Style           Style   `json:"style"`
}

// ShiftEvent is one detected gear change. RPMBefore reconstructs the
// pre-shift engine speed from the drop: RPMBefore = RPMAfter - RPMDelta.
type ShiftEvent struct {
	Index       int     `json:"index"`
	TimeElapsed float64 `json:"time_elapsed"`
	RPMBefore   float64 `json:"rpm_before"`
	RPMAfter    float64 `json:"rpm_after"`
	RPMDelta    float64 `json:"rpm_delta"`
	TPSAtShift  float64 `json:"tps_at_shift"`
}

// Style classifies a single sample's aggression score.
type Style string

// Per-sample driving styles.
const (
	StyleSmooth     Style = "smooth"
	StyleModerate   Style = "moderate"
	StyleAggressive Style = "aggressive"
)

// StyleVerdict classifies a whole session by its mean aggression score.
type StyleVerdict string

// Session-level driving assessments.
const (
	VerdictConservative StyleVerdict = "CONSERVATIVE"
	VerdictBalanced     StyleVerdict = "BALANCED"
	VerdictAggressive   StyleVerdict = "AGGRESSIVE"
)

// ShiftVerdict is the shift-timing assessment. Only early shifting is
// flagged; shifting above the optimal point is never penalized.
type ShiftVerdict string

// Shift-timing verdicts.
const (
	VerdictShiftingEarly    ShiftVerdict = "shifting_early"
	VerdictTimingAcceptable ShiftVerdict = "timing_acceptable"
)

// ShiftQuality is the output of the shift-quality analysis stage.
type ShiftQuality struct {
	OptimalShiftRPM float64      `json:"optimal_shift_rpm"`
	AvgShiftRPM     float64      `json:"avg_shift_rpm"`
	Verdict         ShiftVerdict `json:"verdict"`
	// EarlyByRPM is how far below optimal the average shift sits. Zero
	// when the verdict is timing_acceptable.
	EarlyByRPM float64 `json:"early_by_rpm"`
}

// DropReport accounts for samples removed during normalization. Drops are
// observability data, not errors.
type DropReport struct {
	MissingCritical int `json:"missing_critical"`
	NonPositiveRPM  int `json:"non_positive_rpm"`
}

// Total returns the number of dropped samples.
func (d DropReport) Total() int { return d.MissingCritical + d.NonPositiveRPM }

// SessionSummary aggregates one analyzed session.
type SessionSummary struct {
	SampleCount     int     `json:"sample_count"`
	DroppedSamples  int     `json:"dropped_samples"`
	DurationSeconds float64 `json:"duration_seconds"`

	MeanVolumetricEfficiency float64 `json:"mean_volumetric_efficiency"`
	PeakVolumetricEfficiency float64 `json:"peak_volumetric_efficiency"`

	AccelerationEvents   int     `json:"acceleration_events"`
	AccelerationFraction float64 `json:"acceleration_fraction"`

	ShiftCount int `json:"shift_count"`
	// ShiftQuality is nil when the shift analysis failed for this session
	// (no shifts, or no samples above the power quantile). The failure is
	// reported alongside the summary, never in place of it.
	ShiftQuality *ShiftQuality `json:"shift_quality,omitempty"`

	MeanAggression float64      `json:"mean_aggression"`
	PeakAggression float64      `json:"peak_aggression"`
	DrivingStyle   StyleVerdict `json:"driving_style"`

	SmoothFraction     float64 `json:"smooth_fraction"`
	ModerateFraction   float64 `json:"moderate_fraction"`
	AggressiveFraction float64 `json:"aggressive_fraction"`
}
