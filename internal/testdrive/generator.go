package testdrive

import (
	"math/rand"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/domain/model"
)

// Signal shape constants for the synthetic drive.
const (
	sampleHz        = 10.0
	idleRPM         = 1800.0
	shiftAtRPM      = 6200.0
	shiftDropRPM    = 1400.0
	rampRPMPerSec   = 900.0
	cruiseTPS       = 20.0
	acceleratingTPS = 85.0
	baseMAP         = 95.0
	baroMean        = 101.0
	missingLambdaP  = 0.02

	// Phase lengths in samples. A pull is long enough to reach the shift
	// point from idle, so every pull produces at least one upshift.
	pullSamples   = 60
	cruiseSamples = 20
	phaseJitter   = 10
)

// GeneratedSession is one synthetic drive with the event counts baked
// into it, used to sanity-check the service's answers.
type GeneratedSession struct {
	Samples        []model.RawSample
	ExpectedShifts int
}

// Generate builds a session alternating full-throttle pulls (which end
// in an upshift) with cruise segments. The RPM trace ramps under
// throttle and drops sharply at each shift while the throttle stays
// open, so every shift is detectable by the pipeline's predicates.
func Generate(rng *rand.Rand, samples int) GeneratedSession {
	var out GeneratedSession
	out.Samples = make([]model.RawSample, 0, samples)

	rpm := idleRPM
	pulling := true
	dt := 1.0 / sampleHz
	phaseLeft := pullSamples + rng.Intn(phaseJitter)

	for i := 0; i < samples; i++ {
		t := float64(i) * dt
		tps := cruiseTPS
		if pulling {
			tps = acceleratingTPS
			rpm += rampRPMPerSec * dt
			if rpm >= shiftAtRPM {
				rpm -= shiftDropRPM
				out.ExpectedShifts++
			}
		} else {
			// Cruise: drift slowly back toward idle.
			rpm -= 150 * dt
			if rpm < idleRPM {
				rpm = idleRPM
			}
		}

		phaseLeft--
		if phaseLeft <= 0 {
			pulling = !pulling
			if pulling {
				phaseLeft = pullSamples + rng.Intn(phaseJitter)
			} else {
				phaseLeft = cruiseSamples + rng.Intn(phaseJitter)
			}
		}

		mapKPa := baseMAP * (tps / 100)
		if mapKPa < 25 {
			mapKPa = 25
		}
		baro := baroMean + rng.Float64()*0.4
		lambda := 0.95 + rng.Float64()*0.1

		s := model.RawSample{
			Timestamp: ptr(t),
			RPM:       ptr(rpm + rng.Float64()*20),
			TPS:       ptr(tps),
			MAP:       ptr(mapKPa),
			Barometer: ptr(baro),
			Lambda:    ptr(lambda),
		}
		// Occasionally drop lambda to exercise normalization drops.
		if rng.Float64() < missingLambdaP {
			s.Lambda = nil
		}
		out.Samples = append(out.Samples, s)
	}
	return out
}

func ptr(v float64) *float64 { return &v }
