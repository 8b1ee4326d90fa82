package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/internal/testdrive"
	"github.com/saikottamasu123-sys/DFR--Onboarding-Project/pkg/logger"
)

const runTimeout = 5 * time.Minute

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8090", "Base URL of the service")
		sessions = flag.Int("sessions", testdrive.DefaultSessions, "Number of sessions to generate and submit")
		samples  = flag.Int("samples", testdrive.DefaultSamplesPerSession, "Samples per session")
		seed     = flag.Int64("seed", testdrive.DefaultSeed, "Random seed for the telemetry generator")
		timeout  = flag.Duration("timeout", testdrive.DefaultTimeout, "HTTP request timeout")
		logFile  = flag.String("file", "", "CSV telemetry log to submit instead of generated sessions")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := &testdrive.Config{
		BaseURL:           *baseURL,
		Sessions:          *sessions,
		SamplesPerSession: *samples,
		Seed:              *seed,
		LogFile:           *logFile,
		Timeout:           *timeout,
		PollInterval:      testdrive.DefaultPollInterval,
		PollAttempts:      testdrive.DefaultPollAttempts,
	}

	if err := testdrive.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "test drive failed", logger.Error(err))
		os.Exit(1)
	}
}
