package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DFR_CONFIG is set
//  3. env (prefix DFR_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("DFR_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: DFR_ADDR, DFR_QUEUE_SIZE, ...
	// Keys keep their underscores to match the koanf tags on the struct;
	// double underscores address nested keys, e.g.
	// DFR_AGGRESSION_WEIGHTS__THROTTLE -> aggression_weights.throttle.
	envProvider := env.Provider("DFR_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "dfr_")
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	case len(c.CriticalFields) == 0:
		return fmt.Errorf("critical_fields must not be empty: %w", ErrInvalidConfig)
	case c.PowerQuantile <= 0 || c.PowerQuantile >= 1:
		return fmt.Errorf("power_quantile %v outside (0,1): %w", c.PowerQuantile, ErrInvalidConfig)
	case c.SmoothCutoff <= 0 || c.AggressiveCutoff <= c.SmoothCutoff:
		return fmt.Errorf("style cutoffs must satisfy 0 < smooth < aggressive: %w", ErrInvalidConfig)
	case c.ShiftRPMThreshold >= 0:
		return fmt.Errorf("shift_rpm_threshold must be negative: %w", ErrInvalidConfig)
	}
	if err := c.AggressionWeights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
