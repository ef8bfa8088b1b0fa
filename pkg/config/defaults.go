// Package config pkg/config/defaults.go
package config

import "time"

// Default rule values, applied when no rules file is present and as
// the base that a partial rules file overlays.
const (
	DefaultCriticalThreshold = 60
	DefaultHighThreshold     = 70
	DefaultMediumThreshold   = 80
	DefaultLowThreshold      = 90

	DefaultMinClients        = 3
	DefaultMinRebootInterval = 30 * time.Minute
	DefaultMaxDailyReboots   = 3

	DefaultPollInterval       = time.Minute
	DefaultMaxAttempts        = 5
	DefaultValidationTimeout  = 5 * time.Minute
	DefaultThresholdScore     = 90
	DefaultStabilizationDelay = time.Minute
)

// DefaultRules returns the built-in rules document.
func DefaultRules() *Rules {
	return &Rules{
		Thresholds: Thresholds{
			Critical: DefaultCriticalThreshold,
			High:     DefaultHighThreshold,
			Medium:   DefaultMediumThreshold,
			Low:      DefaultLowThreshold,
		},
		Guardrails: Guardrails{
			MinClients:        DefaultMinClients,
			MinRebootInterval: Duration(DefaultMinRebootInterval),
			MaxDailyReboots:   DefaultMaxDailyReboots,
		},
		Validation: Validation{
			PollInterval:       Duration(DefaultPollInterval),
			MaxAttempts:        DefaultMaxAttempts,
			Timeout:            Duration(DefaultValidationTimeout),
			ThresholdScore:     DefaultThresholdScore,
			StabilizationDelay: Duration(DefaultStabilizationDelay),
		},
	}
}
