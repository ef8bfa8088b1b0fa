package config

import "errors"

var (
	errInvalidDuration   = errors.New("invalid duration")
	errThresholdOrder    = errors.New("sle thresholds must be strictly ordered critical < high < medium < low")
	errNegativeGuardrail = errors.New("guardrail values must not be negative")
	errBadTimezone       = errors.New("invalid business hours timezone")
	errBadClockTime      = errors.New("invalid business hours time, want HH:MM")
	errBadValidation     = errors.New("invalid validation settings")
	errBadStrategy       = errors.New("invalid remediation strategy")
)
