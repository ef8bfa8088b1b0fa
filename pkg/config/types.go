/*
 * Copyright 2025 The apmender Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config pkg/config/types.go
package config

import (
	"fmt"
	"time"
)

// Duration wraps time.Duration for YAML unmarshaling. Bare numbers are
// seconds (the rules file historically used integer seconds); strings
// go through time.ParseDuration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}

	switch value := v.(type) {
	case int:
		*d = Duration(time.Duration(value) * time.Second)
		return nil
	case float64:
		*d = Duration(time.Duration(value * float64(time.Second)))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errInvalidDuration, err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Thresholds maps SLE scores to severity tiers. Scores below Critical
// classify as critical, below High as high, below Medium as medium,
// everything else as low. Must be strictly ordered
// critical < high < medium < low.
type Thresholds struct {
	Critical float64 `yaml:"critical"`
	High     float64 `yaml:"high"`
	Medium   float64 `yaml:"medium"`
	Low      float64 `yaml:"low"`
}

func (t *Thresholds) Validate() error {
	if !(t.Critical < t.High && t.High < t.Medium && t.Medium < t.Low) {
		return fmt.Errorf("%w: critical=%v high=%v medium=%v low=%v",
			errThresholdOrder, t.Critical, t.High, t.Medium, t.Low)
	}

	return nil
}

// BusinessHours is a local-time window in which disruptive actions are
// allowed when Guardrails.BusinessHoursOnly is set. The window is
// half-open: [Start, End).
type BusinessHours struct {
	Start    string `yaml:"start"`    // "08:00"
	End      string `yaml:"end"`      // "18:00"
	Timezone string `yaml:"timezone"` // IANA name, e.g. "America/New_York"
}

// Guardrails are the preconditions checked before a disruptive action.
//
// MaxDailyReboots is accepted for compatibility with existing rules
// files but is not enforced: enforcement would need a reboot ledger
// that outlives a single run, and all state here is per-run.
type Guardrails struct {
	MinClients        int           `yaml:"min_clients"`
	MinRebootInterval Duration      `yaml:"min_reboot_interval"`
	MaxDailyReboots   int           `yaml:"max_daily_reboots"`
	BusinessHoursOnly bool          `yaml:"business_hours_only"`
	BusinessHours     BusinessHours `yaml:"business_hours"`
}

func (g *Guardrails) Validate() error {
	if g.MinClients < 0 {
		return fmt.Errorf("%w: min_clients=%d", errNegativeGuardrail, g.MinClients)
	}

	if g.MinRebootInterval < 0 {
		return fmt.Errorf("%w: min_reboot_interval=%v", errNegativeGuardrail, g.MinRebootInterval.Std())
	}

	if g.BusinessHoursOnly {
		if _, err := time.LoadLocation(g.BusinessHours.Timezone); err != nil {
			return fmt.Errorf("%w: %w", errBadTimezone, err)
		}

		for _, v := range []string{g.BusinessHours.Start, g.BusinessHours.End} {
			if _, err := time.Parse("15:04", v); err != nil {
				return fmt.Errorf("%w: %q", errBadClockTime, v)
			}
		}
	}

	return nil
}

// Validation bounds the post-remediation recovery check.
type Validation struct {
	PollInterval       Duration `yaml:"poll_interval"`
	MaxAttempts        int      `yaml:"max_attempts"`
	Timeout            Duration `yaml:"timeout"`
	ThresholdScore     float64  `yaml:"threshold_score"`
	StabilizationDelay Duration `yaml:"stabilization_delay"`
}

func (v *Validation) Validate() error {
	if v.MaxAttempts < 1 {
		return fmt.Errorf("%w: max_attempts=%d", errBadValidation, v.MaxAttempts)
	}

	if v.PollInterval < 0 || v.StabilizationDelay < 0 || v.Timeout < 0 {
		return fmt.Errorf("%w: intervals must not be negative", errBadValidation)
	}

	if v.ThresholdScore < 0 || v.ThresholdScore > 100 {
		return fmt.Errorf("%w: threshold_score=%v outside [0,100]", errBadValidation, v.ThresholdScore)
	}

	return nil
}

// StrategyStep is one candidate action for an SLE type. The step with
// the numerically lowest priority wins; ties keep file order.
type StrategyStep struct {
	Action   string `yaml:"action"`
	Priority int    `yaml:"priority"`
}

// Rules is the full remediation rules document. Loaded once per run
// and never mutated afterwards.
type Rules struct {
	Thresholds            Thresholds                `yaml:"sle_thresholds"`
	Guardrails            Guardrails                `yaml:"guardrails"`
	Validation            Validation                `yaml:"validation"`
	RemediationStrategies map[string][]StrategyStep `yaml:"remediation_strategies"`
}

// Validate runs the single load-time validation pass over every
// section. Malformed thresholds are a configuration error here, not a
// classifier concern.
func (r *Rules) Validate() error {
	if err := r.Thresholds.Validate(); err != nil {
		return err
	}

	if err := r.Guardrails.Validate(); err != nil {
		return err
	}

	if err := r.Validation.Validate(); err != nil {
		return err
	}

	for sleType, steps := range r.RemediationStrategies {
		for _, step := range steps {
			if step.Action == "" {
				return fmt.Errorf("%w: empty action for sle type %q", errBadStrategy, sleType)
			}
		}
	}

	return nil
}
