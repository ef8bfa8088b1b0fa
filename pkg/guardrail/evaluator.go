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

// Package guardrail decides whether a disruptive remediation action is
// currently safe. Checks run in a fixed order and the first failure
// wins: business hours, then client count, then uptime.
//
// The uptime check treats time-since-boot as a proxy for time since
// the last disruptive action. The two diverge if anything else reboots
// the AP; the rules field is named min_reboot_interval to keep that
// ambiguity visible.
package guardrail

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/wlanops/apmender/pkg/config"
)

// Result is the outcome of a guardrail evaluation. Never partial:
// the first failing check reports its own reason and stops.
type Result struct {
	Passed bool   `json:"passed"`
	Reason string `json:"reason"`
}

// Evaluator runs the guardrail checks against live AP state.
type Evaluator struct {
	rules config.Guardrails
	stats StatsProvider
	clock Clock
}

// NewEvaluator creates an Evaluator. A nil clock gets the system
// clock.
func NewEvaluator(rules config.Guardrails, stats StatsProvider, clock Clock) *Evaluator {
	if clock == nil {
		clock = SystemClock{}
	}

	return &Evaluator{
		rules: rules,
		stats: stats,
		clock: clock,
	}
}

// Evaluate checks all guardrails for the AP. Any failure to retrieve
// live state fails the evaluation: remediation never proceeds on
// ambiguous state.
func (e *Evaluator) Evaluate(ctx context.Context, apID string) Result {
	log.Printf("Checking guardrails for AP %s", apID)

	if e.rules.BusinessHoursOnly {
		within, err := e.withinBusinessHours()
		if err != nil {
			return failed(fmt.Sprintf("error: %v", err))
		}

		if !within {
			return failed("outside business hours")
		}
	}

	stats, err := e.stats.GetAPStats(ctx, apID)
	if err != nil {
		return failed(fmt.Sprintf("error: %v", err))
	}

	if stats.NumClients < e.rules.MinClients {
		return failed(fmt.Sprintf("client count (%d) below minimum threshold (%d)",
			stats.NumClients, e.rules.MinClients))
	}

	uptime := time.Duration(stats.Uptime) * time.Second
	if uptime < e.rules.MinRebootInterval.Std() {
		return failed(fmt.Sprintf("AP uptime (%s) below minimum reboot interval (%s)",
			uptime, e.rules.MinRebootInterval.Std()))
	}

	log.Printf("All guardrails passed for AP %s", apID)

	return Result{Passed: true, Reason: "all checks passed"}
}

func failed(reason string) Result {
	log.Printf("Guardrail check failed: %s", reason)
	return Result{Passed: false, Reason: reason}
}

// withinBusinessHours reports whether the clock's current time falls
// in the configured [start, end) window, in the configured timezone.
func (e *Evaluator) withinBusinessHours() (bool, error) {
	bh := e.rules.BusinessHours

	loc, err := time.LoadLocation(bh.Timezone)
	if err != nil {
		return false, fmt.Errorf("invalid business hours timezone: %w", err)
	}

	start, err := minuteOfDay(bh.Start)
	if err != nil {
		return false, err
	}

	end, err := minuteOfDay(bh.End)
	if err != nil {
		return false, err
	}

	now := e.clock.Now().In(loc)
	current := now.Hour()*60 + now.Minute()

	within := current >= start && current < end

	log.Printf("Business hours check: %v (current: %02d:%02d, hours: %s-%s %s)",
		within, now.Hour(), now.Minute(), bh.Start, bh.End, bh.Timezone)

	return within, nil
}

func minuteOfDay(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("invalid business hours time %q: %w", v, err)
	}

	return t.Hour()*60 + t.Minute(), nil
}
