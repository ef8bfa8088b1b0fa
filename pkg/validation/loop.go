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

// Package validation polls SLE metrics after a remediation action and
// decides whether the metric recovered. The loop waits a fixed
// stabilization delay, fast-fails if the AP is not back online, then
// polls up to a bounded attempt count. All waits select on the
// context, so an outer deadline can cancel between attempts without
// losing collected history.
package validation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/wlanops/apmender/pkg/config"
	"github.com/wlanops/apmender/pkg/models"
	"github.com/wlanops/apmender/pkg/sle"
)

const reasonCancelled = "cancelled"

// Settings bounds one validation run. Zero delays mean no waiting,
// which tests rely on.
type Settings struct {
	StabilizationDelay time.Duration
	PollInterval       time.Duration
	MaxAttempts        int
	Threshold          float64 // score >= Threshold counts as restored (inclusive)

	// Timeout, when positive, caps the wall time of the whole phase
	// regardless of the attempt arithmetic. A run that hits it reports
	// failed with reason "cancelled" and keeps its attempts.
	Timeout time.Duration
}

// SettingsFromRules derives loop settings from the rules document.
func SettingsFromRules(v config.Validation) Settings {
	return Settings{
		StabilizationDelay: v.StabilizationDelay.Std(),
		PollInterval:       v.PollInterval.Std(),
		MaxAttempts:        v.MaxAttempts,
		Threshold:          v.ThresholdScore,
		Timeout:            v.Timeout.Std(),
	}
}

// Budget is the worst-case wall time for one run with these settings,
// excluding collaborator call time. Callers use it to derive an outer
// deadline so a stuck cycle cannot run open-ended.
func (s Settings) Budget() time.Duration {
	return s.StabilizationDelay + time.Duration(s.MaxAttempts)*s.PollInterval
}

// Loop validates post-remediation recovery for one (ap, sle) pair.
// It owns all of its state; concurrent runs need separate Loops or
// may share one since Loop itself is stateless between calls.
type Loop struct {
	devices  MetricsProvider
	settings Settings
}

// NewLoop creates a validation loop.
func NewLoop(devices MetricsProvider, settings Settings) *Loop {
	return &Loop{
		devices:  devices,
		settings: settings,
	}
}

// Validate runs the full check: stabilization wait, online check,
// bounded metric polling. It always returns a terminal result; a
// cancelled run reports status failed with reason "cancelled" and
// keeps the attempts collected so far.
func (l *Loop) Validate(ctx context.Context, apID string, sleType models.SLEType) *models.ValidationResult {
	if l.settings.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, l.settings.Timeout)
		defer cancel()
	}

	result := &models.ValidationResult{
		Timestamp: time.Now().UTC(),
		APID:      apID,
		SLEType:   sleType,
		Threshold: l.settings.Threshold,
		Status:    models.ValidationFailed,
		Attempts:  []models.ValidationAttempt{},
	}

	start := time.Now()

	log.Printf("Waiting %s for AP %s stabilization", l.settings.StabilizationDelay, apID)

	if err := sleepCtx(ctx, l.settings.StabilizationDelay); err != nil {
		result.Reason = reasonCancelled
		result.Duration = time.Since(start).Seconds()

		return result
	}

	online, status, err := l.checkOnline(ctx, apID)
	result.APOnline = online
	result.APStatus = status

	if err != nil {
		result.Reason = fmt.Sprintf("error: %v", err)
		result.Duration = time.Since(start).Seconds()
		log.Printf("Validation failed for AP %s: %s", apID, result.Reason)

		return result
	}

	if !online {
		// Fast-fail: no point burning poll attempts on an
		// unreachable device.
		result.Reason = fmt.Sprintf("device not online (status: %s)", status)
		result.Duration = time.Since(start).Seconds()
		log.Printf("Validation failed for AP %s: %s", apID, result.Reason)

		return result
	}

	l.pollUntilRestored(ctx, sleType, result)
	result.Duration = time.Since(start).Seconds()

	return result
}

func (l *Loop) checkOnline(ctx context.Context, apID string) (online bool, status string, err error) {
	stats, err := l.devices.GetAPStats(ctx, apID)
	if err != nil {
		return false, "error", err
	}

	log.Printf("AP %s status: %s", apID, stats.Status)

	return stats.Online(), stats.Status, nil
}

func (l *Loop) pollUntilRestored(ctx context.Context, sleType models.SLEType, result *models.ValidationResult) {
	for attempt := 1; attempt <= l.settings.MaxAttempts; attempt++ {
		log.Printf("Validation attempt %d/%d for %s", attempt, l.settings.MaxAttempts, sleType)

		score, known := l.pollScore(ctx, sleType)
		restored := known && score >= l.settings.Threshold

		result.Attempts = append(result.Attempts, models.ValidationAttempt{
			Attempt:    attempt,
			Timestamp:  time.Now().UTC(),
			Score:      score,
			ScoreKnown: known,
			Restored:   restored,
		})
		result.FinalScore = score

		if restored {
			result.Status = models.ValidationRestored
			log.Printf("SLE %s restored after %d attempts (score: %.2f)", sleType, attempt, score)

			return
		}

		if attempt == l.settings.MaxAttempts {
			break
		}

		log.Printf("SLE %s not restored yet (score: %.2f), waiting %s", sleType, score, l.settings.PollInterval)

		if err := sleepCtx(ctx, l.settings.PollInterval); err != nil {
			result.Reason = reasonCancelled
			return
		}
	}

	result.Reason = fmt.Sprintf("not restored after %d attempts", l.settings.MaxAttempts)
	log.Printf("SLE %s validation failed after %d attempts", sleType, l.settings.MaxAttempts)
}

// pollScore fetches metrics and extracts the score. Any failure
// (transport error or an unusable document) yields an unknown score,
// which counts as 0 for the restored decision but stays
// distinguishable in the attempt record.
func (l *Loop) pollScore(ctx context.Context, sleType models.SLEType) (float64, bool) {
	metrics, err := l.devices.GetSLEMetrics(ctx, "")
	if err != nil {
		log.Printf("Error fetching SLE metrics: %v", err)
		return 0, false
	}

	score, ok := sle.ExtractScore(metrics, sleType)
	if !ok {
		log.Printf("Could not extract score for SLE type %s", sleType)
		return 0, false
	}

	return score, true
}

var errSleepCancelled = errors.New("wait cancelled")

// sleepCtx waits for d or until the context is done, whichever comes
// first. Non-positive d returns immediately.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		// Still honor an already-cancelled context.
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", errSleepCancelled, ctx.Err())
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", errSleepCancelled, ctx.Err())
	case <-timer.C:
		return nil
	}
}
