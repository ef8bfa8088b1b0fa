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

// Package workflow composes diagnostics, classification, guardrails,
// remediation, and validation into one end-to-end run per
// (ap_id, sle_type) pair. A run is a single linear sequence; drive
// multiple runs from separate goroutines if needed, since the only
// shared state is the read-only rules document.
package workflow

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/wlanops/apmender/pkg/config"
	"github.com/wlanops/apmender/pkg/diagnostics"
	"github.com/wlanops/apmender/pkg/guardrail"
	"github.com/wlanops/apmender/pkg/mist"
	"github.com/wlanops/apmender/pkg/models"
	"github.com/wlanops/apmender/pkg/remediation"
	"github.com/wlanops/apmender/pkg/sle"
	"github.com/wlanops/apmender/pkg/validation"
)

// budgetSlack covers collaborator call time on top of the validation
// loop's worst-case wait budget when deriving the outer deadline.
const budgetSlack = 2 * time.Minute

// Options tune one run.
type Options struct {
	// Force skips guardrail evaluation. Logged loudly by the executor.
	Force bool
	// Action overrides strategy-based selection when non-empty.
	Action remediation.Action
	// SkipValidation ends the run after the remediation attempt.
	SkipValidation bool
}

// Workflow is the end-to-end remediation runner.
type Workflow struct {
	rules     *config.Rules
	collector *diagnostics.Collector
	executor  *remediation.Executor
	loop      *validation.Loop
}

// New wires a Workflow from the device client and rules. The clock is
// only used by the business-hours guardrail; nil means system clock.
func New(devices mist.DeviceClient, rules *config.Rules, clock guardrail.Clock) *Workflow {
	guard := guardrail.NewEvaluator(rules.Guardrails, devices, clock)

	return &Workflow{
		rules:     rules,
		collector: diagnostics.NewCollector(devices, rules),
		executor:  remediation.NewExecutor(devices, guard),
		loop:      validation.NewLoop(devices, validation.SettingsFromRules(rules.Validation)),
	}
}

// Run executes the full workflow and always returns a structured
// outcome, never a fault. If the caller set no deadline, one is
// derived from the validation budget so a stuck cycle cannot run
// open-ended.
func (w *Workflow) Run(ctx context.Context, apID string, sleType models.SLEType, opts Options) *models.WorkflowOutcome {
	if _, ok := ctx.Deadline(); !ok {
		budget := validation.SettingsFromRules(w.rules.Validation).Budget() + budgetSlack

		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	outcome := &models.WorkflowOutcome{
		RunID:     uuid.New().String(),
		APID:      apID,
		SLEType:   sleType,
		StartedAt: time.Now().UTC(),
	}

	log.Printf("Starting workflow %s for AP %s, SLE %s", outcome.RunID, apID, sleType)

	report := w.collector.GenerateReport(ctx, apID, sleType)
	outcome.RemediationNeeded = report.RemediationNeeded
	outcome.Recommendations = report.Recommendations

	w.classify(report, outcome)

	action := opts.Action
	if action == "" {
		action = remediation.SelectAction(sleType, w.rules.RemediationStrategies)
	}

	outcome.Remediation = w.executor.Execute(ctx, apID, action, opts.Force)

	switch outcome.Remediation.Status {
	case models.RemediationBlocked:
		outcome.Status = models.WorkflowBlocked
	case models.RemediationError:
		outcome.Status = models.WorkflowError
	case models.RemediationNotImplemented:
		outcome.Status = models.WorkflowNotImplemented
	case models.RemediationSuccess:
		w.validate(ctx, apID, sleType, opts, outcome)
	default:
		outcome.Status = models.WorkflowError
	}

	outcome.CompletedAt = time.Now().UTC()

	log.Printf("Workflow %s finished with status %s", outcome.RunID, outcome.Status)

	return outcome
}

// classify derives severity from the current score in the diagnostics
// snapshot. An unextractable score stays flagged as unknown and
// classifies from 0, the most severe reading.
func (w *Workflow) classify(report *diagnostics.Report, outcome *models.WorkflowOutcome) {
	var score float64

	if report.SLE.Metrics != nil {
		score, outcome.ScoreKnown = sle.ExtractScore(report.SLE.Metrics, outcome.SLEType)
	}

	outcome.InitialScore = score
	outcome.Severity = sle.Classify(score, w.rules.Thresholds)

	if !outcome.ScoreKnown {
		outcome.Recommendations = append(outcome.Recommendations,
			"SLE score could not be determined - verify the metric type and site data")
	}

	needed, reason := sle.ShouldRemediate(score, w.rules.Validation.ThresholdScore)
	log.Printf("Severity %s for AP %s (score %.2f, remediate=%v: %s)",
		outcome.Severity, outcome.APID, score, needed, reason)
}

func (w *Workflow) validate(ctx context.Context, apID string, sleType models.SLEType, opts Options, outcome *models.WorkflowOutcome) {
	if opts.SkipValidation {
		outcome.Status = models.WorkflowSuccess
		return
	}

	outcome.Validation = w.loop.Validate(ctx, apID, sleType)

	if outcome.Validation.Status == models.ValidationRestored {
		outcome.Status = models.WorkflowSuccess
	} else {
		outcome.Status = models.WorkflowFailed
	}
}
