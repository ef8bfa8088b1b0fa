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

// Package models pkg/models/workflow.go
package models

import "time"

// RemediationStatus is the terminal (or initial) state of a remediation
// attempt: pending -> {success | blocked | error | not_implemented}.
type RemediationStatus string

const (
	RemediationPending        RemediationStatus = "pending"
	RemediationSuccess        RemediationStatus = "success"
	RemediationBlocked        RemediationStatus = "blocked"
	RemediationError          RemediationStatus = "error"
	RemediationNotImplemented RemediationStatus = "not_implemented"
)

// RemediationAttempt records one remediation call against an AP. It is
// created once per call and immutable after completion.
type RemediationAttempt struct {
	Timestamp time.Time         `json:"timestamp"`
	APID      string            `json:"ap_id"`
	Action    string            `json:"action"`
	Status    RemediationStatus `json:"status"`
	Reason    string            `json:"reason,omitempty"`
	Message   string            `json:"message,omitempty"`
	Error     string            `json:"error,omitempty"`
	Response  interface{}       `json:"response,omitempty"`
}

// ValidationStatus is the terminal state of a validation run.
type ValidationStatus string

const (
	ValidationRestored ValidationStatus = "restored"
	ValidationFailed   ValidationStatus = "failed"
)

// ValidationAttempt is one poll of the SLE metrics during validation.
// ScoreKnown is false when the score could not be extracted from the
// metrics document; Score is then 0 for decision purposes only.
type ValidationAttempt struct {
	Attempt    int       `json:"attempt"`
	Timestamp  time.Time `json:"timestamp"`
	Score      float64   `json:"score"`
	ScoreKnown bool      `json:"score_known"`
	Restored   bool      `json:"restored"`
}

// ValidationResult is the outcome of the post-remediation validation
// loop. Attempts is append-only and preserved on cancellation.
type ValidationResult struct {
	Timestamp  time.Time           `json:"timestamp"`
	APID       string              `json:"ap_id"`
	SLEType    SLEType             `json:"sle_type"`
	Threshold  float64             `json:"threshold"`
	Status     ValidationStatus    `json:"status"`
	Reason     string              `json:"reason,omitempty"`
	APOnline   bool                `json:"ap_online"`
	APStatus   string              `json:"ap_status,omitempty"`
	Attempts   []ValidationAttempt `json:"attempts"`
	FinalScore float64             `json:"final_score"`
	Duration   float64             `json:"duration_seconds"`
}

// WorkflowStatus summarizes an end-to-end workflow run.
type WorkflowStatus string

const (
	WorkflowSuccess        WorkflowStatus = "success"
	WorkflowBlocked        WorkflowStatus = "blocked"
	WorkflowError          WorkflowStatus = "error"
	WorkflowFailed         WorkflowStatus = "failed"
	WorkflowNotImplemented WorkflowStatus = "not_implemented"
)

// WorkflowOutcome aggregates the diagnostics snapshot, the remediation
// attempt, and the validation result for one (ap_id, sle_type) run.
type WorkflowOutcome struct {
	RunID             string              `json:"run_id"`
	APID              string              `json:"ap_id"`
	SLEType           SLEType             `json:"sle_type"`
	Status            WorkflowStatus      `json:"status"`
	Severity          Severity            `json:"severity"`
	InitialScore      float64             `json:"initial_score"`
	ScoreKnown        bool                `json:"score_known"`
	RemediationNeeded bool                `json:"remediation_needed"`
	Remediation       *RemediationAttempt `json:"remediation"`
	Validation        *ValidationResult   `json:"validation"`
	Recommendations   []string            `json:"recommendations"`
	StartedAt         time.Time           `json:"started_at"`
	CompletedAt       time.Time           `json:"completed_at"`
}

// Succeeded reports whether the run reached its terminal success state;
// CLI wrappers map this to their exit code.
func (o *WorkflowOutcome) Succeeded() bool {
	return o != nil && o.Status == WorkflowSuccess
}
