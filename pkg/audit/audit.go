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

// Package audit ships workflow events to an HTTP Event Collector
// style sink. An unconfigured sink skips events with a logged reason
// instead of failing the workflow: auditing is best-effort.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/wlanops/apmender/pkg/models"
)

var (
	ErrSinkUnconfigured = errors.New("audit sink not configured")
	ErrRequestFailed    = errors.New("audit request failed")
	ErrUnexpectedStatus = errors.New("audit sink returned unexpected status")
)

const defaultTimeout = 10 * time.Second

// Event types emitted by the workflow.
const (
	EventDetection   = "sle_detection"
	EventRemediation = "sle_remediation"
	EventValidation  = "sle_validation"
	EventWorkflow    = "sle_workflow"
)

// Config holds the sink endpoint and token, sourced from the
// environment once at process start. Both empty means auditing is
// disabled.
type Config struct {
	Endpoint string
	Token    string
	Host     string
}

// ConfigFromEnv reads SPLUNK_HEC_ENDPOINT and SPLUNK_HEC_TOKEN. A
// missing sink is not an error; Send reports skipped instead.
func ConfigFromEnv() *Config {
	return &Config{
		Endpoint: os.Getenv("SPLUNK_HEC_ENDPOINT"),
		Token:    os.Getenv("SPLUNK_HEC_TOKEN"),
		Host:     "apmender",
	}
}

// Configured reports whether the sink has both endpoint and token.
func (c *Config) Configured() bool {
	return c.Endpoint != "" && c.Token != ""
}

// Event is one audit record.
type Event struct {
	Type      string      `json:"event_type"`
	APID      string      `json:"ap_id,omitempty"`
	SLEType   string      `json:"sle,omitempty"`
	Severity  string      `json:"severity,omitempty"`
	Timestamp string      `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Sink sends audit events.
type Sink struct {
	config *Config
	client *http.Client
}

// NewSink creates a Sink; it accepts an unconfigured Config so
// callers do not need to special-case disabled auditing.
func NewSink(config *Config) *Sink {
	return &Sink{
		config: config,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

type hecPayload struct {
	Time       int64       `json:"time"`
	Host       string      `json:"host"`
	Source     string      `json:"source"`
	SourceType string      `json:"sourcetype"`
	Event      interface{} `json:"event"`
}

// Send ships one event. Unconfigured sinks skip with a log line and
// ErrSinkUnconfigured, which callers treat as non-fatal.
func (s *Sink) Send(ctx context.Context, event *Event) error {
	if !s.config.Configured() {
		log.Printf("Audit sink not configured, skipping %s event", event.Type)
		return ErrSinkUnconfigured
	}

	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	payload := hecPayload{
		Time:       time.Now().Unix(),
		Host:       s.config.Host,
		Source:     "apmender",
		SourceType: "sle:automation:" + event.Type,
		Event:      event,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Splunk "+s.config.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status=%d body=%s", ErrUnexpectedStatus, resp.StatusCode, body)
	}

	return nil
}

// RecordWorkflow audits a completed workflow outcome. Failures are
// logged, never propagated.
func (s *Sink) RecordWorkflow(ctx context.Context, outcome *models.WorkflowOutcome) {
	event := &Event{
		Type:     EventWorkflow,
		APID:     outcome.APID,
		SLEType:  string(outcome.SLEType),
		Severity: string(outcome.Severity),
		Payload:  outcome,
	}

	if err := s.Send(ctx, event); err != nil && !errors.Is(err, ErrSinkUnconfigured) {
		log.Printf("Failed to audit workflow %s: %v", outcome.RunID, err)
	}
}

// RecordDetection audits an SLE detection.
func (s *Sink) RecordDetection(ctx context.Context, apID string, sleType models.SLEType, severity models.Severity) {
	event := &Event{
		Type:     EventDetection,
		APID:     apID,
		SLEType:  string(sleType),
		Severity: string(severity),
	}

	if err := s.Send(ctx, event); err != nil && !errors.Is(err, ErrSinkUnconfigured) {
		log.Printf("Failed to audit detection for AP %s: %v", apID, err)
	}
}

// RecordRemediation audits a remediation attempt.
func (s *Sink) RecordRemediation(ctx context.Context, attempt *models.RemediationAttempt) {
	event := &Event{
		Type:    EventRemediation,
		APID:    attempt.APID,
		Payload: attempt,
	}

	if err := s.Send(ctx, event); err != nil && !errors.Is(err, ErrSinkUnconfigured) {
		log.Printf("Failed to audit remediation for AP %s: %v", attempt.APID, err)
	}
}

// RecordValidation audits a validation result.
func (s *Sink) RecordValidation(ctx context.Context, result *models.ValidationResult) {
	event := &Event{
		Type:    EventValidation,
		APID:    result.APID,
		SLEType: string(result.SLEType),
		Payload: result,
	}

	if err := s.Send(ctx, event); err != nil && !errors.Is(err, ErrSinkUnconfigured) {
		log.Printf("Failed to audit validation for AP %s: %v", result.APID, err)
	}
}
