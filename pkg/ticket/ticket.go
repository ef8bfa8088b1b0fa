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

// Package ticket is the ticketing-system collaborator: create, update,
// and close incident tickets for SLE remediation runs.
package ticket

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
	ErrMissingSubdomain = errors.New("ticketing subdomain not configured")
	ErrMissingEmail     = errors.New("ticketing email not configured")
	ErrMissingToken     = errors.New("ticketing api token not configured")
	ErrRequestFailed    = errors.New("ticketing request failed")
	ErrUnexpectedStatus = errors.New("ticketing returned unexpected status")
)

const defaultTimeout = 30 * time.Second

// Config holds the ticketing connection settings, sourced from the
// environment once at process start.
type Config struct {
	Subdomain string
	Email     string
	APIToken  string
	GroupID   string
}

// ConfigFromEnv reads ZENDESK_SUBDOMAIN, ZENDESK_EMAIL,
// ZENDESK_API_TOKEN and the optional ZENDESK_GROUP_ID.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		Subdomain: os.Getenv("ZENDESK_SUBDOMAIN"),
		Email:     os.Getenv("ZENDESK_EMAIL"),
		APIToken:  os.Getenv("ZENDESK_API_TOKEN"),
		GroupID:   os.Getenv("ZENDESK_GROUP_ID"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Subdomain == "" {
		return ErrMissingSubdomain
	}

	if c.Email == "" {
		return ErrMissingEmail
	}

	if c.APIToken == "" {
		return ErrMissingToken
	}

	return nil
}

// severityPriority maps severity tiers to ticket priorities.
var severityPriority = map[models.Severity]string{
	models.SeverityCritical: "urgent",
	models.SeverityHigh:     "high",
	models.SeverityMedium:   "normal",
	models.SeverityLow:      "normal",
}

// criticalSLETypes escalate to at least "high" regardless of tier.
var criticalSLETypes = map[models.SLEType]bool{
	models.SLEGatewayAvailability: true,
	models.SLEDHCPPerformance:     true,
}

// PriorityFor maps (sle type, severity) to a ticket priority.
// Infrastructure-critical SLE types never file below "high".
func PriorityFor(sleType models.SLEType, severity models.Severity) string {
	priority, ok := severityPriority[severity]
	if !ok {
		priority = "normal"
	}

	if criticalSLETypes[sleType] && priority != "urgent" {
		priority = "high"
	}

	return priority
}

// Ticket is the subset of the ticket record the workflow cares about.
type Ticket struct {
	ID       int64  `json:"id"`
	Subject  string `json:"subject"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// Client talks to the ticketing API.
type Client struct {
	config *Config
	client *http.Client
	base   string
}

// NewClient creates a ticketing client from a validated Config.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		client: &http.Client{Timeout: defaultTimeout},
		base:   fmt.Sprintf("https://%s.zendesk.com/api/v2", config.Subdomain),
	}, nil
}

func (c *Client) baseURL() string {
	return c.base
}

func (c *Client) do(ctx context.Context, method, url string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.config.Email+"/token", c.config.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
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

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ErrRequestFailed, err)
	}

	return nil
}

type ticketEnvelope struct {
	Ticket map[string]interface{} `json:"ticket"`
}

type ticketResponse struct {
	Ticket Ticket `json:"ticket"`
}

// Create opens a ticket for a detected SLE failure.
func (c *Client) Create(ctx context.Context, apID string, sleType models.SLEType, severity models.Severity, description string) (*Ticket, error) {
	subject := fmt.Sprintf("SLE Failure: %s on AP %s", sleType, apID)
	body := fmt.Sprintf(
		"Automated SLE detection alert.\n\nAccess Point: %s\nSLE Metric: %s\nSeverity: %s\nDetected: %s\n\n%s\n\nAutomated remediation workflow has been initiated.",
		apID, sleType, severity, time.Now().UTC().Format(time.RFC3339), description)

	fields := map[string]interface{}{
		"subject":  subject,
		"comment":  map[string]string{"body": body},
		"priority": PriorityFor(sleType, severity),
		"type":     "incident",
		"tags":     []string{"wireless", "sle", "automation", string(sleType), apID},
	}

	if c.config.GroupID != "" {
		fields["group_id"] = c.config.GroupID
	}

	log.Printf("Creating ticket for AP %s, SLE %s", apID, sleType)

	var resp ticketResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL()+"/tickets.json", ticketEnvelope{Ticket: fields}, &resp); err != nil {
		return nil, err
	}

	log.Printf("Created ticket #%d", resp.Ticket.ID)

	return &resp.Ticket, nil
}

// Update adds a comment and optionally changes status or priority.
func (c *Client) Update(ctx context.Context, ticketID int64, comment, status, priority string) (*Ticket, error) {
	fields := map[string]interface{}{
		"comment": map[string]interface{}{"body": comment, "public": false},
	}

	if status != "" {
		fields["status"] = status
	}

	if priority != "" {
		fields["priority"] = priority
	}

	url := fmt.Sprintf("%s/tickets/%d.json", c.baseURL(), ticketID)

	var resp ticketResponse
	if err := c.do(ctx, http.MethodPut, url, ticketEnvelope{Ticket: fields}, &resp); err != nil {
		return nil, err
	}

	return &resp.Ticket, nil
}

// Close resolves a ticket with a final comment.
func (c *Client) Close(ctx context.Context, ticketID int64, comment string) (*Ticket, error) {
	return c.Update(ctx, ticketID, comment, "solved", "")
}
