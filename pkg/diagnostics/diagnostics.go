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

// Package diagnostics collects the AP and SLE state snapshot that a
// workflow run starts from.
package diagnostics

import (
	"context"
	"log"
	"time"

	"github.com/wlanops/apmender/pkg/config"
	"github.com/wlanops/apmender/pkg/models"
	"github.com/wlanops/apmender/pkg/sle"
)

// Provider is the slice of the device client diagnostics needs.
type Provider interface {
	GetAPStats(ctx context.Context, apID string) (*models.APStats, error)
	GetAPDetails(ctx context.Context, apID string) (*models.APDetails, error)
	GetSLEMetrics(ctx context.Context, siteID string) (models.SLEMetrics, error)
}

// KeyMetrics is the condensed view of an AP's health.
type KeyMetrics struct {
	Status  string  `json:"status"`
	Uptime  int64   `json:"uptime"`
	Clients int     `json:"clients"`
	CPUUtil float64 `json:"cpu_util"`
	MemUtil float64 `json:"mem_util"`
	IP      string  `json:"ip"`
	Model   string  `json:"model"`
	Version string  `json:"version"`
}

// APDiagnostics is the per-AP portion of the snapshot. Err is set and
// OK false when any collaborator call failed.
type APDiagnostics struct {
	Timestamp   time.Time         `json:"timestamp"`
	APID        string            `json:"ap_id"`
	OK          bool              `json:"ok"`
	Err         string            `json:"error,omitempty"`
	Stats       *models.APStats   `json:"ap_stats,omitempty"`
	Details     *models.APDetails `json:"ap_details,omitempty"`
	ClientCount int               `json:"client_count"`
	KeyMetrics  *KeyMetrics       `json:"key_metrics,omitempty"`
}

// SLEIssue is one degraded metric found in the site scan.
type SLEIssue struct {
	Metric   models.SLEType  `json:"metric"`
	Score    float64         `json:"score"`
	Severity models.Severity `json:"severity"`
}

// SLEDiagnostics is the site-wide SLE scan result.
type SLEDiagnostics struct {
	Timestamp time.Time         `json:"timestamp"`
	OK        bool              `json:"ok"`
	Err       string            `json:"error,omitempty"`
	Metrics   models.SLEMetrics `json:"sle_metrics,omitempty"`
	Issues    []SLEIssue        `json:"issues"`
}

// Report combines the AP and SLE snapshots with the informational
// remediation-needed flag. The flag never gates execution; that is
// the guardrail evaluator's job.
type Report struct {
	Timestamp         time.Time       `json:"report_timestamp"`
	APID              string          `json:"ap_id"`
	SLEType           models.SLEType  `json:"sle_type"`
	AP                *APDiagnostics  `json:"ap_diagnostics"`
	SLE               *SLEDiagnostics `json:"sle_diagnostics"`
	RemediationNeeded bool            `json:"remediation_needed"`
	Recommendations   []string        `json:"recommendations"`
}

// Collector gathers diagnostics through the device client.
type Collector struct {
	devices Provider
	rules   *config.Rules
}

// NewCollector creates a Collector.
func NewCollector(devices Provider, rules *config.Rules) *Collector {
	return &Collector{
		devices: devices,
		rules:   rules,
	}
}

// CollectAP gathers the per-AP snapshot. Collaborator failures are
// recorded on the snapshot, not returned: the workflow must always get
// a structured report.
func (c *Collector) CollectAP(ctx context.Context, apID string) *APDiagnostics {
	log.Printf("Collecting diagnostics for AP %s", apID)

	diag := &APDiagnostics{
		Timestamp: time.Now().UTC(),
		APID:      apID,
		OK:        true,
	}

	stats, err := c.devices.GetAPStats(ctx, apID)
	if err != nil {
		diag.OK = false
		diag.Err = err.Error()
		log.Printf("Error collecting AP stats: %v", err)

		return diag
	}

	diag.Stats = stats
	diag.ClientCount = stats.NumClients

	details, err := c.devices.GetAPDetails(ctx, apID)
	if err != nil {
		diag.OK = false
		diag.Err = err.Error()
		log.Printf("Error collecting AP details: %v", err)

		return diag
	}

	diag.Details = details
	diag.KeyMetrics = &KeyMetrics{
		Status:  stats.Status,
		Uptime:  stats.Uptime,
		Clients: stats.NumClients,
		CPUUtil: stats.CPUUtil,
		MemUtil: stats.MemUtil,
		IP:      stats.IP,
		Model:   details.Model,
		Version: stats.Version,
	}

	return diag
}

// CollectSLE scans every known SLE category against the configured
// threshold score and reports the degraded ones.
func (c *Collector) CollectSLE(ctx context.Context) *SLEDiagnostics {
	log.Printf("Collecting SLE diagnostics")

	diag := &SLEDiagnostics{
		Timestamp: time.Now().UTC(),
		OK:        true,
		Issues:    []SLEIssue{},
	}

	metrics, err := c.devices.GetSLEMetrics(ctx, "")
	if err != nil {
		diag.OK = false
		diag.Err = err.Error()
		log.Printf("Error collecting SLE metrics: %v", err)

		return diag
	}

	diag.Metrics = metrics
	threshold := c.rules.Validation.ThresholdScore

	for _, sleType := range models.KnownSLETypes() {
		score, ok := sle.ExtractScore(metrics, sleType)
		if !ok {
			continue
		}

		if score < threshold {
			diag.Issues = append(diag.Issues, SLEIssue{
				Metric:   sleType,
				Score:    score,
				Severity: sle.Classify(score, c.rules.Thresholds),
			})
		}
	}

	log.Printf("SLE diagnostics complete, found %d issues", len(diag.Issues))

	return diag
}

// GenerateReport builds the full diagnostic report for one
// (ap, sle type) pair, including advisory recommendations.
func (c *Collector) GenerateReport(ctx context.Context, apID string, sleType models.SLEType) *Report {
	report := &Report{
		Timestamp: time.Now().UTC(),
		APID:      apID,
		SLEType:   sleType,
		AP:        c.CollectAP(ctx, apID),
		SLE:       c.CollectSLE(ctx),
	}

	report.RemediationNeeded = report.AP.OK && len(report.SLE.Issues) > 0
	report.Recommendations = c.recommendations(report.AP)

	return report
}

// recommendations flags advisory risks regardless of workflow outcome.
func (c *Collector) recommendations(ap *APDiagnostics) []string {
	recs := []string{}

	if ap.Stats == nil {
		return recs
	}

	if ap.ClientCount < c.rules.Guardrails.MinClients {
		recs = append(recs, "Low client count - remediation may have limited impact")
	}

	uptime := time.Duration(ap.Stats.Uptime) * time.Second
	if uptime < c.rules.Guardrails.MinRebootInterval.Std() {
		recs = append(recs, "AP recently rebooted - allow stabilization time")
	}

	return recs
}
