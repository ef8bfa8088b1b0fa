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

// Package models pkg/models/sle.go
package models

// SLEType identifies a Service Level Expectation metric category.
type SLEType string

const (
	SLEThroughput          SLEType = "throughput"
	SLESuccessfulConnects  SLEType = "successful-connects"
	SLEGatewayAvailability SLEType = "gateway-availability"
	SLEDHCPPerformance     SLEType = "dhcp-performance"
	SLEDNSPerformance      SLEType = "dns-performance"
)

// KnownSLETypes lists the SLE categories with a configured score path.
func KnownSLETypes() []SLEType {
	return []SLEType{
		SLEThroughput,
		SLESuccessfulConnects,
		SLEGatewayAvailability,
		SLEDHCPPerformance,
		SLEDNSPerformance,
	}
}

// SLEMetrics is the nested score document returned by the device cloud.
// Scores live at fixed paths keyed by SLEType, e.g.
// client -> throughput -> score.
type SLEMetrics map[string]interface{}

// Severity is the tier derived from an SLE score. Lower score means
// more severe.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Rank returns the ordering of a severity, 0 being most severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}
