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

// Package mist pkg/mist/interfaces.go
package mist

import (
	"context"

	"github.com/wlanops/apmender/pkg/models"
)

//go:generate mockgen -destination=mock_mist.go -package=mist github.com/wlanops/apmender/pkg/mist DeviceClient

// DeviceClient is the device-cloud collaborator contract consumed by
// the remediation workflow.
type DeviceClient interface {
	// GetAPStats retrieves the live statistics snapshot for an AP.
	GetAPStats(ctx context.Context, apID string) (*models.APStats, error)
	// GetAPDetails retrieves AP configuration and metadata.
	GetAPDetails(ctx context.Context, apID string) (*models.APDetails, error)
	// GetClientCount returns the number of clients attached to an AP.
	GetClientCount(ctx context.Context, apID string) (int, error)
	// RebootAP issues a restart command. Not idempotent-safe to repeat.
	RebootAP(ctx context.Context, apID string) (*RebootResponse, error)
	// GetSLEMetrics fetches the nested SLE score document for a site.
	// An empty siteID means the client's configured site.
	GetSLEMetrics(ctx context.Context, siteID string) (models.SLEMetrics, error)
	// GetSLEHistory fetches historical data for one SLE metric.
	GetSLEHistory(ctx context.Context, metric string, start, end int64, siteID string) (map[string]interface{}, error)
	// GetWLANs lists the WLANs configured on a site.
	GetWLANs(ctx context.Context, siteID string) ([]models.WLAN, error)
	// UpdateWLAN applies a configuration change to a WLAN.
	UpdateWLAN(ctx context.Context, wlanID string, changes map[string]interface{}, siteID string) (*models.WLAN, error)
	// ValidateCredentials verifies the configured token against the
	// cloud before any workflow step runs.
	ValidateCredentials(ctx context.Context) error
}
