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

// Package mist pkg/mist/client.go
package mist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/wlanops/apmender/pkg/models"
)

const (
	defaultAPIBase     = "https://api.mist.com/api/v1"
	defaultTimeout     = 30 * time.Second
	defaultRateLimit   = rate.Limit(10) // requests per second
	defaultRateBurst   = 5
	credentialsTimeout = 10 * time.Second
)

// Config holds the device-cloud connection settings. Credentials are
// opaque bearer tokens; they are read from the environment exactly
// once, at construction, never from inside request paths.
type Config struct {
	APIBase  string
	APIToken string
	SiteID   string
	Timeout  time.Duration
}

// ConfigFromEnv builds a Config from MIST_API_TOKEN, SITE_ID and the
// optional MIST_API_BASE.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		APIBase:  os.Getenv("MIST_API_BASE"),
		APIToken: os.Getenv("MIST_API_TOKEN"),
		SiteID:   os.Getenv("SITE_ID"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.APIToken == "" {
		return ErrMissingToken
	}

	if c.SiteID == "" {
		return ErrMissingSiteID
	}

	if c.APIBase == "" {
		c.APIBase = defaultAPIBase
	}

	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}

	return nil
}

// Client is the HTTP implementation of DeviceClient. Outbound calls
// share a client-side rate limiter so a tight validation loop cannot
// hammer the cloud API.
type Client struct {
	config  *Config
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a device-cloud client from a validated Config.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(defaultRateLimit, defaultRateBurst),
	}, nil
}

func (c *Client) siteOrDefault(siteID string) string {
	if siteID == "" {
		return c.config.SiteID
	}

	return siteID
}

func (c *Client) do(ctx context.Context, method, url string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+c.config.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: status=%d", ErrAuthRejected, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: status=%d body=%s", ErrUnexpectedStatus, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ErrTransport, err)
	}

	return nil
}

// GetAPStats implements DeviceClient.
func (c *Client) GetAPStats(ctx context.Context, apID string) (*models.APStats, error) {
	url := fmt.Sprintf("%s/sites/%s/stats/aps/%s", c.config.APIBase, c.config.SiteID, apID)

	var stats models.APStats
	if err := c.do(ctx, http.MethodGet, url, nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to get stats for AP %s: %w", apID, err)
	}

	return &stats, nil
}

// GetAPDetails implements DeviceClient.
func (c *Client) GetAPDetails(ctx context.Context, apID string) (*models.APDetails, error) {
	url := fmt.Sprintf("%s/sites/%s/devices/%s", c.config.APIBase, c.config.SiteID, apID)

	var details models.APDetails
	if err := c.do(ctx, http.MethodGet, url, nil, &details); err != nil {
		return nil, fmt.Errorf("failed to get details for AP %s: %w", apID, err)
	}

	return &details, nil
}

// GetClientCount implements DeviceClient.
func (c *Client) GetClientCount(ctx context.Context, apID string) (int, error) {
	stats, err := c.GetAPStats(ctx, apID)
	if err != nil {
		return 0, err
	}

	return stats.NumClients, nil
}

// RebootResponse is the acknowledgment for a reboot command.
type RebootResponse struct {
	Status string `json:"status"`
	APID   string `json:"ap_id"`
}

// RebootAP implements DeviceClient. The restart endpoint returns an
// empty body; the acknowledgment is synthesized from the status code.
func (c *Client) RebootAP(ctx context.Context, apID string) (*RebootResponse, error) {
	url := fmt.Sprintf("%s/sites/%s/devices/%s/restart", c.config.APIBase, c.config.SiteID, apID)

	log.Printf("Issuing reboot command to AP %s", apID)

	if err := c.do(ctx, http.MethodPost, url, nil, nil); err != nil {
		return nil, fmt.Errorf("failed to reboot AP %s: %w", apID, err)
	}

	return &RebootResponse{Status: "reboot_issued", APID: apID}, nil
}

// GetSLEMetrics implements DeviceClient.
func (c *Client) GetSLEMetrics(ctx context.Context, siteID string) (models.SLEMetrics, error) {
	site := c.siteOrDefault(siteID)
	url := fmt.Sprintf("%s/sites/%s/sle", c.config.APIBase, site)

	var metrics models.SLEMetrics
	if err := c.do(ctx, http.MethodGet, url, nil, &metrics); err != nil {
		return nil, fmt.Errorf("failed to get SLE metrics for site %s: %w", site, err)
	}

	return metrics, nil
}

// GetSLEHistory implements DeviceClient.
func (c *Client) GetSLEHistory(ctx context.Context, metric string, start, end int64, siteID string) (map[string]interface{}, error) {
	site := c.siteOrDefault(siteID)
	url := fmt.Sprintf("%s/sites/%s/sle/%s/metrics", c.config.APIBase, site, metric)

	sep := "?"

	if start > 0 {
		url += fmt.Sprintf("%sstart=%d", sep, start)
		sep = "&"
	}

	if end > 0 {
		url += fmt.Sprintf("%send=%d", sep, end)
	}

	var history map[string]interface{}
	if err := c.do(ctx, http.MethodGet, url, nil, &history); err != nil {
		return nil, fmt.Errorf("failed to get SLE history for %s: %w", metric, err)
	}

	return history, nil
}

// GetWLANs implements DeviceClient.
func (c *Client) GetWLANs(ctx context.Context, siteID string) ([]models.WLAN, error) {
	site := c.siteOrDefault(siteID)
	url := fmt.Sprintf("%s/sites/%s/wlans", c.config.APIBase, site)

	var wlans []models.WLAN
	if err := c.do(ctx, http.MethodGet, url, nil, &wlans); err != nil {
		return nil, fmt.Errorf("failed to list WLANs for site %s: %w", site, err)
	}

	return wlans, nil
}

// UpdateWLAN implements DeviceClient.
func (c *Client) UpdateWLAN(ctx context.Context, wlanID string, changes map[string]interface{}, siteID string) (*models.WLAN, error) {
	site := c.siteOrDefault(siteID)
	url := fmt.Sprintf("%s/sites/%s/wlans/%s", c.config.APIBase, site, wlanID)

	var wlan models.WLAN
	if err := c.do(ctx, http.MethodPut, url, changes, &wlan); err != nil {
		return nil, fmt.Errorf("failed to update WLAN %s: %w", wlanID, err)
	}

	return &wlan, nil
}

// ValidateCredentials implements DeviceClient. Uses a short timeout:
// a credential probe should fail fast.
func (c *Client) ValidateCredentials(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, credentialsTimeout)
	defer cancel()

	url := c.config.APIBase + "/self"

	if err := c.do(ctx, http.MethodGet, url, nil, nil); err != nil {
		return fmt.Errorf("credential validation failed: %w", err)
	}

	log.Printf("Device cloud credentials validated")

	return nil
}
