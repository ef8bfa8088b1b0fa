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

// Package sle holds the pure scoring functions of the remediation
// workflow: score extraction from the nested metrics document,
// severity classification, and the remediate/skip decision.
package sle

import (
	"encoding/json"

	"github.com/wlanops/apmender/pkg/models"
)

// scorePaths is the fixed path table into the SLE metrics document,
// keyed by SLE type.
var scorePaths = map[models.SLEType][]string{
	models.SLEThroughput:          {"client", "throughput", "score"},
	models.SLESuccessfulConnects:  {"client", "successful-connects", "score"},
	models.SLEGatewayAvailability: {"infrastructure", "gateway-availability", "score"},
	models.SLEDHCPPerformance:     {"infrastructure", "dhcp-performance", "score"},
	models.SLEDNSPerformance:      {"infrastructure", "dns-performance", "score"},
}

// ExtractScore walks the metrics document along the fixed path for the
// given SLE type. The second return is false when the type is unknown,
// the path is absent, or the leaf is not numeric. An unknown score
// must not be conflated with a real 0 by callers.
func ExtractScore(metrics models.SLEMetrics, sleType models.SLEType) (float64, bool) {
	path, ok := scorePaths[sleType]
	if !ok {
		return 0, false
	}

	var current interface{} = map[string]interface{}(metrics)

	for _, key := range path {
		node, ok := current.(map[string]interface{})
		if !ok {
			return 0, false
		}

		current, ok = node[key]
		if !ok {
			return 0, false
		}
	}

	return asNumber(current)
}

func asNumber(v interface{}) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}
