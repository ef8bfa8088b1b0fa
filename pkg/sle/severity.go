// Package sle pkg/sle/severity.go
package sle

import (
	"fmt"

	"github.com/wlanops/apmender/pkg/config"
	"github.com/wlanops/apmender/pkg/models"
)

// Classify maps a score to its severity tier. Total over all finite
// scores: anything below the critical threshold (including negative
// input) is critical, anything at or above the low threshold is low.
// Threshold ordering is enforced at config load, not here.
func Classify(score float64, thresholds config.Thresholds) models.Severity {
	switch {
	case score < thresholds.Critical:
		return models.SeverityCritical
	case score < thresholds.High:
		return models.SeverityHigh
	case score < thresholds.Medium:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// ShouldRemediate decides whether a score warrants remediation. The
// boundary is inclusive on the healthy side: score >= threshold means
// no remediation, matching the validation loop's restored rule.
func ShouldRemediate(score, threshold float64) (bool, string) {
	if score >= threshold {
		return false, fmt.Sprintf("SLE score %.2f is at or above threshold %.2f", score, threshold)
	}

	return true, fmt.Sprintf("SLE score %.2f below threshold %.2f, remediation recommended", score, threshold)
}
