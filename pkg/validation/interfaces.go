// Package validation pkg/validation/interfaces.go
package validation

import (
	"context"

	"github.com/wlanops/apmender/pkg/models"
)

// MetricsProvider is the slice of the device client the loop needs:
// the online check and the SLE metric polls.
type MetricsProvider interface {
	GetAPStats(ctx context.Context, apID string) (*models.APStats, error)
	GetSLEMetrics(ctx context.Context, siteID string) (models.SLEMetrics, error)
}
