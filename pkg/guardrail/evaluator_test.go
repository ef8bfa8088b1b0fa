package guardrail

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/wlanops/apmender/pkg/config"
	"github.com/wlanops/apmender/pkg/mist"
	"github.com/wlanops/apmender/pkg/models"
)

// staticClock pins Now for business-hours tests.
type staticClock struct{ now time.Time }

func (c staticClock) Now() time.Time { return c.now }

func baseRules() config.Guardrails {
	return config.Guardrails{
		MinClients:        3,
		MinRebootInterval: config.Duration(30 * time.Minute),
	}
}

func TestEvaluatePasses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	devices := mist.NewMockDeviceClient(ctrl)
	devices.EXPECT().GetAPStats(gomock.Any(), "ap-1").Return(&models.APStats{
		Status:     models.APStatusConnected,
		Uptime:     7200,
		NumClients: 10,
	}, nil)

	result := NewEvaluator(baseRules(), devices, nil).Evaluate(context.Background(), "ap-1")

	assert.True(t, result.Passed)
	assert.Equal(t, "all checks passed", result.Reason)
}

func TestEvaluateClientCountPrecedesUptime(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Both the client floor and the uptime interval are violated; the
	// report must carry the client-count reason.
	devices := mist.NewMockDeviceClient(ctrl)
	devices.EXPECT().GetAPStats(gomock.Any(), "ap-1").Return(&models.APStats{
		Status:     models.APStatusConnected,
		Uptime:     60,
		NumClients: 1,
	}, nil)

	result := NewEvaluator(baseRules(), devices, nil).Evaluate(context.Background(), "ap-1")

	assert.False(t, result.Passed)
	assert.Contains(t, result.Reason, "client count (1)")
	assert.Contains(t, result.Reason, "minimum threshold (3)")
	assert.NotContains(t, result.Reason, "uptime")
}

func TestEvaluateUptimeTooLow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	devices := mist.NewMockDeviceClient(ctrl)
	devices.EXPECT().GetAPStats(gomock.Any(), "ap-1").Return(&models.APStats{
		Status:     models.APStatusConnected,
		Uptime:     600,
		NumClients: 10,
	}, nil)

	result := NewEvaluator(baseRules(), devices, nil).Evaluate(context.Background(), "ap-1")

	assert.False(t, result.Passed)
	assert.Contains(t, result.Reason, "uptime")
	assert.Contains(t, result.Reason, "minimum reboot interval")
}

func TestEvaluateStatsErrorFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Remediation never proceeds on ambiguous state.
	devices := mist.NewMockDeviceClient(ctrl)
	devices.EXPECT().GetAPStats(gomock.Any(), "ap-1").Return(nil, assert.AnError)

	result := NewEvaluator(baseRules(), devices, nil).Evaluate(context.Background(), "ap-1")

	assert.False(t, result.Passed)
	assert.Contains(t, result.Reason, "error:")
}

func TestEvaluateBusinessHours(t *testing.T) {
	rules := baseRules()
	rules.BusinessHoursOnly = true
	rules.BusinessHours = config.BusinessHours{Start: "08:00", End: "18:00", Timezone: "UTC"}

	tests := []struct {
		name       string
		now        time.Time
		wantPassed bool
		wantReason string
	}{
		{
			name:       "inside window",
			now:        time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
			wantPassed: true,
		},
		{
			name:       "before window",
			now:        time.Date(2025, 6, 2, 7, 59, 0, 0, time.UTC),
			wantReason: "outside business hours",
		},
		{
			name:       "window start is inside",
			now:        time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
			wantPassed: true,
		},
		{
			name:       "window end is outside",
			now:        time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
			wantReason: "outside business hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			devices := mist.NewMockDeviceClient(ctrl)
			if tt.wantPassed {
				devices.EXPECT().GetAPStats(gomock.Any(), "ap-1").Return(&models.APStats{
					Status:     models.APStatusConnected,
					Uptime:     7200,
					NumClients: 10,
				}, nil)
			}

			evaluator := NewEvaluator(rules, devices, staticClock{now: tt.now})
			result := evaluator.Evaluate(context.Background(), "ap-1")

			assert.Equal(t, tt.wantPassed, result.Passed)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, result.Reason)
			}
		})
	}
}

func TestEvaluateBusinessHoursBeforeStats(t *testing.T) {
	rules := baseRules()
	rules.BusinessHoursOnly = true
	rules.BusinessHours = config.BusinessHours{Start: "08:00", End: "18:00", Timezone: "UTC"}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No GetAPStats expectation: the business-hours failure must
	// short-circuit before any live-state fetch.
	devices := mist.NewMockDeviceClient(ctrl)

	evaluator := NewEvaluator(rules, devices, staticClock{
		now: time.Date(2025, 6, 2, 3, 0, 0, 0, time.UTC),
	})
	result := evaluator.Evaluate(context.Background(), "ap-1")

	assert.False(t, result.Passed)
	assert.Equal(t, "outside business hours", result.Reason)
}
