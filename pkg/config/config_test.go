package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestDurationUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "bare integer is seconds", input: "v: 1800", want: 30 * time.Minute},
		{name: "float is seconds", input: "v: 1.5", want: 1500 * time.Millisecond},
		{name: "duration string", input: `v: "30m"`, want: 30 * time.Minute},
		{name: "zero", input: "v: 0", want: 0},
		{name: "bad string", input: `v: "soon"`, wantErr: true},
		{name: "wrong type", input: "v: [1, 2]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				V Duration `yaml:"v"`
			}

			err := yaml.Unmarshal([]byte(tt.input), &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, out.V.Std())
		})
	}
}

func TestDefaultRulesAreValid(t *testing.T) {
	rules := DefaultRules()

	require.NoError(t, rules.Validate())
	assert.InDelta(t, 60.0, rules.Thresholds.Critical, 0.001)
	assert.InDelta(t, 90.0, rules.Thresholds.Low, 0.001)
	assert.Equal(t, 3, rules.Guardrails.MinClients)
	assert.Equal(t, 30*time.Minute, rules.Guardrails.MinRebootInterval.Std())
	assert.Equal(t, 5, rules.Validation.MaxAttempts)
	assert.InDelta(t, 90.0, rules.Validation.ThresholdScore, 0.001)
}

func TestThresholdsValidateOrdering(t *testing.T) {
	tests := []struct {
		name    string
		th      Thresholds
		wantErr bool
	}{
		{name: "ordered", th: Thresholds{Critical: 60, High: 70, Medium: 80, Low: 90}},
		{name: "equal adjacent", th: Thresholds{Critical: 60, High: 60, Medium: 80, Low: 90}, wantErr: true},
		{name: "reversed", th: Thresholds{Critical: 90, High: 80, Medium: 70, Low: 60}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.th.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGuardrailsValidate(t *testing.T) {
	g := Guardrails{MinClients: -1}
	assert.Error(t, g.Validate())

	g = Guardrails{
		BusinessHoursOnly: true,
		BusinessHours:     BusinessHours{Start: "08:00", End: "18:00", Timezone: "Not/AZone"},
	}
	assert.Error(t, g.Validate())

	g = Guardrails{
		BusinessHoursOnly: true,
		BusinessHours:     BusinessHours{Start: "8am", End: "18:00", Timezone: "UTC"},
	}
	assert.Error(t, g.Validate())

	g = Guardrails{
		MinClients:        3,
		BusinessHoursOnly: true,
		BusinessHours:     BusinessHours{Start: "08:00", End: "18:00", Timezone: "America/New_York"},
	}
	assert.NoError(t, g.Validate())
}

func TestValidationValidate(t *testing.T) {
	v := Validation{MaxAttempts: 0, ThresholdScore: 90}
	assert.Error(t, v.Validate())

	v = Validation{MaxAttempts: 5, ThresholdScore: 101}
	assert.Error(t, v.Validate())

	v = Validation{MaxAttempts: 5, ThresholdScore: 90}
	assert.NoError(t, v.Validate())
}

func TestLoadRulesMissingFileUsesDefaults(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRulesOverlaysDefaults(t *testing.T) {
	content := `
sle_thresholds:
  critical: 50
  high: 65
  medium: 75
  low: 85
validation:
  poll_interval: "5s"
  max_attempts: 3
  threshold_score: 85
remediation_strategies:
  throughput:
    - action: rrm_adjustment
      priority: 2
    - action: reboot
      priority: 1
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, rules.Thresholds.Critical, 0.001)
	assert.Equal(t, 5*time.Second, rules.Validation.PollInterval.Std())
	assert.Equal(t, 3, rules.Validation.MaxAttempts)
	// Untouched sections keep their defaults.
	assert.Equal(t, 3, rules.Guardrails.MinClients)
	assert.Len(t, rules.RemediationStrategies["throughput"], 2)
}

func TestLoadRulesRejectsBadThresholds(t *testing.T) {
	content := `
sle_thresholds:
  critical: 90
  high: 80
  medium: 70
  low: 60
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := LoadRules(path)
	assert.Error(t, err)
}
