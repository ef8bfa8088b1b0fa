package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanops/apmender/pkg/models"
)

func TestConfigured(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   bool
	}{
		{"both set", Config{Endpoint: "https://hec.example.com", Token: "tok"}, true},
		{"missing token", Config{Endpoint: "https://hec.example.com"}, false},
		{"missing endpoint", Config{Token: "tok"}, false},
		{"empty", Config{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.Configured())
		})
	}
}

func TestSendUnconfiguredSkips(t *testing.T) {
	sink := NewSink(&Config{})

	err := sink.Send(context.Background(), &Event{Type: EventDetection, APID: "ap-1"})
	assert.ErrorIs(t, err, ErrSinkUnconfigured)
}

func TestSendDeliversHECPayload(t *testing.T) {
	var got hecPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Splunk hec-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"text":"Success","code":0}`))
	}))
	defer server.Close()

	sink := NewSink(&Config{Endpoint: server.URL, Token: "hec-token", Host: "apmender"})

	err := sink.Send(context.Background(), &Event{
		Type:     EventDetection,
		APID:     "ap-1",
		SLEType:  string(models.SLEThroughput),
		Severity: string(models.SeverityCritical),
	})
	require.NoError(t, err)

	assert.Equal(t, "apmender", got.Host)
	assert.Equal(t, "sle:automation:sle_detection", got.SourceType)
	assert.NotZero(t, got.Time)

	event, ok := got.Event.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ap-1", event["ap_id"])
	assert.NotEmpty(t, event["timestamp"])
}

func TestSendUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"text":"Invalid token","code":4}`))
	}))
	defer server.Close()

	sink := NewSink(&Config{Endpoint: server.URL, Token: "bad"})

	err := sink.Send(context.Background(), &Event{Type: EventWorkflow})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestRecordWorkflowNeverPanicsUnconfigured(t *testing.T) {
	sink := NewSink(&Config{})

	// Best-effort: no sink means a logged skip, nothing more.
	sink.RecordWorkflow(context.Background(), &models.WorkflowOutcome{
		RunID:   "run-1",
		APID:    "ap-1",
		SLEType: models.SLEThroughput,
		Status:  models.WorkflowSuccess,
	})
}

func TestRecordValidationDelivers(t *testing.T) {
	received := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		received++
		_, _ = w.Write([]byte(`{"text":"Success"}`))
	}))
	defer server.Close()

	sink := NewSink(&Config{Endpoint: server.URL, Token: "tok"})
	sink.RecordValidation(context.Background(), &models.ValidationResult{
		APID:    "ap-1",
		SLEType: models.SLEThroughput,
		Status:  models.ValidationRestored,
	})

	assert.Equal(t, 1, received)
}
