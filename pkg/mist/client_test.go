package mist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{
		APIBase:  server.URL,
		APIToken: "test-token",
		SiteID:   "site-1",
	})
	require.NoError(t, err)

	return client
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "valid",
			config:  Config{APIToken: "tok", SiteID: "site-1"},
			wantErr: nil,
		},
		{
			name:    "missing token",
			config:  Config{SiteID: "site-1"},
			wantErr: ErrMissingToken,
		},
		{
			name:    "missing site",
			config:  Config{APIToken: "tok"},
			wantErr: ErrMissingSiteID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestConfigValidateAppliesDefaults(t *testing.T) {
	cfg := Config{APIToken: "tok", SiteID: "site-1"}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, defaultAPIBase, cfg.APIBase)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
}

func TestGetAPStats(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/sites/site-1/stats/aps/ap-1", r.URL.Path)
		assert.Equal(t, "Token test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"connected","uptime":86400,"num_clients":7,"ip":"10.0.0.5"}`))
	})

	stats, err := client.GetAPStats(context.Background(), "ap-1")
	require.NoError(t, err)

	assert.True(t, stats.Online())
	assert.Equal(t, int64(86400), stats.Uptime)
	assert.Equal(t, 7, stats.NumClients)
}

func TestAuthRejected(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetAPStats(context.Background(), "ap-1")
	assert.ErrorIs(t, err, ErrAuthRejected)
}

func TestUnexpectedStatusIncludesBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"device not found"}`))
	})

	_, err := client.GetAPStats(context.Background(), "ap-404")
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "device not found")
}

func TestRebootAPSynthesizesAck(t *testing.T) {
	var gotPath string

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	resp, err := client.RebootAP(context.Background(), "ap-1")
	require.NoError(t, err)

	assert.Equal(t, "/sites/site-1/devices/ap-1/restart", gotPath)
	assert.Equal(t, "reboot_issued", resp.Status)
	assert.Equal(t, "ap-1", resp.APID)
}

func TestGetSLEMetricsUsesDefaultSite(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/site-1/sle", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"client":{"throughput":{"score":87.5}}}`))
	})

	metrics, err := client.GetSLEMetrics(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, metrics, "client")
}

func TestGetSLEMetricsSiteOverride(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/site-2/sle", r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.GetSLEMetrics(context.Background(), "site-2")
	require.NoError(t, err)
}

func TestGetSLEHistoryQueryParams(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/site-1/sle/throughput/metrics", r.URL.Path)
		assert.Equal(t, "1700000000", r.URL.Query().Get("start"))
		assert.Equal(t, "1700003600", r.URL.Query().Get("end"))

		_, _ = w.Write([]byte(`{"series":[]}`))
	})

	history, err := client.GetSLEHistory(context.Background(), "throughput", 1700000000, 1700003600, "")
	require.NoError(t, err)
	assert.Contains(t, history, "series")
}

func TestUpdateWLANSendsChanges(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/sites/site-1/wlans/wlan-9", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		_, _ = w.Write([]byte(`{"id":"wlan-9","ssid":"corp","enabled":false}`))
	})

	wlan, err := client.UpdateWLAN(context.Background(), "wlan-9", map[string]interface{}{"enabled": false}, "")
	require.NoError(t, err)
	assert.Equal(t, "wlan-9", wlan.ID)
	assert.False(t, wlan.Enabled)
}

func TestValidateCredentials(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/self", r.URL.Path)
		_, _ = w.Write([]byte(`{"email":"svc@example.com"}`))
	})

	assert.NoError(t, client.ValidateCredentials(context.Background()))
}

func TestValidateCredentialsRejected(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	assert.ErrorIs(t, client.ValidateCredentials(context.Background()), ErrAuthRejected)
}
