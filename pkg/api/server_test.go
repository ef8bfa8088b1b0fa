package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlanops/apmender/pkg/models"
)

// stubRunner returns a canned outcome and signals each completed run.
type stubRunner struct {
	outcome *models.WorkflowOutcome
	done    chan struct{}
}

func newStubRunner(status models.WorkflowStatus) *stubRunner {
	return &stubRunner{
		outcome: &models.WorkflowOutcome{Status: status},
		done:    make(chan struct{}, 8),
	}
}

func (r *stubRunner) Run(_ context.Context, apID string, sleType models.SLEType, _ bool) *models.WorkflowOutcome {
	outcome := *r.outcome
	outcome.APID = apID
	outcome.SLEType = sleType

	r.done <- struct{}{}

	return &outcome
}

func (r *stubRunner) waitDone(t *testing.T) {
	t.Helper()

	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		t.Fatal("workflow run did not complete")
	}
}

func postWorkflow(t *testing.T, server *httptest.Server, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(server.URL+"/api/workflows", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)

	return resp
}

func TestStartWorkflow(t *testing.T) {
	runner := newStubRunner(models.WorkflowSuccess)
	server := httptest.NewServer(NewServer(runner).Router())
	defer server.Close()

	resp := postWorkflow(t, server, `{"ap_id":"ap-1","sle_type":"throughput"}`)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	var ack map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.NotEmpty(t, ack["run_id"])

	runner.waitDone(t)
}

func TestStartWorkflowValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{not json`},
		{"missing ap_id", `{"sle_type":"throughput"}`},
		{"missing sle_type", `{"ap_id":"ap-1"}`},
	}

	server := httptest.NewServer(NewServer(newStubRunner(models.WorkflowSuccess)).Router())
	defer server.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postWorkflow(t, server, tt.body)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetWorkflow(t *testing.T) {
	runner := newStubRunner(models.WorkflowSuccess)
	server := httptest.NewServer(NewServer(runner).Router())
	defer server.Close()

	resp := postWorkflow(t, server, `{"ap_id":"ap-1","sle_type":"throughput"}`)

	var ack map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	_ = resp.Body.Close()

	runner.waitDone(t)

	// The run goroutine stores the outcome after signalling done; poll
	// briefly instead of assuming the store write is visible.
	require.Eventually(t, func() bool {
		getResp, err := http.Get(server.URL + "/api/workflows/" + ack["run_id"])
		if err != nil {
			return false
		}
		defer func() { _ = getResp.Body.Close() }()

		var state RunState
		if err := json.NewDecoder(getResp.Body).Decode(&state); err != nil {
			return false
		}

		return !state.Running && state.Outcome != nil &&
			state.Outcome.Status == models.WorkflowSuccess
	}, 5*time.Second, 10*time.Millisecond)
}

func TestGetWorkflowNotFound(t *testing.T) {
	server := httptest.NewServer(NewServer(newStubRunner(models.WorkflowSuccess)).Router())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/workflows/no-such-run")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListWorkflowsPreservesOrder(t *testing.T) {
	runner := newStubRunner(models.WorkflowSuccess)
	server := httptest.NewServer(NewServer(runner).Router())
	defer server.Close()

	for _, ap := range []string{"ap-1", "ap-2", "ap-3"} {
		resp := postWorkflow(t, server, `{"ap_id":"`+ap+`","sle_type":"throughput"}`)
		_ = resp.Body.Close()
		runner.waitDone(t)
	}

	resp, err := http.Get(server.URL + "/api/workflows")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var states []RunState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&states))

	require.Len(t, states, 3)
	assert.Equal(t, "ap-1", states[0].APID)
	assert.Equal(t, "ap-3", states[2].APID)
}

func TestGetStatus(t *testing.T) {
	runner := newStubRunner(models.WorkflowSuccess)
	server := httptest.NewServer(NewServer(runner).Router())
	defer server.Close()

	resp := postWorkflow(t, server, `{"ap_id":"ap-1","sle_type":"throughput"}`)
	_ = resp.Body.Close()
	runner.waitDone(t)

	statusResp, err := http.Get(server.URL + "/api/status")
	require.NoError(t, err)
	defer func() { _ = statusResp.Body.Close() }()

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(statusResp.Body).Decode(&status))

	assert.InDelta(t, 1, status["total_runs"], 0.001)
}

func subscriberCount(s *Server) int {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	return len(s.subscribers)
}

func TestEventStreamSubscriberRemovedOnDisconnect(t *testing.T) {
	api := NewServer(newStubRunner(models.WorkflowSuccess))
	server := httptest.NewServer(api.Router())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/events"

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	if resp != nil {
		_ = resp.Body.Close()
	}

	require.Eventually(t, func() bool { return subscriberCount(api) == 1 },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	// No workflow was ever triggered: cleanup must not depend on a
	// broadcast reaching the subscriber.
	assert.Eventually(t, func() bool { return subscriberCount(api) == 0 },
		5*time.Second, 10*time.Millisecond)
}

func TestEventStream(t *testing.T) {
	runner := newStubRunner(models.WorkflowSuccess)
	server := httptest.NewServer(NewServer(runner).Router())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/events"

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	if resp != nil {
		_ = resp.Body.Close()
	}

	defer func() { _ = conn.Close() }()

	postResp := postWorkflow(t, server, `{"ap_id":"ap-1","sle_type":"throughput"}`)
	_ = postResp.Body.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var started WorkflowEvent
	require.NoError(t, conn.ReadJSON(&started))
	assert.Equal(t, "started", started.Phase)
	assert.Equal(t, "ap-1", started.APID)

	var completed WorkflowEvent
	require.NoError(t, conn.ReadJSON(&completed))
	assert.Equal(t, "completed", completed.Phase)
	assert.Equal(t, string(models.WorkflowSuccess), completed.Status)
	assert.Equal(t, started.RunID, completed.RunID)
}
