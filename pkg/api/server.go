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

// Package api serves workflow runs over HTTP: trigger a run, list and
// fetch outcomes, and stream lifecycle events over a websocket. The
// run store is in memory only; finished runs disappear with the
// process.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/wlanops/apmender/pkg/models"
)

const shutdownTimeout = 10 * time.Second

// Runner executes one workflow; satisfied by workflow.Workflow via the
// server's runner adapter in pkg/cli.
type Runner interface {
	Run(ctx context.Context, apID string, sleType models.SLEType, force bool) *models.WorkflowOutcome
}

// RunState tracks one triggered workflow in the store.
type RunState struct {
	RunID     string                  `json:"run_id"`
	APID      string                  `json:"ap_id"`
	SLEType   models.SLEType          `json:"sle_type"`
	Running   bool                    `json:"running"`
	StartedAt time.Time               `json:"started_at"`
	Outcome   *models.WorkflowOutcome `json:"outcome,omitempty"`
}

// WorkflowEvent is one message on the websocket stream.
type WorkflowEvent struct {
	EventID   string         `json:"event_id"`
	RunID     string         `json:"run_id"`
	Phase     string         `json:"phase"` // started | completed
	APID      string         `json:"ap_id"`
	SLEType   models.SLEType `json:"sle_type"`
	Status    string         `json:"status,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Server is the HTTP surface.
type Server struct {
	mu          sync.RWMutex
	runs        map[string]*RunState
	order       []string
	runner      Runner
	router      *mux.Router
	upgrader    websocket.Upgrader
	subscribers map[chan WorkflowEvent]struct{}
	subMu       sync.Mutex
}

// NewServer creates the API server around a workflow runner.
func NewServer(runner Runner) *Server {
	s := &Server{
		runs:   make(map[string]*RunState),
		runner: runner,
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subscribers: make(map[chan WorkflowEvent]struct{}),
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/workflows", s.startWorkflow).Methods("POST")
	s.router.HandleFunc("/api/workflows", s.listWorkflows).Methods("GET")
	s.router.HandleFunc("/api/workflows/{id}", s.getWorkflow).Methods("GET")
	s.router.HandleFunc("/api/status", s.getStatus).Methods("GET")
	s.router.HandleFunc("/api/events", s.streamEvents).Methods("GET")
}

// Router exposes the handler for embedding in tests and servers.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, listenAddr string) error {
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		log.Printf("API server listening on %s", listenAddr)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}

type startRequest struct {
	APID    string `json:"ap_id"`
	SLEType string `json:"sle_type"`
	Force   bool   `json:"force"`
}

func (s *Server) startWorkflow(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.APID == "" || req.SLEType == "" {
		http.Error(w, "ap_id and sle_type are required", http.StatusBadRequest)
		return
	}

	state := &RunState{
		RunID:     uuid.New().String(),
		APID:      req.APID,
		SLEType:   models.SLEType(req.SLEType),
		Running:   true,
		StartedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.runs[state.RunID] = state
	s.order = append(s.order, state.RunID)
	s.mu.Unlock()

	s.broadcast(WorkflowEvent{
		EventID:   uuid.New().String(),
		RunID:     state.RunID,
		Phase:     "started",
		APID:      state.APID,
		SLEType:   state.SLEType,
		Timestamp: time.Now().UTC(),
	})

	// One goroutine per run; the workflow enforces its own deadline.
	go func() {
		outcome := s.runner.Run(context.Background(), state.APID, state.SLEType, req.Force)

		s.mu.Lock()
		state.Running = false
		state.Outcome = outcome
		s.mu.Unlock()

		s.broadcast(WorkflowEvent{
			EventID:   uuid.New().String(),
			RunID:     state.RunID,
			Phase:     "completed",
			APID:      state.APID,
			SLEType:   state.SLEType,
			Status:    string(outcome.Status),
			Timestamp: time.Now().UTC(),
		})
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)

	if err := json.NewEncoder(w).Encode(map[string]string{"run_id": state.RunID}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func (s *Server) listWorkflows(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()

	states := make([]*RunState, 0, len(s.order))
	for _, id := range s.order {
		states = append(states, s.runs[id])
	}

	s.mu.RUnlock()

	writeJSON(w, states)
}

func (s *Server) getWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.RLock()
	state, ok := s.runs[id]
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "workflow not found", http.StatusNotFound)
		return
	}

	writeJSON(w, state)
}

func (s *Server) getStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()

	total := len(s.runs)
	running := 0

	for _, state := range s.runs {
		if state.Running {
			running++
		}
	}

	s.mu.RUnlock()

	writeJSON(w, map[string]interface{}{
		"total_runs":   total,
		"running":      running,
		"last_checked": time.Now().UTC(),
	})
}

func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	events := make(chan WorkflowEvent, 16)

	s.subMu.Lock()
	s.subscribers[events] = struct{}{}
	s.subMu.Unlock()

	defer func() {
		s.subMu.Lock()
		delete(s.subscribers, events)
		s.subMu.Unlock()

		if err := conn.Close(); err != nil {
			log.Printf("Error closing websocket connection: %v", err)
		}
	}()

	// Read pump: clients never send messages, but reading is the only
	// way to notice a disconnect before the next broadcast. Without it
	// an idle subscriber would hold its channel and map entry forever.
	done := make(chan struct{})

	go func() {
		defer close(done)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case event := <-events:
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("Websocket write failed, dropping subscriber: %v", err)
				return
			}
		}
	}
}

func (s *Server) broadcast(event WorkflowEvent) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for events := range s.subscribers {
		select {
		case events <- event:
		default:
			// Slow subscriber, drop the event rather than block.
		}
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
