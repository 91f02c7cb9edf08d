package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yooho-ai/trainee-engine/pkg/engine"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionHandler manages the session lifecycle.
type SessionHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewSessionHandler(engine *engine.Engine, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		engine: engine,
		logger: logger,
	}
}

// StartSessionRequest defines the request body for starting a session.
type StartSessionRequest struct {
	PlayerName string `json:"player_name"`
}

// ServeHTTP handles HTTP requests for session operations
// Routes:
// POST /v1/session   - Start a new session
// GET /v1/session    - Read the session snapshot
// DELETE /v1/session - Reset the session
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodPost:
		h.handleStart(w, r)

	case http.MethodGet:
		h.handleSnapshot(w, r)

	case http.MethodDelete:
		h.handleReset(w, r)

	default:
		h.logger.Warn("Method not allowed for session endpoint", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		writeJSON(w, h.logger, ErrorResponse{
			Error: "Method not allowed. Supported methods: POST, GET, DELETE",
		})
	}
}

func (h *SessionHandler) handleStart(w http.ResponseWriter, r *http.Request) {
	var request StartSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Warn("Invalid session start body", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, h.logger, ErrorResponse{Error: "Invalid request body"})
			return
		}
	}

	h.engine.Start(request.PlayerName)

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, h.logger, h.engine.Snapshot())
}

func (h *SessionHandler) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snapshot := h.engine.Snapshot()
	if !snapshot.Started {
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, h.logger, ErrorResponse{Error: "No active session"})
		return
	}
	writeJSON(w, h.logger, snapshot)
}

func (h *SessionHandler) handleReset(w http.ResponseWriter, _ *http.Request) {
	h.engine.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}
