package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yooho-ai/trainee-engine/pkg/chat"
	"github.com/yooho-ai/trainee-engine/pkg/engine"
	"github.com/yooho-ai/trainee-engine/pkg/state"
)

// ChatHandler runs one player turn per request.
type ChatHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// ChatResponse carries the post-turn session snapshot.
type ChatResponse struct {
	Session *state.Session `json:"session,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func NewChatHandler(engine *engine.Engine, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		engine: engine,
		logger: logger,
	}
}

// ServeHTTP handles HTTP requests for chat
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for chat endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)

		w.WriteHeader(http.StatusMethodNotAllowed)
		writeJSON(w, h.logger, ChatResponse{
			Error: "Method not allowed. Only POST is supported.",
		})
		return
	}

	h.logger.Info("Chat endpoint accessed",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	var request chat.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, h.logger, ChatResponse{
			Error: "Invalid request body. Expected JSON with 'message' field.",
		})
		return
	}

	if err := request.Validate(); err != nil {
		h.logger.Warn("Invalid chat request", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, h.logger, ChatResponse{Error: err.Error()})
		return
	}

	if err := h.engine.SubmitInput(r.Context(), request.Message); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, engine.ErrBusy):
			status = http.StatusConflict
		case errors.Is(err, engine.ErrNotStarted), errors.Is(err, engine.ErrEnded):
			status = http.StatusBadRequest
		case errors.Is(err, context.Canceled):
			// Client went away mid-stream; nothing to write.
			return
		}
		h.logger.Warn("Chat turn failed", "error", err)
		w.WriteHeader(status)
		writeJSON(w, h.logger, ChatResponse{Error: err.Error()})
		return
	}

	writeJSON(w, h.logger, ChatResponse{Session: h.engine.Snapshot()})
}
