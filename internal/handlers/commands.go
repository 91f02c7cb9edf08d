package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yooho-ai/trainee-engine/pkg/engine"
	"github.com/yooho-ai/trainee-engine/pkg/state"
)

// CommandHandler exposes session commands that never run a chat turn:
// focus changes, item use, and manual save slot operations.
type CommandHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewCommandHandler(engine *engine.Engine, logger *slog.Logger) *CommandHandler {
	return &CommandHandler{
		engine: engine,
		logger: logger,
	}
}

// FocusRequest moves the interaction focus. Exactly one field is expected;
// character may be empty to clear the focus.
type FocusRequest struct {
	Character *string `json:"character,omitempty"`
	Scene     string  `json:"scene,omitempty"`
	Tab       string  `json:"tab,omitempty"`
}

// ItemRequest consumes one inventory item.
type ItemRequest struct {
	ItemID string `json:"item_id"`
}

// SaveStatusResponse reports whether a save slot exists.
type SaveStatusResponse struct {
	HasSave bool `json:"has_save"`
}

// ServeHTTP handles HTTP requests for session commands
// Routes:
// POST /v1/session/focus  - Change focused character, scene, or tab
// POST /v1/session/item   - Use an inventory item
// POST /v1/session/save   - Persist the session to the save slot
// POST /v1/session/load   - Restore the session from the save slot
// GET /v1/session/save    - Check whether a save slot exists
// DELETE /v1/session/save - Clear the save slot
func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	command := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/session/"), "/")

	switch {
	case command == "focus" && r.Method == http.MethodPost:
		h.handleFocus(w, r)

	case command == "item" && r.Method == http.MethodPost:
		h.handleItem(w, r)

	case command == "save" && r.Method == http.MethodPost:
		h.engine.Save(r.Context())
		writeJSON(w, h.logger, h.engine.Snapshot())

	case command == "save" && r.Method == http.MethodGet:
		writeJSON(w, h.logger, SaveStatusResponse{HasSave: h.engine.HasSave(r.Context())})

	case command == "save" && r.Method == http.MethodDelete:
		h.engine.ClearSave(r.Context())
		w.WriteHeader(http.StatusNoContent)

	case command == "load" && r.Method == http.MethodPost:
		h.engine.Load(r.Context())
		writeJSON(w, h.logger, h.engine.Snapshot())

	default:
		h.logger.Warn("Unknown session command",
			"command", command,
			"method", r.Method)
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, h.logger, ErrorResponse{Error: "Unknown session command"})
	}
}

func (h *CommandHandler) handleFocus(w http.ResponseWriter, r *http.Request) {
	var request FocusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid focus body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, h.logger, ErrorResponse{Error: "Invalid request body"})
		return
	}

	switch {
	case request.Character != nil:
		h.engine.FocusCharacter(*request.Character)
	case request.Scene != "":
		h.engine.FocusScene(request.Scene)
	case request.Tab != "":
		h.engine.SetActiveTab(state.Tab(request.Tab))
	default:
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, h.logger, ErrorResponse{Error: "Expected one of: character, scene, tab"})
		return
	}

	writeJSON(w, h.logger, h.engine.Snapshot())
}

func (h *CommandHandler) handleItem(w http.ResponseWriter, r *http.Request) {
	var request ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid item body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, h.logger, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if request.ItemID == "" {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, h.logger, ErrorResponse{Error: "item_id is required"})
		return
	}

	h.engine.UseItem(request.ItemID)
	writeJSON(w, h.logger, h.engine.Snapshot())
}
