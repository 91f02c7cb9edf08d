package engine

import (
	"context"

	"github.com/yooho-ai/trainee-engine/pkg/state"
)

// Save writes the current session to the save slot, overwriting any prior
// value. Write failures are swallowed: persistence never blocks or breaks
// gameplay.
func (e *Engine) Save(ctx context.Context) {
	e.mu.Lock()
	data := state.NewSaveData(e.session)
	e.mu.Unlock()

	if err := e.storage.SaveSession(ctx, data); err != nil {
		e.logger.Warn("failed to save session", "error", err)
	}
}

// saveAsync persists the session in the background after a turn.
func (e *Engine) saveAsync() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		e.Save(ctx)
	}()
}

// Load replaces the live session with the persisted snapshot. An absent
// slot, a schema version mismatch, or a corrupt blob leaves the current
// session untouched.
func (e *Engine) Load(ctx context.Context) {
	data, err := e.storage.LoadSession(ctx)
	if err != nil {
		e.logger.Warn("failed to load session", "error", err)
		return
	}
	if data == nil || data.Session == nil || data.Version != state.SaveVersion {
		if data != nil {
			e.logger.Warn("ignoring incompatible save", "version", data.Version)
		}
		return
	}

	e.mu.Lock()
	e.session = data.Session
	e.session.AwaitingReply = false
	e.session.StreamingContent = ""
	e.mu.Unlock()
	e.logger.Info("session loaded", "day", data.Session.Day)
}

// HasSave reports whether a save slot exists. Storage errors read as "no".
func (e *Engine) HasSave(ctx context.Context) bool {
	ok, err := e.storage.HasSession(ctx)
	if err != nil {
		e.logger.Warn("failed to check save slot", "error", err)
		return false
	}
	return ok
}

// ClearSave deletes the save slot. The live session is untouched.
func (e *Engine) ClearSave(ctx context.Context) {
	if err := e.storage.DeleteSession(ctx); err != nil {
		e.logger.Warn("failed to clear save slot", "error", err)
	}
}
