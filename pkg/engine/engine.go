// Package engine is the progression state machine for one game session.
// It owns the session, advances time, runs player turns against the
// generation service, applies parsed stat deltas, and resolves endings.
// Commands are safe for concurrent use; there is exactly one writer at a
// time and at most one in-flight generation request per session.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/yooho-ai/trainee-engine/pkg/catalog"
	"github.com/yooho-ai/trainee-engine/pkg/chat"
	"github.com/yooho-ai/trainee-engine/pkg/parser"
	"github.com/yooho-ai/trainee-engine/pkg/prompts"
	"github.com/yooho-ai/trainee-engine/pkg/state"
)

var (
	// ErrBusy is returned when a turn is submitted while a previous turn
	// is still streaming.
	ErrBusy = errors.New("a reply is already in progress")

	// ErrNotStarted is returned for turn commands before Start.
	ErrNotStarted = errors.New("session not started")

	// ErrEnded is returned for turn commands after an ending resolved.
	ErrEnded = errors.New("session has ended")
)

// ChatService is the engine's view of the generation service.
type ChatService interface {
	// ChatStream starts a streaming completion. The channel delivers
	// incremental fragments and exactly one terminal chunk (Done or Err).
	ChatStream(ctx context.Context, messages []chat.ChatMessage) (<-chan chat.StreamChunk, error)

	// Chat collects a full completion, used for history summarization.
	Chat(ctx context.Context, messages []chat.ChatMessage) (string, error)
}

// Storage persists the session snapshot under a single save slot.
type Storage interface {
	SaveSession(ctx context.Context, data *state.SaveData) error
	LoadSession(ctx context.Context) (*state.SaveData, error)
	HasSession(ctx context.Context) (bool, error)
	DeleteSession(ctx context.Context) error
}

const (
	summaryThreshold = 15 // messages before the rolling summary is computed
	summaryKeepTail  = 5  // recent messages excluded from the summary
	saveTimeout      = 5 * time.Second

	transportFailureNotice = "网络连接异常，请重试。"
)

// Engine drives a single session. All exported methods are goroutine-safe.
type Engine struct {
	mu      sync.Mutex
	session *state.Session

	parser  *parser.Parser
	chatSvc ChatService
	storage Storage
	logger  *slog.Logger
}

// New creates an engine with an unstarted session.
func New(chatSvc ChatService, storage Storage, logger *slog.Logger) *Engine {
	return &Engine{
		session: state.NewSession(),
		parser:  parser.New(),
		chatSvc: chatSvc,
		storage: storage,
		logger:  logger,
	}
}

// Snapshot returns a deep copy of the current session for rendering.
func (e *Engine) Snapshot() *state.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Clone()
}

// Start resets the session to catalog defaults for the named player and
// emits the scripted welcome message.
func (e *Engine) Start(playerName string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := state.NewSession()
	s.Started = true
	s.PlayerName = playerName
	e.session = s

	e.appendSystem(prompts.WelcomeMessage())
	e.logger.Info("session started", "player", playerName)
}

// Reset clears the session to an unstarted state. Persisted save data is
// untouched.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = state.NewSession()
	e.logger.Info("session reset")
}

// FocusCharacter sets the interaction focus. An empty id clears it;
// unknown or not-yet-joined characters are a no-op.
func (e *Engine) FocusCharacter(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id == "" {
		e.session.CurrentCharacter = ""
		return
	}
	c, ok := catalog.Characters[id]
	if !ok || c.JoinDay > e.session.Day {
		return
	}
	e.session.CurrentCharacter = id
}

// FocusScene moves the player to an unlocked scene, appending a
// scene-transition marker message. Locked, unknown, or already-current
// scenes are a no-op.
func (e *Engine) FocusScene(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id == e.session.CurrentScene || !e.session.SceneUnlocked(id) {
		return
	}
	if _, ok := catalog.SceneByID(id); !ok {
		return
	}

	e.session.CurrentScene = id
	msg := state.NewMessage(chat.ChatRoleSystem, "")
	msg.Type = state.MessageSceneTransition
	msg.SceneID = id
	e.session.Messages = append(e.session.Messages, msg)
	e.session.ActiveTab = state.TabDialogue
}

// SetActiveTab stores the client's active tab.
func (e *Engine) SetActiveTab(tab state.Tab) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.ActiveTab = tab
}

// SubmitInput runs one full player turn: append the player message,
// stream the generated reply, parse and apply its stat deltas, advance
// time, and persist. A transport failure rolls the turn back except for
// the player's own message and surfaces a single system notice; the
// returned error is nil in that case because the session handled it.
func (e *Engine) SubmitInput(ctx context.Context, text string) error {
	e.mu.Lock()
	if !e.session.Started {
		e.mu.Unlock()
		return ErrNotStarted
	}
	if e.session.EndingID != "" {
		e.mu.Unlock()
		return ErrEnded
	}
	if e.session.AwaitingReply {
		e.mu.Unlock()
		return ErrBusy
	}

	e.session.Messages = append(e.session.Messages, state.NewMessage(chat.ChatRolePlayer, text))
	e.session.AwaitingReply = true
	e.session.StreamingContent = ""

	needSummary := len(e.session.Messages) > summaryThreshold && e.session.HistorySummary == ""
	snapshot := e.session.Clone()
	e.mu.Unlock()

	if needSummary {
		summary, err := e.summarize(ctx, snapshot)
		if err != nil {
			return e.failTurn(ctx, err)
		}
		e.mu.Lock()
		e.session.HistorySummary = summary
		snapshot.HistorySummary = summary
		e.mu.Unlock()
	}

	messages, err := prompts.New().WithSession(snapshot).Build()
	if err != nil {
		return e.failTurn(ctx, err)
	}

	content, err := e.streamReply(ctx, messages)
	if err != nil {
		return e.failTurn(ctx, err)
	}

	if content == "" {
		var focusedName string
		if snapshot.CurrentCharacter != "" {
			if c, ok := catalog.Characters[snapshot.CurrentCharacter]; ok {
				focusedName = c.Name
			}
		}
		content = prompts.FallbackNarration(focusedName)
	}

	result := e.parser.Parse(content)

	e.mu.Lock()
	for _, d := range result.Deltas {
		switch d.Target {
		case parser.TargetCharacter:
			e.session.ApplyCharacterDelta(d.CharacterID, d.StatKey, d.Amount)
		case parser.TargetGlobal:
			e.session.Resources.Apply(d.Resource, d.Amount)
		}
	}

	msg := state.NewMessage(chat.ChatRoleNarrator, content)
	msg.Character = e.session.CurrentCharacter
	e.session.Messages = append(e.session.Messages, msg)
	e.session.AwaitingReply = false
	e.session.StreamingContent = ""

	e.advanceTimeLocked()
	e.mu.Unlock()

	e.saveAsync()
	return nil
}

// ParseReply exposes the turn parser so clients can re-render stored
// narrator messages.
func (e *Engine) ParseReply(content string) parser.Result {
	return e.parser.Parse(content)
}

// AdvanceTime advances one period without a player turn.
func (e *Engine) AdvanceTime() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advanceTimeLocked()
}

// summarize compresses all but the newest messages into a rolling
// summary via the non-streaming completion path.
func (e *Engine) summarize(ctx context.Context, snapshot *state.Session) (string, error) {
	history := snapshot.Messages
	if len(history) > summaryKeepTail {
		history = history[:len(history)-summaryKeepTail]
	}

	messages := make([]chat.ChatMessage, 0, len(history)+1)
	messages = append(messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: prompts.SummaryInstructions,
	})
	for _, m := range history {
		if m.Content == "" {
			continue
		}
		messages = append(messages, chat.ChatMessage{Role: m.Role, Content: m.Content})
	}

	return e.chatSvc.Chat(ctx, messages)
}

// streamReply consumes the generation stream, publishing incremental
// content into the session's transient streaming field.
func (e *Engine) streamReply(ctx context.Context, messages []chat.ChatMessage) (string, error) {
	chunks, err := e.chatSvc.ChatStream(ctx, messages)
	if err != nil {
		return "", err
	}

	var content string
	for chunk := range chunks {
		if chunk.Err != nil {
			return "", chunk.Err
		}
		if chunk.Done {
			break
		}
		if chunk.Content == "" {
			continue
		}
		content += chunk.Content
		e.mu.Lock()
		e.session.StreamingContent = content
		e.mu.Unlock()
	}
	return content, nil
}

// failTurn rolls back an in-progress turn. The player's message stays in
// the log. Cancellation abandons the turn silently; any other transport
// failure appends exactly one system notice.
func (e *Engine) failTurn(ctx context.Context, cause error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.AwaitingReply = false
	e.session.StreamingContent = ""

	if errors.Is(cause, context.Canceled) || ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		e.logger.Info("turn abandoned", "error", cause)
		return cause
	}

	e.logger.Warn("turn failed, rolling back", "error", cause)
	e.appendSystem(transportFailureNotice)
	return nil
}

// appendSystem appends a plain system message. Callers hold e.mu.
func (e *Engine) appendSystem(content string) {
	e.session.Messages = append(e.session.Messages, state.NewMessage(chat.ChatRoleSystem, content))
}
