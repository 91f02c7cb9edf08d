package prompts

import (
	"fmt"

	"github.com/yooho-ai/trainee-engine/pkg/chat"
	"github.com/yooho-ai/trainee-engine/pkg/state"
)

// DefaultHistoryLimit is the recent-message window included in a prompt.
const DefaultHistoryLimit = 10

// Builder constructs the message array for one generation request using a
// fluent interface. The player's message is expected to already be in the
// session log; the builder only windows history.
type Builder struct {
	session      *state.Session
	historyLimit int
}

// New creates a builder with default settings.
func New() *Builder {
	return &Builder{historyLimit: DefaultHistoryLimit}
}

// WithSession sets the session snapshot to build from.
func (b *Builder) WithSession(s *state.Session) *Builder {
	b.session = s
	return b
}

// WithHistoryLimit sets the recent-message window size.
func (b *Builder) WithHistoryLimit(limit int) *Builder {
	b.historyLimit = limit
	return b
}

// Build returns the ordered message list: system prompt, optional rolling
// summary, then the recent message window.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if b.session == nil {
		return nil, fmt.Errorf("session is required")
	}

	messages := make([]chat.ChatMessage, 0, b.historyLimit+2)
	messages = append(messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: BuildSystemPrompt(b.session),
	})

	if b.session.HistorySummary != "" {
		messages = append(messages, chat.ChatMessage{
			Role:    chat.ChatRoleSystem,
			Content: "历史摘要: " + b.session.HistorySummary,
		})
	}

	history := b.session.Messages
	if len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}
	for _, m := range history {
		if m.Content == "" {
			continue // scene/day marker cards carry no text
		}
		messages = append(messages, chat.ChatMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	return messages, nil
}
