package services

import (
	"context"
	"sync"

	"github.com/yooho-ai/trainee-engine/pkg/chat"
)

// MockChatService is a scriptable ChatService for testing.
type MockChatService struct {
	ChatStreamFunc func(ctx context.Context, messages []chat.ChatMessage) (<-chan chat.StreamChunk, error)
	ChatFunc       func(ctx context.Context, messages []chat.ChatMessage) (string, error)

	// StreamReply is the canned reply streamed when ChatStreamFunc is
	// unset; it is split into small chunks to exercise reassembly.
	StreamReply string

	// Track calls for testing
	ChatStreamCalls [][]chat.ChatMessage
	ChatCalls       [][]chat.ChatMessage

	mu sync.Mutex
}

var _ ChatService = (*MockChatService)(nil)

// NewMockChatService creates a mock with empty defaults.
func NewMockChatService() *MockChatService {
	return &MockChatService{}
}

func (m *MockChatService) ChatStream(ctx context.Context, messages []chat.ChatMessage) (<-chan chat.StreamChunk, error) {
	m.mu.Lock()
	m.ChatStreamCalls = append(m.ChatStreamCalls, messages)
	fn := m.ChatStreamFunc
	reply := m.StreamReply
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}

	chunks := make(chan chat.StreamChunk)
	go func() {
		defer close(chunks)
		for _, r := range splitRunes(reply, 5) {
			chunks <- chat.StreamChunk{Content: r}
		}
		chunks <- chat.StreamChunk{Done: true}
	}()
	return chunks, nil
}

func (m *MockChatService) Chat(ctx context.Context, messages []chat.ChatMessage) (string, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, messages)
	fn := m.ChatFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}
	return "", nil
}

// splitRunes cuts s into rune-aligned pieces of at most n runes.
func splitRunes(s string, n int) []string {
	var parts []string
	runes := []rune(s)
	for len(runes) > 0 {
		k := n
		if k > len(runes) {
			k = len(runes)
		}
		parts = append(parts, string(runes[:k]))
		runes = runes[k:]
	}
	return parts
}
