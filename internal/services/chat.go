// Package services holds clients for external collaborators: the
// text-generation service and its streaming transport.
package services

import (
	"context"

	"github.com/yooho-ai/trainee-engine/pkg/chat"
)

// ChatService defines the interface for the generation-service API.
type ChatService interface {
	// ChatStream starts a streaming chat completion. The returned channel
	// carries incremental fragments and exactly one terminal chunk:
	// Done on clean completion, Err on transport failure.
	ChatStream(ctx context.Context, messages []chat.ChatMessage) (<-chan chat.StreamChunk, error)

	// Chat collects a complete reply from the streaming endpoint.
	Chat(ctx context.Context, messages []chat.ChatMessage) (string, error)
}
