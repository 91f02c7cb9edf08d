package chat

import "fmt"

const (
	ChatRolePlayer   = "user"      // the trainee (player)
	ChatRoleNarrator = "assistant" // generated narration and character dialogue
	ChatRoleSystem   = "system"    // engine notices, time stamps, forced events
)

// ChatMessage is a single role-tagged message in a conversation.
// This shape is defined by the generation service's chat completions API
// and is used to structure messages sent to it.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatRequest is a player turn submitted to the api.
type ChatRequest struct {
	Message string `json:"message"`
}

func (cr *ChatRequest) Validate() error {
	if cr.Message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return nil
}

// ChatStreamRequest is the payload sent to the generation service's
// streaming chat endpoint.
type ChatStreamRequest struct {
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}
