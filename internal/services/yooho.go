package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yooho-ai/trainee-engine/pkg/chat"
)

const (
	DefaultYoohoBaseURL = "https://api.yooho.ai"
	yoohoStreamPath     = "/api/v1/ai/game/chat/stream"
)

// YoohoService implements ChatService against the Yooho generation
// backend's SSE chat endpoint.
type YoohoService struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ChatService = (*YoohoService)(nil)

// NewYoohoService creates a new Yooho client. The HTTP client carries no
// overall timeout: streams are bounded by the caller's context instead.
func NewYoohoService(baseURL string, logger *slog.Logger) *YoohoService {
	if baseURL == "" {
		baseURL = DefaultYoohoBaseURL
	}
	return &YoohoService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// ChatStream starts a streaming chat completion and decodes the SSE reply
// into fragments on the returned channel.
func (s *YoohoService) ChatStream(ctx context.Context, messages []chat.ChatMessage) (<-chan chat.StreamChunk, error) {
	reqBody, err := json.Marshal(chat.ChatStreamRequest{Messages: messages, Stream: true})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+yoohoStreamPath, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	chunks := make(chan chat.StreamChunk)
	go func() {
		defer close(chunks)
		defer func() { _ = resp.Body.Close() }()

		decoder := newSSEDecoder(resp.Body)
		for {
			fragment, err := decoder.Next()
			if err == io.EOF {
				chunks <- chat.StreamChunk{Done: true}
				return
			}
			if err != nil {
				s.logger.Warn("chat stream broke", "error", err)
				chunks <- chat.StreamChunk{Err: err}
				return
			}
			select {
			case chunks <- chat.StreamChunk{Content: fragment}:
			case <-ctx.Done():
				chunks <- chat.StreamChunk{Err: ctx.Err()}
				return
			}
		}
	}()

	return chunks, nil
}

// Chat collects a full reply from the streaming endpoint. Used for
// non-interactive calls such as history summarization.
func (s *YoohoService) Chat(ctx context.Context, messages []chat.ChatMessage) (string, error) {
	start := time.Now()
	chunks, err := s.ChatStream(ctx, messages)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for chunk := range chunks {
		if chunk.Err != nil {
			return "", chunk.Err
		}
		if chunk.Done {
			break
		}
		sb.WriteString(chunk.Content)
	}

	s.logger.Debug("chat completion finished",
		"message_count", len(messages),
		"reply_length", sb.Len(),
		"duration", time.Since(start))
	return sb.String(), nil
}
