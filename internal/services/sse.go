package services

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	ssePrefix    = "data: "
	doneSentinel = "[DONE]"

	// sseMaxLineSize bounds a single protocol line; generation fragments
	// are small but system keep-alives could pad lines.
	sseMaxLineSize = 1 << 20
)

// streamEnvelope is the JSON payload of one SSE data line. Only the
// incremental text segment is extracted.
type streamEnvelope struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (env *streamEnvelope) content() string {
	if len(env.Choices) == 0 {
		return ""
	}
	return env.Choices[0].Delta.Content
}

// sseDecoder reassembles a chunked text/event-stream into text fragments.
// Chunk boundaries do not align with line boundaries, so undelivered
// partial lines are buffered across reads and a line is only interpreted
// once complete; a trailing partial line at physical end-of-stream gets
// one final best-effort interpretation. Non-conforming lines (comments,
// keep-alives, malformed JSON) are skipped silently.
type sseDecoder struct {
	scanner *bufio.Scanner
	done    bool
}

func newSSEDecoder(r io.Reader) *sseDecoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), sseMaxLineSize)
	return &sseDecoder{scanner: scanner}
}

// Next returns the next non-empty text fragment. It returns io.EOF on
// clean completion (the [DONE] sentinel or physical end-of-stream) and a
// wrapped transport error if the underlying read fails first. After the
// sentinel any remaining buffered bytes are discarded.
func (d *sseDecoder) Next() (string, error) {
	if d.done {
		return "", io.EOF
	}

	for d.scanner.Scan() {
		line := strings.TrimSpace(d.scanner.Text())
		if line == "" || !strings.HasPrefix(line, ssePrefix) {
			continue
		}

		payload := strings.TrimPrefix(line, ssePrefix)
		if payload == doneSentinel {
			d.done = true
			return "", io.EOF
		}

		var env streamEnvelope
		if err := json.Unmarshal([]byte(payload), &env); err != nil {
			continue
		}
		if content := env.content(); content != "" {
			return content, nil
		}
	}

	d.done = true
	if err := d.scanner.Err(); err != nil {
		return "", fmt.Errorf("stream read failed: %w", err)
	}
	return "", io.EOF
}
