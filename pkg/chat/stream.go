package chat

// StreamChunk is one unit of a streaming chat reply. Content carries an
// incremental text fragment; Done marks clean end-of-stream; Err marks a
// transport failure before any end-of-stream sentinel.
type StreamChunk struct {
	Content string
	Done    bool
	Err     error
}
