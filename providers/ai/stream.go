package ai

import "iter"

// StreamEventType identifies the kind of delta carried by a StreamEvent.
type StreamEventType string

const (
	// StreamEventContent indicates an assistant free-text delta.
	StreamEventContent StreamEventType = "content"
	// StreamEventReasoning indicates a reasoning/thinking text delta.
	StreamEventReasoning StreamEventType = "reasoning"
	// StreamEventToolCall indicates an incremental tool call delta: either a
	// function-name announcement or a decoded argument-field fragment.
	StreamEventToolCall StreamEventType = "tool_call"
	// StreamEventUsage carries token usage metadata when the provider
	// reports it (typically just before the stream ends).
	StreamEventUsage StreamEventType = "usage"
	// StreamEventComplete carries the final reconciled assistant message.
	// It is emitted exactly once per call, always last.
	StreamEventComplete StreamEventType = "complete"
)

// FieldDelta is the newly revealed, already-unescaped portion of one argument
// field's value.
type FieldDelta struct {
	Key   string `json:"key"`
	Delta string `json:"delta"`
}

// ToolCallDelta represents an incremental update to a tool call being
// streamed. A delta carries either a Name announcement (once per tool call,
// when the provider first reveals the function name) or a decoded argument
// Field fragment, never both.
type ToolCallDelta struct {
	ID    string      `json:"id"`              // Tool call identifier, present on every delta
	Name  string      `json:"name,omitempty"`  // Function name, set only on the announcement delta
	Field *FieldDelta `json:"field,omitempty"` // Incremental argument-field text, absent on the announcement
}

// StreamEvent represents a single normalized event yielded during LLM
// response streaming. Each event carries exactly one payload, identified by
// the Type field.
type StreamEvent struct {
	Type      StreamEventType `json:"type"`
	Content   string          `json:"content,omitempty"`   // Type == StreamEventContent
	Reasoning string          `json:"reasoning,omitempty"` // Type == StreamEventReasoning
	ToolCall  *ToolCallDelta  `json:"tool_call,omitempty"` // Type == StreamEventToolCall
	Usage     *Usage          `json:"usage,omitempty"`     // Type == StreamEventUsage
	Message   *Message        `json:"message,omitempty"`   // Type == StreamEventComplete
}

// ChatStream wraps a streaming iterator over normalized events. It supports
// range-based iteration for real-time delta processing and a convenience
// Collect method for callers who want only the final response.
//
// Important: callers must consume the stream, either by iterating with Iter()
// (including breaking out of the loop early) or by calling Collect(). The
// underlying provider may hold open resources (such as an HTTP response body)
// that are only released when the iterator completes or is abandoned via a
// loop break. Constructing a ChatStream and never iterating it will leak
// those resources.
type ChatStream struct {
	iterator iter.Seq2[StreamEvent, error]
}

// NewChatStream creates a ChatStream from a raw streaming iterator. The
// iterator is expected to yield StreamEvent values (with nil error) for
// normal deltas, a final complete event, and may yield a non-nil error to
// signal a mid-stream failure.
func NewChatStream(iterator iter.Seq2[StreamEvent, error]) *ChatStream {
	return &ChatStream{iterator: iterator}
}

// NewSingleMessageStream wraps a synchronous ChatResponse as a short stream:
// its content, reasoning, and tool calls are replayed as individual events
// followed by the complete event. This is the fallback for providers without
// streaming support.
func NewSingleMessageStream(response *ChatResponse) *ChatStream {
	iteratorFunc := func(yield func(StreamEvent, error) bool) {
		if response.Content != "" {
			if !yield(StreamEvent{Type: StreamEventContent, Content: response.Content}, nil) {
				return
			}
		}

		if response.Reasoning != "" {
			if !yield(StreamEvent{Type: StreamEventReasoning, Reasoning: response.Reasoning}, nil) {
				return
			}
		}

		for _, toolCall := range response.ToolCalls {
			if !yield(StreamEvent{
				Type:     StreamEventToolCall,
				ToolCall: &ToolCallDelta{ID: toolCall.ID, Name: toolCall.Function.Name},
			}, nil) {
				return
			}
		}

		if response.Usage != nil {
			if !yield(StreamEvent{Type: StreamEventUsage, Usage: response.Usage}, nil) {
				return
			}
		}

		message := response.Message()
		yield(StreamEvent{Type: StreamEventComplete, Message: &message}, nil)
	}

	return NewChatStream(iteratorFunc)
}

// Iter returns the underlying iterator for use with range-over-func loops.
//
// Example:
//
//	for event, err := range stream.Iter() {
//	    if err != nil { handle error }
//	    fmt.Print(event.Content)
//	}
func (stream *ChatStream) Iter() iter.Seq2[StreamEvent, error] {
	return stream.iterator
}

// Collect consumes the entire stream and returns the final response built
// from the complete event, together with any usage metadata observed on the
// way. This is a convenience for callers who want the whole response but
// still benefit from streaming transport (lower time-to-first-byte).
// A mid-stream error terminates collection and returns what was accumulated
// so far along with the error.
func (stream *ChatStream) Collect() (*ChatResponse, error) {
	collected := &ChatResponse{}

	for event, err := range stream.iterator {
		if err != nil {
			return collected, err
		}

		switch event.Type {
		case StreamEventContent:
			collected.Content += event.Content

		case StreamEventReasoning:
			collected.Reasoning += event.Reasoning

		case StreamEventUsage:
			collected.Usage = event.Usage

		case StreamEventComplete:
			if event.Message != nil {
				// The reconciled message supersedes what was accumulated
				// incrementally; it also carries the raw tool-call arguments
				// that per-field deltas cannot reconstruct.
				collected.Content = event.Message.Content
				collected.Reasoning = event.Message.Reasoning
				collected.ToolCalls = event.Message.ToolCalls
			}

		case StreamEventToolCall:
			// Tool-call deltas exist for real-time display; the complete
			// event carries the authoritative accumulated calls.
		}
	}

	return collected, nil
}
