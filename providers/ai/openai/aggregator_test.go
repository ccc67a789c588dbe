package openai

import (
	"testing"

	"github.com/llmc-dev/llmc/providers/ai"
)

// ---- chunk builders ---------------------------------------------------------

func contentChunk(text string) *chatCompletionStreamChunk {
	return &chatCompletionStreamChunk{
		Choices: []streamChoice{{Delta: streamDelta{Content: &text}}},
	}
}

func reasoningChunk(text string) *chatCompletionStreamChunk {
	return &chatCompletionStreamChunk{
		Choices: []streamChoice{{Delta: streamDelta{ReasoningContent: &text}}},
	}
}

func toolCallChunk(parts ...streamToolCallPart) *chatCompletionStreamChunk {
	return &chatCompletionStreamChunk{
		Choices: []streamChoice{{Delta: streamDelta{ToolCalls: parts}}},
	}
}

func toolPart(index int, id, name, arguments string) streamToolCallPart {
	part := streamToolCallPart{Index: index, ID: id}
	part.Function.Name = name
	part.Function.Arguments = arguments
	return part
}

func finishChunk(reason string, parts ...streamToolCallPart) *chatCompletionStreamChunk {
	return &chatCompletionStreamChunk{
		Choices: []streamChoice{{
			Delta:        streamDelta{ToolCalls: parts},
			FinishReason: &reason,
		}},
	}
}

func usageChunk(prompt, completion int) *chatCompletionStreamChunk {
	return &chatCompletionStreamChunk{
		Usage: &chatUsage{
			PromptTokens:     prompt,
			CompletionTokens: completion,
			TotalTokens:      prompt + completion,
		},
	}
}

// ---- tests ------------------------------------------------------------------

// TestAggregator_ContentAndReasoning verifies that reasoning and content
// deltas are emitted per chunk, reasoning first, and both accumulate into the
// final message.
func TestAggregator_ContentAndReasoning(t *testing.T) {
	aggregator := NewStreamAggregator(nil)

	reasoningText := "Thin"
	contentText := "Hel"
	mixed := &chatCompletionStreamChunk{
		Choices: []streamChoice{{Delta: streamDelta{
			ReasoningContent: &reasoningText,
			Content:          &contentText,
		}}},
	}

	events := aggregator.Consume(mixed)
	if len(events) != 2 {
		t.Fatalf("expected 2 events from mixed chunk, got %d", len(events))
	}
	if events[0].Type != ai.StreamEventReasoning || events[0].Reasoning != "Thin" {
		t.Errorf("expected reasoning event first, got %+v", events[0])
	}
	if events[1].Type != ai.StreamEventContent || events[1].Content != "Hel" {
		t.Errorf("expected content event second, got %+v", events[1])
	}

	aggregator.Consume(reasoningChunk("king"))
	aggregator.Consume(contentChunk("lo"))

	complete := aggregator.Finish()
	if complete.Type != ai.StreamEventComplete {
		t.Fatalf("expected complete event, got %v", complete.Type)
	}
	if complete.Message.Reasoning != "Thinking" {
		t.Errorf("expected reasoning %q, got %q", "Thinking", complete.Message.Reasoning)
	}
	if complete.Message.Content != "Hello" {
		t.Errorf("expected content %q, got %q", "Hello", complete.Message.Content)
	}
	if complete.Message.Role != ai.RoleAssistant {
		t.Errorf("expected assistant role, got %q", complete.Message.Role)
	}
}

// TestAggregator_ToolCallFieldDeltas verifies that argument fragments are
// decoded into per-field deltas as they arrive, while raw arguments are kept
// verbatim for the final message.
func TestAggregator_ToolCallFieldDeltas(t *testing.T) {
	aggregator := NewStreamAggregator(nil)

	// First fragment announces the call and opens the arguments object.
	events := aggregator.Consume(toolCallChunk(toolPart(0, "call_1", "get_weather", `{"lo`)))
	if len(events) != 1 {
		t.Fatalf("expected only the name announcement, got %d events", len(events))
	}
	if events[0].ToolCall == nil || events[0].ToolCall.Name != "get_weather" || events[0].ToolCall.ID != "call_1" {
		t.Errorf("unexpected announcement event: %+v", events[0])
	}
	if events[0].ToolCall.Field != nil {
		t.Errorf("announcement must not carry a field delta, got %+v", events[0].ToolCall.Field)
	}

	events = aggregator.Consume(toolCallChunk(toolPart(0, "", "", `cation":"Bei`)))
	if len(events) != 1 {
		t.Fatalf("expected 1 field delta, got %d events", len(events))
	}
	field := events[0].ToolCall.Field
	if field == nil || field.Key != "location" || field.Delta != "Bei" {
		t.Errorf("expected location/Bei delta, got %+v", field)
	}
	if events[0].ToolCall.ID != "call_1" {
		t.Errorf("field delta should carry the slot's id, got %q", events[0].ToolCall.ID)
	}

	events = aggregator.Consume(toolCallChunk(toolPart(0, "", "", `jing"}`)))
	if len(events) != 1 {
		t.Fatalf("expected 1 field delta, got %d events", len(events))
	}
	field = events[0].ToolCall.Field
	if field == nil || field.Key != "location" || field.Delta != "jing" {
		t.Errorf("expected location/jing delta, got %+v", field)
	}

	complete := aggregator.Finish()
	calls := complete.Message.ToolCalls
	if len(calls) != 1 {
		t.Fatalf("expected 1 tool call in final message, got %d", len(calls))
	}
	if calls[0].ID != "call_1" || calls[0].Function.Name != "get_weather" {
		t.Errorf("unexpected final call identity: %+v", calls[0])
	}
	if calls[0].Function.Arguments != `{"location":"Beijing"}` {
		t.Errorf("raw arguments not preserved verbatim: %q", calls[0].Function.Arguments)
	}
}

// TestAggregator_NameAnnouncedOnce verifies that a repeated function name is
// absorbed without re-emitting, and that a genuinely different name is
// re-announced while the stored name stays first-writer-wins.
func TestAggregator_NameAnnouncedOnce(t *testing.T) {
	aggregator := NewStreamAggregator(nil)

	events := aggregator.Consume(toolCallChunk(toolPart(0, "call_1", "search", "")))
	if len(events) != 1 {
		t.Fatalf("expected 1 announcement, got %d", len(events))
	}

	// Same name repeated: absorbed.
	events = aggregator.Consume(toolCallChunk(toolPart(0, "", "search", "")))
	if len(events) != 0 {
		t.Fatalf("repeated name must not re-announce, got %d events", len(events))
	}

	// Different name: re-announced, but the stored name does not change.
	events = aggregator.Consume(toolCallChunk(toolPart(0, "", "lookup", "")))
	if len(events) != 1 {
		t.Fatalf("changed name should re-announce, got %d events", len(events))
	}
	if events[0].ToolCall.Name != "lookup" {
		t.Errorf("re-announcement should carry the new name, got %q", events[0].ToolCall.Name)
	}

	complete := aggregator.Finish()
	if got := complete.Message.ToolCalls[0].Function.Name; got != "search" {
		t.Errorf("stored name must stay first-writer-wins, got %q", got)
	}
}

// TestAggregator_TwoSlotsInterleaved verifies that interleaved fragments for
// two tool calls keep independent parser state and that the final message
// lists calls in insertion order.
func TestAggregator_TwoSlotsInterleaved(t *testing.T) {
	aggregator := NewStreamAggregator(nil)

	aggregator.Consume(toolCallChunk(toolPart(0, "call_a", "get_weather", `{"city":"Par`)))
	aggregator.Consume(toolCallChunk(toolPart(1, "call_b", "get_time", `{"zone":"U`)))
	aggregator.Consume(toolCallChunk(toolPart(0, "", "", `is"}`)))
	events := aggregator.Consume(toolCallChunk(toolPart(1, "", "", `TC"}`)))

	if len(events) != 1 || events[0].ToolCall.Field.Delta != "TC" {
		t.Fatalf("slot 1 parser state corrupted by slot 0 fragments: %+v", events)
	}

	complete := aggregator.Finish()
	calls := complete.Message.ToolCalls
	if len(calls) != 2 {
		t.Fatalf("expected 2 tool calls, got %d", len(calls))
	}
	if calls[0].ID != "call_a" || calls[1].ID != "call_b" {
		t.Errorf("insertion order not preserved: %q then %q", calls[0].ID, calls[1].ID)
	}
	if calls[0].Function.Arguments != `{"city":"Paris"}` {
		t.Errorf("slot 0 arguments wrong: %q", calls[0].Function.Arguments)
	}
	if calls[1].Function.Arguments != `{"zone":"UTC"}` {
		t.Errorf("slot 1 arguments wrong: %q", calls[1].Function.Arguments)
	}
}

// TestAggregator_TerminalChunkSuppression verifies that argument fragments on
// the finish_reason="tool_calls" chunk are discarded: providers resend the
// whole accumulated arguments string there, and re-feeding it would duplicate
// every field.
func TestAggregator_TerminalChunkSuppression(t *testing.T) {
	aggregator := NewStreamAggregator(nil)

	aggregator.Consume(toolCallChunk(toolPart(0, "call_1", "get_weather", `{"location":"Beijing"}`)))

	events := aggregator.Consume(finishChunk("tool_calls", toolPart(0, "", "", `{"location":"Beijing"}`)))
	if len(events) != 0 {
		t.Fatalf("terminal chunk arguments must be suppressed, got %d events", len(events))
	}

	complete := aggregator.Finish()
	if got := complete.Message.ToolCalls[0].Function.Arguments; got != `{"location":"Beijing"}` {
		t.Errorf("raw arguments duplicated by terminal chunk: %q", got)
	}
	if aggregator.FinishReason() != "tool_calls" {
		t.Errorf("finish reason not recorded, got %q", aggregator.FinishReason())
	}
}

// TestAggregator_TerminalChunkStillRecordsIdentity verifies that ids and
// names arriving on the terminal chunk are still processed; only argument
// fragments are discarded there.
func TestAggregator_TerminalChunkStillRecordsIdentity(t *testing.T) {
	aggregator := NewStreamAggregator(nil)

	aggregator.Consume(toolCallChunk(toolPart(0, "", "", `{"q":"x"}`)))

	events := aggregator.Consume(finishChunk("tool_calls", toolPart(0, "call_late", "search", `{"q":"x"}`)))
	if len(events) != 1 || events[0].ToolCall.Name != "search" {
		t.Fatalf("name on terminal chunk should still announce, got %+v", events)
	}

	complete := aggregator.Finish()
	call := complete.Message.ToolCalls[0]
	if call.ID != "call_late" || call.Function.Name != "search" {
		t.Errorf("identity from terminal chunk lost: %+v", call)
	}
	if call.Function.Arguments != `{"q":"x"}` {
		t.Errorf("arguments duplicated or lost: %q", call.Function.Arguments)
	}
}

// TestAggregator_EmptyStream verifies that finishing with no chunks consumed
// yields a single complete event with empty fields.
func TestAggregator_EmptyStream(t *testing.T) {
	aggregator := NewStreamAggregator(nil)

	complete := aggregator.Finish()
	if complete.Type != ai.StreamEventComplete {
		t.Fatalf("expected complete event, got %v", complete.Type)
	}
	if complete.Message.Content != "" || complete.Message.Reasoning != "" || len(complete.Message.ToolCalls) != 0 {
		t.Errorf("empty stream should produce an empty message, got %+v", complete.Message)
	}
}

// TestAggregator_UsageChunk verifies that a usage-only chunk (empty choices)
// produces a usage event rather than being skipped as unrecognizable.
func TestAggregator_UsageChunk(t *testing.T) {
	aggregator := NewStreamAggregator(nil)

	events := aggregator.Consume(usageChunk(10, 5))
	if len(events) != 1 {
		t.Fatalf("expected 1 usage event, got %d", len(events))
	}
	if events[0].Type != ai.StreamEventUsage {
		t.Fatalf("expected usage event, got %v", events[0].Type)
	}
	if events[0].Usage.TotalTokens != 15 {
		t.Errorf("expected 15 total tokens, got %d", events[0].Usage.TotalTokens)
	}
}

// TestAggregator_UnrecognizableChunk verifies that a chunk with no choices
// and no usage produces no events and does not fail.
func TestAggregator_UnrecognizableChunk(t *testing.T) {
	aggregator := NewStreamAggregator(nil)

	events := aggregator.Consume(&chatCompletionStreamChunk{ID: "chunk-1"})
	if len(events) != 0 {
		t.Errorf("unrecognizable chunk must produce no events, got %d", len(events))
	}

	// The stream continues normally afterwards.
	events = aggregator.Consume(contentChunk("still alive"))
	if len(events) != 1 || events[0].Content != "still alive" {
		t.Errorf("stream should continue after a skipped chunk, got %+v", events)
	}
}

// TestAggregator_ReasoningFieldSpellings verifies that both accepted
// reasoning field names feed the same accumulator.
func TestAggregator_ReasoningFieldSpellings(t *testing.T) {
	aggregator := NewStreamAggregator(nil)

	underscoreSpelling := "first "
	aggregator.Consume(&chatCompletionStreamChunk{
		Choices: []streamChoice{{Delta: streamDelta{ReasoningContent: &underscoreSpelling}}},
	})
	bareSpelling := "second"
	aggregator.Consume(&chatCompletionStreamChunk{
		Choices: []streamChoice{{Delta: streamDelta{Reasoning: &bareSpelling}}},
	})

	complete := aggregator.Finish()
	if complete.Message.Reasoning != "first second" {
		t.Errorf("expected merged reasoning, got %q", complete.Message.Reasoning)
	}
}

// TestAggregator_IDSetOnce verifies that the first non-empty id wins even if
// later fragments carry a different id for the same slot.
func TestAggregator_IDSetOnce(t *testing.T) {
	aggregator := NewStreamAggregator(nil)

	aggregator.Consume(toolCallChunk(toolPart(0, "call_first", "f", "")))
	aggregator.Consume(toolCallChunk(toolPart(0, "call_second", "", `{"a":"b"}`)))

	complete := aggregator.Finish()
	if got := complete.Message.ToolCalls[0].ID; got != "call_first" {
		t.Errorf("id must be set once, got %q", got)
	}
}
