package openai

import (
	"strings"

	"github.com/llmc-dev/llmc/core/incjson"
	"github.com/llmc-dev/llmc/providers/ai"
	"github.com/llmc-dev/llmc/providers/observability"
)

// toolCallState accumulates one tool call being streamed across chunks. The
// provider addresses calls by a slot index; the id and name arrive on the
// first fragment for the slot, argument text arrives in later fragments.
type toolCallState struct {
	id            string
	name          string
	nameAnnounced bool
	rawArguments  strings.Builder
	parser        *incjson.Parser
}

// StreamAggregator folds raw chat-completion chunks into normalized
// ai.StreamEvent values and a final reconciled assistant message.
//
// One aggregator serves exactly one streaming call: feed every chunk to
// [StreamAggregator.Consume] in arrival order, then call
// [StreamAggregator.Finish] exactly once after the provider signals the end
// of the stream. The aggregator is single-threaded and is not reused across
// calls.
type StreamAggregator struct {
	content   strings.Builder
	reasoning strings.Builder

	// Tool call slots, keyed by the provider's slot index. slotOrder keeps
	// insertion order so the final message lists calls as the model opened
	// them, regardless of which slot received the last fragment.
	slots     map[int]*toolCallState
	slotOrder []int

	finishReason string
	finished     bool

	log observability.Logger
}

// NewStreamAggregator creates an aggregator for a single streaming call.
func NewStreamAggregator(log observability.Logger) *StreamAggregator {
	return &StreamAggregator{
		slots: make(map[int]*toolCallState),
		log:   observability.OrNop(log),
	}
}

// Consume processes one chunk and returns the normalized events it produced,
// in order: reasoning delta, then content delta, then tool-call deltas. A
// chunk with no recognizable payload is skipped with a diagnostic and
// produces no events; that is not an error.
func (aggregator *StreamAggregator) Consume(chunk *chatCompletionStreamChunk) []ai.StreamEvent {
	var events []ai.StreamEvent

	// Usage arrives on a dedicated final chunk with empty choices when
	// stream_options.include_usage is set.
	if chunk.Usage != nil {
		events = append(events, ai.StreamEvent{
			Type: ai.StreamEventUsage,
			Usage: &ai.Usage{
				PromptTokens:     chunk.Usage.PromptTokens,
				CompletionTokens: chunk.Usage.CompletionTokens,
				TotalTokens:      chunk.Usage.TotalTokens,
			},
		})
	}

	if len(chunk.Choices) == 0 {
		if chunk.Usage == nil {
			aggregator.log.Warn("skipping chunk with no choices and no usage",
				observability.String("chunk.id", chunk.ID),
			)
		}
		return events
	}

	choice := chunk.Choices[0]
	delta := choice.Delta

	if reasoningText := delta.reasoningText(); reasoningText != "" {
		aggregator.reasoning.WriteString(reasoningText)
		events = append(events, ai.StreamEvent{
			Type:      ai.StreamEventReasoning,
			Reasoning: reasoningText,
		})
	}

	if delta.Content != nil && *delta.Content != "" {
		aggregator.content.WriteString(*delta.Content)
		events = append(events, ai.StreamEvent{
			Type:    ai.StreamEventContent,
			Content: *delta.Content,
		})
	}

	// Providers are known to resend the entire accumulated arguments string
	// on the terminal tool_calls chunk; feeding it again would duplicate
	// every field. Argument fragments on that chunk are discarded, while ids
	// and names are still recorded.
	suppressArguments := false
	if choice.FinishReason != nil && *choice.FinishReason != "" {
		aggregator.finishReason = *choice.FinishReason
		suppressArguments = aggregator.finishReason == "tool_calls"
	}

	for _, part := range delta.ToolCalls {
		events = append(events, aggregator.consumeToolCallPart(part, suppressArguments)...)
	}

	return events
}

// consumeToolCallPart folds one tool-call fragment into its slot and returns
// the events it produced: at most one name announcement plus one event per
// decoded argument-field delta.
func (aggregator *StreamAggregator) consumeToolCallPart(part streamToolCallPart, suppressArguments bool) []ai.StreamEvent {
	slot, seen := aggregator.slots[part.Index]
	if !seen {
		slot = &toolCallState{parser: incjson.NewParser()}
		aggregator.slots[part.Index] = slot
		aggregator.slotOrder = append(aggregator.slotOrder, part.Index)
	}

	if slot.id == "" && part.ID != "" {
		slot.id = part.ID
	}

	var events []ai.StreamEvent

	if partName := part.Function.Name; partName != "" {
		changed := slot.name != "" && slot.name != partName
		if slot.name == "" {
			slot.name = partName
		}
		// Announce the name once per slot. Providers repeat the name on later
		// fragments; repeats are absorbed unless the name actually changed.
		if !slot.nameAnnounced || changed {
			slot.nameAnnounced = true
			events = append(events, ai.StreamEvent{
				Type:     ai.StreamEventToolCall,
				ToolCall: &ai.ToolCallDelta{ID: slot.id, Name: partName},
			})
		}
	}

	if arguments := part.Function.Arguments; arguments != "" && !suppressArguments {
		slot.rawArguments.WriteString(arguments)
		for _, fieldDelta := range slot.parser.Feed(arguments) {
			field := ai.FieldDelta{Key: fieldDelta.Key, Delta: fieldDelta.Delta}
			events = append(events, ai.StreamEvent{
				Type:     ai.StreamEventToolCall,
				ToolCall: &ai.ToolCallDelta{ID: slot.id, Field: &field},
			})
		}
	}

	return events
}

// Finish builds the final reconciled assistant message from everything
// accumulated so far and returns the complete event. It must be called
// exactly once, after the last chunk; the aggregator is not reusable
// afterwards.
func (aggregator *StreamAggregator) Finish() ai.StreamEvent {
	if aggregator.finished {
		aggregator.log.Error("stream aggregator finished twice")
	}
	aggregator.finished = true

	message := &ai.Message{
		Role:      ai.RoleAssistant,
		Content:   aggregator.content.String(),
		Reasoning: aggregator.reasoning.String(),
	}

	for _, index := range aggregator.slotOrder {
		slot := aggregator.slots[index]
		message.ToolCalls = append(message.ToolCalls, ai.ToolCall{
			ID:   slot.id,
			Type: "function",
			Function: ai.ToolCallFunction{
				Name:      slot.name,
				Arguments: slot.rawArguments.String(),
			},
		})
	}

	return ai.StreamEvent{Type: ai.StreamEventComplete, Message: message}
}

// FinishReason returns the last finish reason observed on the stream, or ""
// if none arrived.
func (aggregator *StreamAggregator) FinishReason() string {
	return aggregator.finishReason
}
