package openai

import (
	"context"
	"io"

	"github.com/llmc-dev/llmc/internal/utils"
	"github.com/llmc-dev/llmc/providers/ai"
	"github.com/llmc-dev/llmc/providers/observability"
)

// StreamMessage implements ai.StreamProvider for the chat completions
// endpoint. It sends a request with stream=true and returns a ChatStream
// that yields normalized events as SSE chunks arrive: per-delta reasoning
// and content text, incremental tool-call updates with per-field decoded
// argument deltas, usage metadata, and a final complete event carrying the
// reconciled assistant message.
//
// Pre-stream failures (auth, bad request, network) are returned directly.
// Mid-stream failures surface through the iterator: a malformed chunk is
// skipped with a diagnostic, anything unexpected terminates the stream with
// a single stream_parsing error.
func (provider *Provider) StreamMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatStream, error) {
	chatRequest := provider.buildWireRequest(request)
	chatRequest.Stream = utils.Ptr(true)
	chatRequest.StreamOptions = &streamOptions{IncludeUsage: true}

	provider.log.Debug("sending streaming chat completion request",
		observability.String(observability.AttrLLMProvider, "openai"),
		observability.String(observability.AttrLLMModel, provider.model),
		observability.String(observability.AttrLLMLabel, provider.Label()),
		observability.Int(observability.AttrRequestMessagesCount, len(request.Messages)),
		observability.Int(observability.AttrRequestToolsCount, len(request.Tools)),
	)

	streamURL := provider.baseURL + chatCompletionsEndpoint
	httpResponse, err := utils.DoPostStream(ctx, provider.client, streamURL, provider.apiKey, chatRequest, provider.log)
	if err != nil {
		return nil, ai.WrapError(ai.ErrKindClient, err, "streaming request failed for model %q", provider.model)
	}

	sseScanner := utils.NewSSEScanner(httpResponse.Body)
	aggregator := NewStreamAggregator(provider.log)

	// processPayload decodes one SSE payload into events. Undecodable chunks
	// are skipped with a diagnostic (nil events, nil error); anything that
	// panics while decoding becomes a terminal stream_parsing error. The
	// recover scope covers only decoding, so a panic raised by the consumer
	// inside yield propagates normally.
	processPayload := func(payload string) (events []ai.StreamEvent, err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				events = nil
				err = ai.NewError(ai.ErrKindStreamParsing, "panic while processing stream chunk: %v", recovered)
			}
		}()

		chunk, parseErr := unmarshalStreamChunk(payload)
		if parseErr != nil {
			malformed := ai.WrapError(ai.ErrKindMalformedChunk, parseErr, "undecodable stream chunk")
			provider.log.Warn("skipping malformed stream chunk",
				observability.Error(malformed),
				observability.String("chunk.payload", observability.TruncateString(payload, 200)),
			)
			return nil, nil
		}

		return aggregator.Consume(chunk), nil
	}

	iteratorFunc := func(yield func(ai.StreamEvent, error) bool) {
		defer utils.CloseWithLog(httpResponse.Body)

		chunkCount := 0
		eventCount := 0

		for {
			if ctx.Err() != nil {
				yield(ai.StreamEvent{}, ctx.Err())
				return
			}

			payload, sseErr := sseScanner.Next()
			if sseErr == io.EOF {
				break
			}
			if sseErr != nil {
				yield(ai.StreamEvent{}, ai.WrapError(ai.ErrKindStreamParsing, sseErr, "SSE read failed"))
				return
			}

			chunkCount++
			events, processErr := processPayload(payload)
			if processErr != nil {
				// Events already yielded for prior chunks stand; the failing
				// chunk contributes nothing but the terminal error.
				provider.log.Error("stream terminated", observability.Error(processErr))
				yield(ai.StreamEvent{}, processErr)
				return
			}

			for _, event := range events {
				eventCount++
				if !yield(event, nil) {
					return
				}
			}
		}

		eventCount++
		if !yield(aggregator.Finish(), nil) {
			return
		}

		provider.log.Debug("stream finished",
			observability.String(observability.AttrLLMModel, provider.model),
			observability.Int(observability.AttrStreamChunkCount, chunkCount),
			observability.Int(observability.AttrStreamEventCount, eventCount),
		)
	}

	return ai.NewChatStream(iteratorFunc), nil
}
