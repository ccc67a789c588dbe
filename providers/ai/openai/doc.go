// Package openai implements the ai.Provider interfaces for OpenAI-compatible
// chat completion APIs, including vLLM and GLM deployments that follow the
// same wire format.
//
// The package supports synchronous requests ([Provider.SendMessage]),
// SSE streaming with normalized delta events ([Provider.StreamMessage]),
// and embeddings ([Provider.EmbedTexts], [Provider.EmbedBlocks]).
// Streaming responses pass through a [StreamAggregator] that reconciles
// per-chunk deltas (content, reasoning, incremental tool calls) into
// ordered events and a final assistant message.
package openai
