// Package ai defines the shared, provider-agnostic types and interfaces used
// by LLM provider implementations. Each provider's conversion layer maps these
// types to its own wire format, keeping the rest of the codebase decoupled
// from provider-specific details.
//
// The central interfaces are [Provider] for synchronous chat completions,
// [StreamProvider] for SSE-based streaming responses, and [EmbeddingProvider]
// for embedding endpoints. Request data flows through [ChatRequest]; complete
// responses are returned as [ChatResponse]. For real-time streaming,
// [ChatStream] yields a normalized sequence of [StreamEvent] values that ends
// with exactly one complete event carrying the final reconciled [Message].
package ai
