package ai

import "context"

// Provider is the core interface that every LLM provider implementation must
// satisfy: authentication, message dispatch, and response interpretation for
// a single synchronous request. Use [StreamProvider] in addition when the
// provider supports streaming.
type Provider interface {
	// SendMessage sends a chat request to the provider and returns the
	// completed response. Returns an error if the provider call fails,
	// the context is cancelled, or the response cannot be decoded.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// ModelName returns the model identifier this provider instance is
	// configured to call.
	ModelName() string
}

// StreamProvider is an optional interface that providers can implement to
// support streaming (SSE-based) responses. Callers detect streaming support
// via type assertion: provider.(StreamProvider). Pre-stream errors (auth, bad
// request, network) are returned as a normal error; mid-stream errors are
// yielded through the returned stream's iterator.
type StreamProvider interface {
	Provider
	StreamMessage(ctx context.Context, request ChatRequest) (*ChatStream, error)
}

// EmbeddingProvider is an optional interface for providers that expose an
// embeddings endpoint.
type EmbeddingProvider interface {
	// EmbedTexts embeds plain-text inputs, returning one vector per input,
	// in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)

	// EmbedBlocks embeds a single multimodal input composed of text and
	// image blocks, returning its vector.
	EmbedBlocks(ctx context.Context, blocks []ContentBlock) ([]float64, error)
}
