package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/llmc-dev/llmc/core/config"
	"github.com/llmc-dev/llmc/providers/ai"
	"github.com/llmc-dev/llmc/providers/ai/openai"
	"github.com/llmc-dev/llmc/providers/observability"
)

// embeddingRoute is the conventional call name for embedding models. Embed
// methods prefer it when the registry defines it, falling back to the
// default route otherwise.
const embeddingRoute = "embedding"

// Client routes calls to configured providers by call name.
type Client struct {
	providers   map[string]ai.Provider
	order       []string
	defaultName string
	log         observability.Logger
}

// New builds a Client from a model registry. Every registry entry becomes an
// OpenAI-compatible provider addressed by its call name; the first entry is
// the default route. A nil logger disables logging.
func New(cfg *config.Config, log observability.Logger) *Client {
	log = observability.OrNop(log)

	routingClient := &Client{
		providers:   make(map[string]ai.Provider, len(cfg.Models)),
		defaultName: cfg.DefaultCallName(),
		log:         log,
	}

	for _, model := range cfg.Models {
		provider := openai.NewProvider(model.Name).
			WithBaseURL(model.APIBase).
			WithAPIKey(model.APIKey).
			WithLabel(model.Label).
			WithLogger(log)
		routingClient.providers[model.CallName] = provider
		routingClient.order = append(routingClient.order, model.CallName)
	}

	log.Info("client initialized",
		observability.Int("models", len(routingClient.order)),
		observability.String(observability.AttrLLMCallName, routingClient.defaultName),
	)

	return routingClient
}

// NewFromProviders builds a Client over prebuilt providers, keyed by call
// name. Used when providers are constructed elsewhere (tests, custom
// transports). Iteration order of callNames decides the default: the first
// name in the slice becomes the default route.
func NewFromProviders(providers map[string]ai.Provider, callNames []string, log observability.Logger) *Client {
	defaultName := ""
	if len(callNames) > 0 {
		defaultName = callNames[0]
	}
	return &Client{
		providers:   providers,
		order:       callNames,
		defaultName: defaultName,
		log:         observability.OrNop(log),
	}
}

// CallNames returns the configured call names in registry order.
func (routingClient *Client) CallNames() []string {
	return routingClient.order
}

// provider resolves a call name to its provider. An empty name means the
// default route.
func (routingClient *Client) provider(callName string) (ai.Provider, error) {
	if callName == "" {
		callName = routingClient.defaultName
	}
	provider, ok := routingClient.providers[callName]
	if !ok {
		return nil, ai.NewError(ai.ErrKindModelNotFound, "unknown model call name: %q", callName)
	}
	return provider, nil
}

// embeddingProvider resolves the provider for embedding calls: an explicit
// call name wins, then the "embedding" route when configured, then the
// default route. The resolved provider must support embeddings.
func (routingClient *Client) embeddingProvider(callName string) (ai.EmbeddingProvider, error) {
	if callName == "" {
		if _, ok := routingClient.providers[embeddingRoute]; ok {
			callName = embeddingRoute
		}
	}
	provider, err := routingClient.provider(callName)
	if err != nil {
		return nil, err
	}
	embedder, ok := provider.(ai.EmbeddingProvider)
	if !ok {
		return nil, ai.NewError(ai.ErrKindClient, "model %q does not support embeddings", provider.ModelName())
	}
	return embedder, nil
}

// Chat sends a conversation to the routed model and returns the assistant's
// text content.
func (routingClient *Client) Chat(ctx context.Context, messages []ai.Message, options ...CallOption) (string, error) {
	settings := applyOptions(options)

	provider, err := routingClient.provider(settings.callName)
	if err != nil {
		return "", err
	}

	requestID := uuid.NewString()
	routingClient.log.Debug("chat request",
		observability.String(observability.AttrRequestID, requestID),
		observability.String(observability.AttrLLMModel, provider.ModelName()),
		observability.Int(observability.AttrRequestMessagesCount, len(messages)),
	)

	response, err := provider.SendMessage(ctx, settings.buildRequest(messages, nil))
	if err != nil {
		routingClient.log.Error("chat request failed",
			observability.String(observability.AttrRequestID, requestID),
			observability.Error(err),
		)
		return "", err
	}

	return response.Content, nil
}

// Stream sends a conversation and returns a stream of normalized events.
// Providers without streaming support fall back to a single-message stream
// built from the synchronous response.
func (routingClient *Client) Stream(ctx context.Context, messages []ai.Message, options ...CallOption) (*ai.ChatStream, error) {
	return routingClient.stream(ctx, messages, nil, options)
}

// StreamWithTools streams a conversation with tool definitions attached.
// Tool-call progress arrives as incremental events: a name announcement per
// call followed by decoded argument-field deltas.
func (routingClient *Client) StreamWithTools(ctx context.Context, messages []ai.Message, tools []ai.ToolDescription, options ...CallOption) (*ai.ChatStream, error) {
	return routingClient.stream(ctx, messages, tools, options)
}

func (routingClient *Client) stream(ctx context.Context, messages []ai.Message, tools []ai.ToolDescription, options []CallOption) (*ai.ChatStream, error) {
	settings := applyOptions(options)

	provider, err := routingClient.provider(settings.callName)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	routingClient.log.Debug("stream request",
		observability.String(observability.AttrRequestID, requestID),
		observability.String(observability.AttrLLMModel, provider.ModelName()),
		observability.Int(observability.AttrRequestMessagesCount, len(messages)),
		observability.Int(observability.AttrRequestToolsCount, len(tools)),
	)

	request := settings.buildRequest(messages, tools)

	if streamProvider, ok := provider.(ai.StreamProvider); ok {
		return streamProvider.StreamMessage(ctx, request)
	}

	// Fallback: replay the synchronous response as a short stream.
	response, err := provider.SendMessage(ctx, request)
	if err != nil {
		return nil, err
	}
	return ai.NewSingleMessageStream(response), nil
}

// EmbedText embeds a single text and returns its vector.
func (routingClient *Client) EmbedText(ctx context.Context, text string, options ...CallOption) ([]float64, error) {
	vectors, err := routingClient.EmbedTextBatch(ctx, []string{text}, options...)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTextBatch embeds multiple texts in one request, returning vectors in
// input order.
func (routingClient *Client) EmbedTextBatch(ctx context.Context, texts []string, options ...CallOption) ([][]float64, error) {
	settings := applyOptions(options)

	embedder, err := routingClient.embeddingProvider(settings.callName)
	if err != nil {
		return nil, err
	}
	return embedder.EmbedTexts(ctx, texts)
}

// EmbedMultimodal embeds one multimodal input (text and image blocks) into a
// single fused vector.
func (routingClient *Client) EmbedMultimodal(ctx context.Context, blocks []ai.ContentBlock, options ...CallOption) ([]float64, error) {
	settings := applyOptions(options)

	embedder, err := routingClient.embeddingProvider(settings.callName)
	if err != nil {
		return nil, err
	}
	return embedder.EmbedBlocks(ctx, blocks)
}
