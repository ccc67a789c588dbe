package openai

import (
	"context"
	"net/http"
	"os"

	"github.com/llmc-dev/llmc/internal/utils"
	"github.com/llmc-dev/llmc/providers/ai"
	"github.com/llmc-dev/llmc/providers/observability"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"
	embeddingsEndpoint      = "/embeddings"
)

// Provider implements ai.Provider, ai.StreamProvider, and
// ai.EmbeddingProvider for OpenAI-compatible APIs.
type Provider struct {
	apiKey  string
	baseURL string
	model   string
	label   string
	client  *http.Client
	adapter modelAdapter
	log     observability.Logger
}

// NewProvider creates a provider instance for the given model. The API key
// and base URL default to the OPENAI_API_KEY and OPENAI_API_BASE_URL
// environment variables; an empty API key is allowed for local backends
// that skip authentication.
func NewProvider(model string) *Provider {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Provider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
		adapter: adapterForModel(model),
		log:     observability.Nop(),
	}
}

// WithAPIKey sets the API key for the provider.
func (provider *Provider) WithAPIKey(apiKey string) *Provider {
	provider.apiKey = apiKey
	return provider
}

// WithBaseURL sets the base URL for the API, e.g. "http://localhost:8000/v1".
func (provider *Provider) WithBaseURL(baseURL string) *Provider {
	provider.baseURL = baseURL
	return provider
}

// WithHTTPClient sets a custom HTTP client, e.g. to configure timeouts.
func (provider *Provider) WithHTTPClient(httpClient *http.Client) *Provider {
	provider.client = httpClient
	return provider
}

// WithLabel sets a human-readable label used in log output to tell multiple
// configured models apart. Defaults to the model name.
func (provider *Provider) WithLabel(label string) *Provider {
	provider.label = label
	return provider
}

// WithLogger sets the observability logger. A nil logger disables logging.
func (provider *Provider) WithLogger(log observability.Logger) *Provider {
	provider.log = observability.OrNop(log)
	return provider
}

// ModelName returns the model identifier this provider is configured to call.
func (provider *Provider) ModelName() string {
	return provider.model
}

// Label returns the configured label, falling back to the model name.
func (provider *Provider) Label() string {
	if provider.label != "" {
		return provider.label
	}
	return provider.model
}

// SendMessage implements ai.Provider with a synchronous (non-streaming)
// chat completion request.
func (provider *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	chatRequest := provider.buildWireRequest(request)

	provider.log.Debug("sending chat completion request",
		observability.String(observability.AttrLLMProvider, "openai"),
		observability.String(observability.AttrLLMModel, provider.model),
		observability.String(observability.AttrLLMLabel, provider.Label()),
		observability.Int(observability.AttrRequestMessagesCount, len(request.Messages)),
		observability.Int(observability.AttrRequestToolsCount, len(request.Tools)),
		observability.String("llm.request.preview", observability.TruncateString(utils.JSONToString(chatRequest), 200)),
	)

	timer := utils.NewTimer()
	_, response, err := utils.DoPostSync[chatCompletionResponse](ctx, provider.client, provider.baseURL+chatCompletionsEndpoint, provider.apiKey, chatRequest, provider.log)
	timer.Stop()

	if err != nil {
		return nil, ai.WrapError(ai.ErrKindClient, err, "chat completion request failed for model %q", provider.model)
	}
	if response == nil {
		return nil, ai.NewError(ai.ErrKindClient, "empty response from model %q", provider.model)
	}

	provider.log.Info("chat completion finished",
		observability.String(observability.AttrLLMModel, provider.model),
		observability.String(observability.AttrLLMLabel, provider.Label()),
		observability.Duration("llm.request.duration", timer.GetDuration()),
	)

	return responseToGeneric(*response), nil
}

// buildWireRequest maps the generic request and lets the model adapter apply
// its family-specific adjustments.
func (provider *Provider) buildWireRequest(request ai.ChatRequest) chatCompletionRequest {
	model := request.Model
	if model == "" {
		model = provider.model
	}
	chatRequest := requestToChatCompletion(request, model)
	provider.adapter.adjustRequest(&chatRequest, request)
	return chatRequest
}
