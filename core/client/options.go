package client

import "github.com/llmc-dev/llmc/providers/ai"

// callSettings collects the per-call adjustments applied by CallOption
// values. Zero values mean "use the default".
type callSettings struct {
	callName       string
	thinking       *ai.ThinkingConfig
	maxTokens      int
	responseFormat *ai.ResponseFormat
	workers        int
}

// CallOption adjusts a single call.
type CallOption func(*callSettings)

// WithModel routes the call to the model registered under callName instead
// of the default route.
func WithModel(callName string) CallOption {
	return func(settings *callSettings) {
		settings.callName = callName
	}
}

// WithThinking enables or disables the model's reasoning mode for this call.
// clearHistory asks the backend to drop reasoning from earlier turns.
func WithThinking(enable bool, clearHistory bool) CallOption {
	return func(settings *callSettings) {
		settings.thinking = &ai.ThinkingConfig{Enable: enable, ClearHistory: clearHistory}
	}
}

// WithMaxTokens caps the response length for this call.
func WithMaxTokens(maxTokens int) CallOption {
	return func(settings *callSettings) {
		settings.maxTokens = maxTokens
	}
}

// WithResponseFormat requests structured output for this call.
func WithResponseFormat(format *ai.ResponseFormat) CallOption {
	return func(settings *callSettings) {
		settings.responseFormat = format
	}
}

// WithWorkers sets the concurrency bound for batch calls. Ignored by
// single-item calls.
func WithWorkers(workers int) CallOption {
	return func(settings *callSettings) {
		settings.workers = workers
	}
}

func applyOptions(options []CallOption) callSettings {
	var settings callSettings
	for _, option := range options {
		option(&settings)
	}
	return settings
}

// buildRequest assembles the provider request from messages, optional tools,
// and the call settings.
func (settings callSettings) buildRequest(messages []ai.Message, tools []ai.ToolDescription) ai.ChatRequest {
	request := ai.ChatRequest{
		Messages:       messages,
		Tools:          tools,
		Thinking:       settings.thinking,
		ResponseFormat: settings.responseFormat,
	}
	if settings.maxTokens > 0 {
		request.GenerationConfig = &ai.GenerationConfig{MaxTokens: settings.maxTokens}
	}
	return request
}
