package openai

import (
	"strings"

	"github.com/llmc-dev/llmc/internal/utils"
	"github.com/llmc-dev/llmc/providers/ai"
)

// modelAdapter tweaks the wire request for model families that deviate from
// the plain OpenAI chat-completions contract. The adapter is selected once at
// provider construction from the model name.
type modelAdapter interface {
	// adjustRequest mutates the wire request in place after the generic
	// mapping has run.
	adjustRequest(wireRequest *chatCompletionRequest, request ai.ChatRequest)
}

// adapterForModel picks the adapter for a model name. GLM deployments need
// chat-template switches for thinking mode; everything else gets the plain
// OpenAI-compatible behavior.
func adapterForModel(model string) modelAdapter {
	if strings.Contains(strings.ToLower(model), "glm") {
		return glmAdapter{}
	}
	return baseAdapter{}
}

// baseAdapter is the no-op adapter for plain OpenAI-compatible backends.
type baseAdapter struct{}

func (baseAdapter) adjustRequest(*chatCompletionRequest, ai.ChatRequest) {}

// glmAdapter adapts requests for GLM models served behind vLLM. Thinking mode
// is controlled through chat_template_kwargs, and parallel tool calls are
// always enabled because the GLM chat template emits multiple tool calls in
// one turn.
type glmAdapter struct{}

func (glmAdapter) adjustRequest(wireRequest *chatCompletionRequest, request ai.ChatRequest) {
	if len(wireRequest.Tools) > 0 {
		wireRequest.ParallelToolCalls = utils.Ptr(true)
	}

	if thinking := request.Thinking; thinking != nil {
		wireRequest.ChatTemplateKwargs = &chatTemplateKwargs{
			EnableThinking: utils.Ptr(thinking.Enable),
		}
		if thinking.ClearHistory {
			wireRequest.ChatTemplateKwargs.ClearThinking = utils.Ptr(true)
		}
	}
}
