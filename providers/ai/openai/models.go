package openai

import (
	"encoding/json"

	"github.com/llmc-dev/llmc/internal/utils"
	"github.com/llmc-dev/llmc/providers/ai"
)

/*
	CHAT COMPLETIONS API - INPUT
*/

// chatCompletionRequest represents the /v1/chat/completions request format.
type chatCompletionRequest struct {
	Model         string         `json:"model"`
	Messages      []chatMessage  `json:"messages"`
	Temperature   *float32       `json:"temperature,omitempty"`
	TopP          *float32       `json:"top_p,omitempty"`
	MaxTokens     *int           `json:"max_tokens,omitempty"`
	Stream        *bool          `json:"stream,omitempty"`
	StreamOptions *streamOptions `json:"stream_options,omitempty"`

	// Tool calling
	Tools             []chatTool `json:"tools,omitempty"`
	ToolChoice        any        `json:"tool_choice,omitempty"` // "auto", "none", "required", or object
	ParallelToolCalls *bool      `json:"parallel_tool_calls,omitempty"`

	// Response format (vLLM-style structured outputs)
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`

	// ChatTemplateKwargs passes template-level switches to backends that
	// support them (vLLM, GLM). Standard OpenAI endpoints ignore it.
	ChatTemplateKwargs *chatTemplateKwargs `json:"chat_template_kwargs,omitempty"`
}

// chatTemplateKwargs carries GLM/vLLM chat-template switches.
type chatTemplateKwargs struct {
	EnableThinking *bool `json:"enable_thinking,omitempty"`
	ClearThinking  *bool `json:"clear_thinking,omitempty"`
}

type chatMessage struct {
	Role       string         `json:"role"`              // system, user, assistant, tool
	Content    string         `json:"content,omitempty"`
	Name       string         `json:"name,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"` // For role=tool
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`   // For role=assistant
	Reasoning  string         `json:"reasoning_content,omitempty"`
}

type chatTool struct {
	Type     string       `json:"type"` // "function"
	Function chatFunction `json:"function"`
}

type chatFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

type chatToolCall struct {
	ID       string               `json:"id"`
	Type     string               `json:"type"` // "function"
	Function chatToolCallFunction `json:"function"`
}

type chatToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string
}

type chatResponseFormat struct {
	Type       string                `json:"type"` // "text", "json_object", "json_schema"
	JSONSchema *chatJSONSchemaFormat `json:"json_schema,omitempty"`
}

type chatJSONSchemaFormat struct {
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
	Strict bool            `json:"strict,omitempty"`
}

// requestToChatCompletion maps the generic chat request onto the wire format
// for the given model. Zero-valued generation settings are treated as unset
// and omitted from the body.
func requestToChatCompletion(request ai.ChatRequest, model string) chatCompletionRequest {
	chatRequest := chatCompletionRequest{
		Model:    model,
		Messages: messagesToWire(request.Messages),
	}

	if generation := request.GenerationConfig; generation != nil {
		if generation.Temperature != 0 {
			chatRequest.Temperature = utils.Ptr(generation.Temperature)
		}
		if generation.TopP != 0 {
			chatRequest.TopP = utils.Ptr(generation.TopP)
		}
		if generation.MaxTokens != 0 {
			chatRequest.MaxTokens = utils.Ptr(generation.MaxTokens)
		}
	}

	for _, tool := range request.Tools {
		chatRequest.Tools = append(chatRequest.Tools, chatTool{
			Type: "function",
			Function: chatFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}

	if format := request.ResponseFormat; format != nil {
		wireFormat := &chatResponseFormat{Type: format.Type}
		if len(format.JSONSchema) > 0 {
			wireFormat.Type = "json_schema"
			wireFormat.JSONSchema = &chatJSONSchemaFormat{
				Name:   "response",
				Schema: format.JSONSchema,
				Strict: format.Strict,
			}
		}
		chatRequest.ResponseFormat = wireFormat
	}

	return chatRequest
}

func messagesToWire(messages []ai.Message) []chatMessage {
	wireMessages := make([]chatMessage, 0, len(messages))
	for _, message := range messages {
		wireMessage := chatMessage{
			Role:       string(message.Role),
			Content:    message.Content,
			Name:       message.Name,
			ToolCallID: message.ToolCallID,
			Reasoning:  message.Reasoning,
		}
		for _, toolCall := range message.ToolCalls {
			wireMessage.ToolCalls = append(wireMessage.ToolCalls, chatToolCall{
				ID:   toolCall.ID,
				Type: "function",
				Function: chatToolCallFunction{
					Name:      toolCall.Function.Name,
					Arguments: toolCall.Function.Arguments,
				},
			})
		}
		wireMessages = append(wireMessages, wireMessage)
	}
	return wireMessages
}

/*
	CHAT COMPLETIONS API - OUTPUT
*/

type chatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"` // "chat.completion"
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage,omitempty"`
}

type chatChoice struct {
	Index        int                 `json:"index"`
	Message      chatResponseMessage `json:"message"`
	FinishReason string              `json:"finish_reason"` // "stop", "length", "tool_calls", "content_filter"
}

type chatResponseMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Reasoning string         `json:"reasoning_content,omitempty"`
	ToolCalls []chatToolCall `json:"tool_calls,omitempty"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// responseToGeneric converts the wire response into the generic ChatResponse.
// Only the first choice is consumed.
func responseToGeneric(response chatCompletionResponse) *ai.ChatResponse {
	generic := &ai.ChatResponse{
		ID:      response.ID,
		Model:   response.Model,
		Created: response.Created,
	}

	if response.Usage != nil {
		generic.Usage = &ai.Usage{
			PromptTokens:     response.Usage.PromptTokens,
			CompletionTokens: response.Usage.CompletionTokens,
			TotalTokens:      response.Usage.TotalTokens,
		}
	}

	if len(response.Choices) == 0 {
		return generic
	}

	choice := response.Choices[0]
	generic.Content = choice.Message.Content
	generic.Reasoning = choice.Message.Reasoning
	generic.FinishReason = choice.FinishReason

	for _, toolCall := range choice.Message.ToolCalls {
		generic.ToolCalls = append(generic.ToolCalls, ai.ToolCall{
			ID:   toolCall.ID,
			Type: "function",
			Function: ai.ToolCallFunction{
				Name:      toolCall.Function.Name,
				Arguments: toolCall.Function.Arguments,
			},
		})
	}

	return generic
}
