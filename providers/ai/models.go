package ai

import (
	"encoding/base64"
	"encoding/json"
)

/*
	##### PROVIDER INPUT #####
*/

// ChatRequest represents a request to send a chat message
type ChatRequest struct {
	Model            string            `json:"model,omitempty"`             // Model name or identifier
	Messages         []Message         `json:"messages"`                    // Conversation messages, system prompt included
	Tools            []ToolDescription `json:"tools,omitempty"`             // Tool definitions if any
	ResponseFormat   *ResponseFormat   `json:"response_format,omitempty"`   // Optional structured-output format
	GenerationConfig *GenerationConfig `json:"generation_config,omitempty"` // Optional generation configuration
	Thinking         *ThinkingConfig   `json:"thinking,omitempty"`          // Optional reasoning-mode configuration
}

// ToolDescription declares a callable tool to the model. Parameters carries
// the raw JSON Schema for the tool's arguments and is passed to the provider
// verbatim.
type ToolDescription struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// Message represents a single message in a conversation
type Message struct {
	// Core fields (always present)
	Role    MessageRole `json:"role"`
	Content string      `json:"content,omitempty"`

	// Tool calling fields
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // For role=assistant requesting tools
	ToolCallID string     `json:"tool_call_id,omitempty"` // For role=tool, links to the tool call being responded to
	Name       string     `json:"name,omitempty"`         // For role=tool, name of the tool that generated this response

	// Extended fields
	Reasoning string `json:"reasoning_content,omitempty"` // Chain-of-thought text, kept separate from Content
}

// ThinkingConfig controls the reasoning ("thinking") mode on models that
// support it. ClearHistory asks the backend to drop reasoning from earlier
// turns when building the prompt.
type ThinkingConfig struct {
	Enable       bool `json:"enable"`
	ClearHistory bool `json:"clear_history"`
}

type GenerationConfig struct {
	MaxTokens   int     `json:"max_tokens,omitempty"`  // Optional max tokens for the response
	Temperature float32 `json:"temperature,omitempty"` // Sampling temperature [0..2]. Higher => more random
	TopP        float32 `json:"top_p,omitempty"`       // Nucleus sampling [0..1]. Alternative to temperature
}

// ResponseFormat requests structured output. JSONSchema is a raw JSON Schema
// forwarded to the backend (vLLM-style structured outputs); Type is a hint
// such as "json_object" for backends without full schema support.
type ResponseFormat struct {
	Type       string          `json:"type,omitempty"`
	JSONSchema json.RawMessage `json:"json_schema,omitempty"`
	Strict     bool            `json:"strict,omitempty"`
}

/*
	##### PROVIDER OUTPUT #####
*/

type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ChatResponse represents the response from a chat completion
type ChatResponse struct {
	ID           string     `json:"id"`
	Model        string     `json:"model"`
	Created      int64      `json:"created"`
	Content      string     `json:"content"`
	Reasoning    string     `json:"reasoning_content,omitempty"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
	FinishReason string     `json:"finish_reason,omitempty"`
	Usage        *Usage     `json:"usage,omitempty"`
}

// Message converts the response into the assistant message it represents,
// suitable for appending to a conversation.
func (response *ChatResponse) Message() Message {
	return Message{
		Role:      RoleAssistant,
		Content:   response.Content,
		Reasoning: response.Reasoning,
		ToolCalls: response.ToolCalls,
	}
}

// ToolCall represents a function/tool call request from the LLM
type ToolCall struct {
	ID       string           `json:"id,omitempty"` // Unique identifier for this tool call
	Type     string           `json:"type"`         // "function"
	Function ToolCallFunction `json:"function"`
}

type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // Raw JSON string, concatenated verbatim from stream fragments
}

/*
	##### IMAGES #####
*/

// ImageSourceKind discriminates the closed set of ways an image can enter the
// client. The kind is decided once at the boundary instead of being
// re-discovered by type sniffing at call time.
type ImageSourceKind string

const (
	ImageRawBytes   ImageSourceKind = "raw_bytes"   // In-memory image data
	ImageDataURL    ImageSourceKind = "data_url"    // Already-encoded data: URL
	ImageHTTPURL    ImageSourceKind = "http_url"    // Remote URL fetched by the provider
	ImageBase64Text ImageSourceKind = "base64_text" // Base64 payload without the data: wrapper
)

// ImageSource is a tagged variant over the supported image inputs. Use the
// constructors; exactly the fields implied by Kind are set.
type ImageSource struct {
	Kind   ImageSourceKind
	Bytes  []byte // Kind == ImageRawBytes
	MIME   string // Kind == ImageRawBytes or ImageBase64Text; defaults to image/png
	URL    string // Kind == ImageDataURL or ImageHTTPURL
	Base64 string // Kind == ImageBase64Text
}

func ImageFromBytes(data []byte, mime string) ImageSource {
	return ImageSource{Kind: ImageRawBytes, Bytes: data, MIME: mime}
}

func ImageFromDataURL(url string) ImageSource {
	return ImageSource{Kind: ImageDataURL, URL: url}
}

func ImageFromURL(url string) ImageSource {
	return ImageSource{Kind: ImageHTTPURL, URL: url}
}

func ImageFromBase64(payload string, mime string) ImageSource {
	return ImageSource{Kind: ImageBase64Text, Base64: payload, MIME: mime}
}

// WireURL renders the image as the URL string OpenAI-compatible APIs expect:
// remote URLs and data URLs pass through, raw bytes and bare base64 payloads
// are wrapped into a data URL.
func (source ImageSource) WireURL() string {
	switch source.Kind {
	case ImageRawBytes:
		return "data:" + source.mimeOrDefault() + ";base64," + base64.StdEncoding.EncodeToString(source.Bytes)
	case ImageBase64Text:
		return "data:" + source.mimeOrDefault() + ";base64," + source.Base64
	default:
		return source.URL
	}
}

func (source ImageSource) mimeOrDefault() string {
	if source.MIME == "" {
		return "image/png"
	}
	return source.MIME
}

/*
	##### EMBEDDINGS #####
*/

// ContentBlock is one part of a multimodal embedding input: either text or an
// image. Type mirrors the OpenAI content-part discriminator.
type ContentBlock struct {
	Type  string       `json:"type"` // "text" or "image_url"
	Text  string       `json:"text,omitempty"`
	Image *ImageSource `json:"-"`
}

// TextBlock builds a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// ImageBlock builds an image content block from a tagged image source.
func ImageBlock(source ImageSource) ContentBlock {
	return ContentBlock{Type: "image_url", Image: &source}
}

/*
	##### ENUMS #####
*/

// MessageRole represents the role of a message; compatible with string
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model response
	RoleTool      MessageRole = "tool"      // Tool/function output
)
