package ai

import (
	"strings"
	"testing"
)

func TestImageSourceWireURL(t *testing.T) {
	tests := []struct {
		name   string
		source ImageSource
		want   string
	}{
		{
			name:   "http url passes through",
			source: ImageFromURL("https://example.com/cat.png"),
			want:   "https://example.com/cat.png",
		},
		{
			name:   "data url passes through",
			source: ImageFromDataURL("data:image/jpeg;base64,abc123"),
			want:   "data:image/jpeg;base64,abc123",
		},
		{
			name:   "base64 text is wrapped",
			source: ImageFromBase64("abc123", "image/jpeg"),
			want:   "data:image/jpeg;base64,abc123",
		},
		{
			name:   "base64 text defaults to png",
			source: ImageFromBase64("abc123", ""),
			want:   "data:image/png;base64,abc123",
		},
		{
			name:   "raw bytes are encoded",
			source: ImageFromBytes([]byte{0x89, 0x50, 0x4e, 0x47}, "image/png"),
			want:   "data:image/png;base64,iVBORw==",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.source.WireURL(); got != tt.want {
				t.Errorf("WireURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChatResponseMessage(t *testing.T) {
	response := &ChatResponse{
		Content:   "final answer",
		Reasoning: "thinking first",
		ToolCalls: []ToolCall{{ID: "call_1", Type: "function", Function: ToolCallFunction{Name: "search", Arguments: "{}"}}},
	}

	message := response.Message()

	if message.Role != RoleAssistant {
		t.Errorf("expected assistant role, got %q", message.Role)
	}
	if message.Content != "final answer" || message.Reasoning != "thinking first" {
		t.Errorf("unexpected message: %+v", message)
	}
	if len(message.ToolCalls) != 1 || message.ToolCalls[0].ID != "call_1" {
		t.Errorf("tool calls not carried over: %+v", message.ToolCalls)
	}
}

func TestContentBlockConstructors(t *testing.T) {
	text := TextBlock("describe this")
	if text.Type != "text" || text.Text != "describe this" {
		t.Errorf("unexpected text block: %+v", text)
	}

	image := ImageBlock(ImageFromURL("https://example.com/x.png"))
	if image.Type != "image_url" || image.Image == nil {
		t.Fatalf("unexpected image block: %+v", image)
	}
	if !strings.HasPrefix(image.Image.WireURL(), "https://") {
		t.Errorf("unexpected wire url: %q", image.Image.WireURL())
	}
}
