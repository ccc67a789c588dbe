package ai

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	plain := NewError(ErrKindModelNotFound, "unknown model call name: %q", "fast")
	if plain.Error() != `model_not_found: unknown model call name: "fast"` {
		t.Errorf("unexpected message: %q", plain.Error())
	}

	cause := errors.New("connection refused")
	wrapped := WrapError(ErrKindClient, cause, "chat request failed")
	if wrapped.Error() != "client: chat request failed: connection refused" {
		t.Errorf("unexpected message: %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
}

func TestIsKind(t *testing.T) {
	err := WrapError(ErrKindStreamParsing, errors.New("boom"), "stream parsing failed")

	if !IsKind(err, ErrKindStreamParsing) {
		t.Error("expected IsKind to match the error's own kind")
	}
	if IsKind(err, ErrKindClient) {
		t.Error("IsKind matched the wrong kind")
	}

	// Kind survives another layer of wrapping.
	outer := fmt.Errorf("call failed: %w", err)
	if !IsKind(outer, ErrKindStreamParsing) {
		t.Error("expected IsKind to see through fmt.Errorf wrapping")
	}

	if IsKind(errors.New("plain"), ErrKindClient) {
		t.Error("IsKind matched a non-Error value")
	}
}
