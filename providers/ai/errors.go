package ai

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed enumeration of failure categories surfaced by the
// client. Kinds replace a subclass hierarchy: callers branch on the kind via
// [IsKind] or errors.As rather than on concrete error types.
type ErrorKind string

const (
	// ErrKindModelNotFound reports an unknown model call name.
	ErrKindModelNotFound ErrorKind = "model_not_found"
	// ErrKindClient reports a provider call failure (network, auth,
	// non-2xx status, undecodable response).
	ErrKindClient ErrorKind = "client"
	// ErrKindStreamParsing reports an unexpected failure while decoding a
	// streaming response. Terminal for the affected call only.
	ErrKindStreamParsing ErrorKind = "stream_parsing"
	// ErrKindMalformedChunk reports a stream chunk missing its expected
	// structure. Recovered locally: the chunk is skipped and the stream
	// continues, so this kind appears in logs rather than return values.
	ErrKindMalformedChunk ErrorKind = "malformed_chunk"
)

// Error is the single error type carrying an ErrorKind, a human-readable
// message, and an optional wrapped cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError builds an Error of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds an Error of the given kind around a cause.
func WrapError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether err or any error in its chain is an *Error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var clientError *Error
	if errors.As(err, &clientError) {
		return clientError.Kind == kind
	}
	return false
}
