// Package incjson implements an incremental parser for flat JSON objects of
// string-valued fields, i.e. objects of the shape {"k1":"v1","k2":"v2"}.
//
// It exists for one purpose: streaming tool-call arguments. OpenAI-compatible
// APIs transmit tool arguments as a JSON object split into arbitrary text
// fragments across SSE chunks. Feeding those fragments into a Parser yields,
// per fragment, only the newly revealed (and already unescaped) portion of the
// value currently being transmitted, keyed by its field name. This lets a
// caller render argument values token-by-token without waiting for the object
// to be complete.
//
// The parser deliberately does not support the full JSON grammar: nested
// objects, arrays, numbers and booleans are out of scope. Malformed input
// degrades to best-effort text passthrough; Feed never fails.
package incjson
