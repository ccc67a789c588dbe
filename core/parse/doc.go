// Package parse converts raw LLM text output into typed values. Models
// frequently wrap JSON in markdown code fences or return slightly broken
// JSON, so the package strips fences and applies automatic JSON repair
// before falling back to a clear error.
//
// The main entry point is the generic [ParseAs] function, which handles both
// primitive types (string, bool, int, float) and complex types (structs,
// maps, slices) in a single, uniform API. It is the decoding half of the
// structured-output path: request a JSON schema via ai.ResponseFormat, then
// parse the model's reply with ParseAs.
package parse
