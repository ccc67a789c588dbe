// Package client provides the routing façade over configured model
// providers. A Client is built from a core/config registry: each configured
// model becomes a provider addressed by its call name, with the first entry
// as the default route.
//
// The Client exposes synchronous chat, streaming (with and without tools),
// bounded-concurrency batch chat, and text/multimodal embeddings. Per-call
// behavior (target model, thinking mode, generation limits, response format)
// is adjusted with functional CallOption values.
package client
