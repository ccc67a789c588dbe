// Package observability defines the logging interface injected into every
// component of the client. Components receive a [Logger] at construction
// instead of reaching for a package-level logger, which keeps logging
// explicit, testable, and free of global state.
//
// The [slogobs] subpackage provides the standard adapter over log/slog;
// [Nop] discards everything and is the default when a component is built
// with a nil logger.
package observability
