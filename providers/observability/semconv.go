package observability

// Shared attribute keys, so log lines from different components stay
// queryable by the same names.
const (
	AttrLLMProvider = "llm.provider"
	AttrLLMModel    = "llm.model"
	AttrLLMCallName = "llm.call_name"
	AttrLLMLabel    = "llm.label"

	AttrRequestID            = "request.id"
	AttrRequestMessagesCount = "request.messages_count"
	AttrRequestToolsCount    = "request.tools_count"

	AttrStreamChunkCount = "stream.chunk_count"
	AttrStreamEventCount = "stream.event_count"

	AttrBatchSize    = "batch.size"
	AttrBatchWorkers = "batch.workers"
	AttrBatchIndex   = "batch.index"

	AttrHTTPMethod     = "http.method"
	AttrHTTPURL        = "http.url"
	AttrHTTPStatusCode = "http.status_code"
)
