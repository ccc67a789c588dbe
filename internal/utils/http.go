package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/llmc-dev/llmc/providers/observability"
)

// HeaderOption is an extra HTTP header applied to an outgoing request.
// Options are applied after the default headers, so they can override
// Content-Type or Authorization when a provider needs a different scheme.
type HeaderOption struct {
	Key   string
	Value string
}

// CloseWithLog closes c and logs a warning if the close fails. It is meant
// for defer sites where a close error must not override the primary error.
func CloseWithLog(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}

// DoPostSync performs a synchronous HTTP POST request with a JSON body and
// parses the JSON response into OutputStruct.
//
// Error handling strategy:
//   - Context errors (timeout, cancellation) are propagated immediately
//   - HTTP errors (connection failures, non-2xx status) return the error
//   - Response body close errors are logged but don't override primary errors
//   - JSON parsing errors include a response preview for debugging
func DoPostSync[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any, log observability.Logger, headers ...HeaderOption) (*http.Response, *OutputStruct, error) {
	log = observability.OrNop(log)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	log.Debug("http request prepared",
		observability.String(observability.AttrHTTPMethod, "POST"),
		observability.String(observability.AttrHTTPURL, url),
		observability.Int("http.request.body_size", len(jsonBody)),
	)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		log.Warn("http request failed",
			observability.String(observability.AttrHTTPURL, url),
			observability.Error(err),
			observability.Duration("http.request.duration", requestDuration),
		)
		return res, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBodySize))
	if err != nil {
		return nil, nil, fmt.Errorf("error reading response body: %w", err)
	}

	log.Debug("http response received",
		observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
		observability.Int("http.response.body_size", len(respBody)),
		observability.Duration("http.request.duration", requestDuration),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, fmt.Errorf("non-2xx status %d: %s", res.StatusCode, string(respBody))
	}

	var resStruct OutputStruct
	if err = json.Unmarshal(respBody, &resStruct); err != nil {
		return res, nil, fmt.Errorf("error unmarshaling response body (status %d): %w\nResponse preview: %s", res.StatusCode, err, observability.TruncateString(string(respBody), 500))
	}

	return res, &resStruct, nil
}
