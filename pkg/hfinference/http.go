package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// httpClient handles HTTP communication with the task endpoints.
type httpClient struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	maxRetries   int
	limiter      *rate.Limiter
	waitForModel bool
}

// newHTTPClient creates a new HTTP client.
func newHTTPClient(cfg *clientConfig) *httpClient {
	return &httpClient{
		client:       cfg.httpClient,
		baseURL:      strings.TrimRight(cfg.baseURL, "/"),
		apiKey:       cfg.apiKey,
		maxRetries:   cfg.maxRetries,
		limiter:      cfg.limiter,
		waitForModel: cfg.waitForModel,
	}
}

// rawResponse is a successful response body and its declared content type.
type rawResponse struct {
	Body        []byte
	ContentType string
}

// modelPath returns the task endpoint path for a model ID such as
// "black-forest-labs/FLUX.1-dev". The slash between owner and name is kept.
func modelPath(model string) string {
	parts := strings.Split(model, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "/models/" + strings.Join(parts, "/")
}

// postJSON marshals body and posts it to the model endpoint.
func (h *httpClient) postJSON(ctx context.Context, model string, body any) (*rawResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return h.post(ctx, model, "application/json", data)
}

// post sends data to the model endpoint with retry support.
func (h *httpClient) post(ctx context.Context, model, contentType string, data []byte) (*rawResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s, ...
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if h.limiter != nil {
			if err := h.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := h.doRequest(ctx, model, contentType, data)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}

		if apiErr, ok := AsError(err); ok && !apiErr.Retryable() {
			return nil, err
		}
		slog.Debug("hfinference request failed", "model", model, "attempt", attempt+1, "err", err)
	}

	return nil, lastErr
}

// doRequest performs a single HTTP request.
func (h *httpClient) doRequest(ctx context.Context, model, contentType string, data []byte) (*rawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+modelPath(model), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	h.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	slog.Debug("hfinference response",
		"model", model,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseError(body, resp.StatusCode)
	}

	return &rawResponse{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// setHeaders sets common headers for API requests.
func (h *httpClient) setHeaders(req *http.Request) {
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}
	req.Header.Set("User-Agent", "haivivi-studio-go/1.0")
	if h.waitForModel {
		req.Header.Set("x-wait-for-model", "true")
	}
}

// parseError parses an error response body.
//
// The API answers {"error": "...", "estimated_time": 20.0} for most
// failures; "error" is occasionally a list of messages.
func parseError(body []byte, httpStatus int) error {
	var payload struct {
		Error         json.RawMessage `json:"error"`
		EstimatedTime float64         `json:"estimated_time"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Error) > 0 {
		return &Error{
			HTTPStatus:    httpStatus,
			Message:       errorMessage(payload.Error),
			EstimatedTime: payload.EstimatedTime,
		}
	}

	return &Error{
		HTTPStatus: httpStatus,
		Message:    strings.TrimSpace(string(body)),
	}
}

func errorMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return string(raw)
}
