package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPClient talks to the tagmindd HTTP/JSON API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a client targeting the given base URL (e.g.
// "http://localhost:8080"). When token is non-empty, an Authorization header
// is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Health checks server liveness and returns the reported status string.
func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// ListReminders fetches all configured reminders with their current status.
func (c *HTTPClient) ListReminders(ctx context.Context) ([]Reminder, error) {
	var resp struct {
		Reminders []Reminder `json:"reminders"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/reminders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reminders, nil
}

// GetReminder fetches a single reminder by name. The server normalizes the
// name, so display names and keys both work.
func (c *HTTPClient) GetReminder(ctx context.Context, name string) (*Reminder, error) {
	var rem Reminder
	if err := c.doJSON(ctx, http.MethodGet, "/v1/reminders/"+url.PathEscape(name), nil, &rem); err != nil {
		return nil, err
	}
	return &rem, nil
}

// Scan submits a tag scan. An unmatched tag is not an error; the result's
// Reminders slice is empty in that case.
func (c *HTTPClient) Scan(ctx context.Context, tagID, scannedBy string) (*ScanResult, error) {
	body := map[string]string{"tag_id": tagID}
	if scannedBy != "" {
		body["scanned_by"] = scannedBy
	}
	var result ScanResult
	if err := c.doJSON(ctx, http.MethodPost, "/v1/scan", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// StreamEvent is one event received from the server's SSE stream.
type StreamEvent struct {
	ID    string
	Event string
	Data  []byte
}

// WatchEvents connects to the SSE stream and invokes fn for each event until
// ctx is cancelled or the connection drops.
func (c *HTTPClient) WatchEvents(ctx context.Context, fn func(StreamEvent)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/events/stream", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connecting to event stream: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: "event stream rejected"}
	}

	var cur StreamEvent
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if len(cur.Data) > 0 {
				fn(cur)
			}
			cur = StreamEvent{}
		case strings.HasPrefix(line, ":"):
			// keepalive comment
		case strings.HasPrefix(line, "id: "):
			cur.ID = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			cur.Event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			cur.Data = []byte(strings.TrimPrefix(line, "data: "))
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("reading event stream: %w", err)
	}
	return nil
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the
// JSON response. If result is nil, the response body is discarded.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
