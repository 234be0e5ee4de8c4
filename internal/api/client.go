package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a running vidfetch daemon over its HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a client for the daemon at baseURL. The client
// timeout accommodates the server-side download wait.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 11 * time.Minute},
	}
}

// RemoteError is a structured failure returned by the daemon.
type RemoteError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *RemoteError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Details)
	}
	return e.Message
}

// Health checks daemon liveness.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Download submits a download job and blocks until it finishes.
func (c *Client) Download(ctx context.Context, url, quality string) (*DownloadResponse, error) {
	var resp DownloadResponse
	req := DownloadRequest{URL: url, Quality: quality}
	if err := c.do(ctx, http.MethodPost, "/api/download", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VideoInfo fetches metadata for url without downloading.
func (c *Client) VideoInfo(ctx context.Context, url string) (*VideoInfoResponse, error) {
	var resp VideoInfoResponse
	req := VideoInfoRequest{URL: url}
	if err := c.do(ctx, http.MethodPost, "/api/video-info", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cleanup triggers an immediate stale job sweep.
func (c *Client) Cleanup(ctx context.Context) (*CleanupResponse, error) {
	var resp CleanupResponse
	if err := c.do(ctx, http.MethodPost, "/api/cleanup", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("reach daemon at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr ErrorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error != "" {
			return &RemoteError{StatusCode: resp.StatusCode, Message: apiErr.Error, Details: apiErr.Details}
		}
		return &RemoteError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
