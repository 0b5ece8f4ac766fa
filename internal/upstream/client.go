// Package upstream is the typed client for the remote menu API. Every call
// is a direct request/response; the client attaches the bearer token when
// one is given, unwraps the uniform {success, data} envelope, and performs
// no retries or caching of its own.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is an application-level failure reported by the upstream
// envelope: success=false with a human-readable message and optional
// itemized validation lines.
type APIError struct {
	Status  int
	Message string
	Details []string
}

// Error joins the message with newline-separated detail lines, matching the
// format the console surfaces to the user.
func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + "\n" + strings.Join(e.Details, "\n")
}

// IsAuthError reports whether err is an upstream rejection of the bearer
// token. Used by the session layer to force logout instead of surfacing a
// generic error.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized
}

// envelope is the uniform upstream response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
}

// Client talks to the remote menu API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL. The timeout bounds the
// whole request including body read.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// get issues a GET request and decodes the unwrapped data into out
func (c *Client) get(ctx context.Context, path, token string, query url.Values, out interface{}) error {
	return c.call(ctx, http.MethodGet, path, token, query, nil, "", out)
}

// send issues a request with a JSON body and decodes the unwrapped data
func (c *Client) send(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	return c.call(ctx, method, path, token, nil, reader, "application/json", out)
}

// FilePart is one file in a multipart upload
type FilePart struct {
	Field    string
	Filename string
	Reader   io.Reader
}

// upload issues a multipart/form-data request with one or more files
func (c *Client) upload(ctx context.Context, path, token string, parts []FilePart, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, part := range parts {
		fw, err := writer.CreateFormFile(part.Field, part.Filename)
		if err != nil {
			return fmt.Errorf("failed to build multipart payload: %w", err)
		}
		if _, err := io.Copy(fw, part.Reader); err != nil {
			return fmt.Errorf("failed to read upload %q: %w", part.Filename, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart payload: %w", err)
	}
	return c.call(ctx, http.MethodPost, path, token, nil, &buf, writer.FormDataContentType(), out)
}

// call builds the request, attaches the bearer token, and unwraps the
// envelope. Transport failures propagate wrapped, with no envelope.
func (c *Client) call(ctx context.Context, method, path, token string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode upstream response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "Request failed"
		}
		return &APIError{
			Status:  resp.StatusCode,
			Message: msg,
			Details: env.Errors,
		}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode upstream data: %w", err)
	}
	return nil
}

// fetchBinary fetches a non-enveloped binary resource (QR images). The whole
// body is read and the response closed before returning, so callers never
// hold a live connection.
func (c *Client) fetchBinary(ctx context.Context, path, token string, query url.Values) ([]byte, string, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Error responses on binary endpoints still carry the envelope
		var env envelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr == nil && !env.Success {
			msg := env.Message
			if msg == "" {
				msg = "Request failed"
			}
			return nil, "", &APIError{Status: resp.StatusCode, Message: msg, Details: env.Errors}
		}
		return nil, "", fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read binary response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return data, contentType, nil
}
