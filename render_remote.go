package leadmagnet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"k8s.io/klog/v2"
)

// Remote renderer limits.
const (
	DefaultRemoteTimeout = 60 * time.Second
	DefaultPlatform      = "cli"
	maxRemoteDocument    = 50 << 20 // 50MB
	maxRemoteError       = 64 << 10
)

// RemoteRenderer posts documents to an HTTP document-generation endpoint and
// returns the response body as the rendered document.
//
// Request body: {"html": "...", "title": "...", "platform": "..."}.
// Non-2xx responses are expected to carry {"error": "..."}.
type RemoteRenderer struct {
	endpoint string
	platform string
	client   *http.Client
}

// RemoteOption configures a RemoteRenderer.
type RemoteOption func(*RemoteRenderer)

// WithPlatform sets the platform reported to the endpoint.
func WithPlatform(platform string) RemoteOption {
	return func(r *RemoteRenderer) {
		if platform != "" {
			r.platform = platform
		}
	}
}

// WithHTTPClient replaces the HTTP client. Its Timeout is kept when set and
// forced to DefaultRemoteTimeout otherwise: remote calls are never unbounded.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *RemoteRenderer) {
		if c != nil {
			r.client = c
		}
	}
}

// NewRemoteRenderer creates a RemoteRenderer for endpoint. A non-positive
// timeout uses DefaultRemoteTimeout.
func NewRemoteRenderer(endpoint string, timeout time.Duration, opts ...RemoteOption) *RemoteRenderer {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	r := &RemoteRenderer{
		endpoint: endpoint,
		platform: DefaultPlatform,
		client:   &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client.Timeout <= 0 {
		c := *r.client
		c.Timeout = DefaultRemoteTimeout
		r.client = &c
	}
	return r
}

type remoteRequest struct {
	HTML     string `json:"html"`
	Title    string `json:"title"`
	Platform string `json:"platform"`
}

type remoteErrorBody struct {
	Error string `json:"error"`
}

// RemoteError is returned when the endpoint answers with a non-2xx status.
// It matches ErrRemoteRender with errors.Is.
type RemoteError struct {
	StatusCode int
	Message    string // server-provided message
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%v: %s", ErrRemoteRender, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return ErrRemoteRender
}

// RenderDocument sends html to the endpoint and returns the document bytes.
func (r *RemoteRenderer) RenderDocument(ctx context.Context, html, title string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(remoteRequest{HTML: html, Title: title, Platform: r.platform})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrRemoteRender, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteRender, err)
	}
	req.Header.Set("Content-Type", "application/json")

	klog.V(4).Infof("remote render: POST %s (title=%q, %d bytes)", r.endpoint, title, len(body))
	start := time.Now()

	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrRemoteRender, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := decodeRemoteError(resp)
		klog.Warningf("remote render failed: status=%d error=%q", resp.StatusCode, msg)
		return nil, &RemoteError{StatusCode: resp.StatusCode, Message: msg}
	}

	doc, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteDocument+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrRemoteRender, err)
	}
	if len(doc) > maxRemoteDocument {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrRemoteRender, maxRemoteDocument)
	}
	if len(doc) == 0 {
		return nil, ErrEmptyDocument
	}

	klog.V(4).Infof("remote render: %d bytes in %s", len(doc), time.Since(start).Round(time.Millisecond))
	return doc, nil
}

// decodeRemoteError extracts the server's message from an error response.
func decodeRemoteError(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteError))
	if err != nil {
		return "Unknown error"
	}
	var e remoteErrorBody
	if err := json.Unmarshal(data, &e); err != nil {
		return "Unknown error"
	}
	if e.Error == "" {
		return fmt.Sprintf("PDF generation failed: %d", resp.StatusCode)
	}
	return e.Error
}
