// Package chat forwards chat requests to the upstream chat service and
// exposes the upstream response body as an incremental stream. The relay
// is deliberately dumb: it does not parse, rewrite or buffer the upstream
// payload, it only moves bytes.
package chat

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/config"
)

// readBufferSize is the per-read chunk size when draining the upstream body
const readBufferSize = 4096

// UpstreamError carries a non-2xx upstream response so the handler can
// reproduce the upstream status and body for the client.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("chat service returned status %d", e.StatusCode)
}

// Client relays requests to the upstream chat service
type Client struct {
	serviceURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new chat relay client. The connect timeout bounds
// dialing and waiting for response headers only; an open stream may run
// for as long as the upstream keeps producing.
func NewClient(cfg config.ChatConfig, logger *zap.Logger) *Client {
	return &Client{
		serviceURL: cfg.ServiceURL,
		httpClient: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: cfg.ConnectTimeout,
				}).DialContext,
				ResponseHeaderTimeout: cfg.ConnectTimeout,
			},
		},
		logger: logger,
	}
}

// Open forwards the request body verbatim to the upstream chat service and
// returns the live response stream. A non-2xx upstream response is drained
// and returned as *UpstreamError. The request is bound to ctx, so
// cancelling it aborts both the connect and any subsequent reads.
func (c *Client) Open(ctx context.Context, body io.Reader) (*Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL, body)
	if err != nil {
		return nil, fmt.Errorf("chat: build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat: upstream request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		errBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			c.logger.Warn("failed to read upstream error body", zap.Error(readErr))
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: errBody}
	}

	c.logger.Debug("upstream stream opened", zap.Int("status", resp.StatusCode))
	return &Stream{body: resp.Body}, nil
}

// Stream is a live upstream response body. Chunks are surfaced exactly as
// the transport delivers them; no re-framing or coalescing happens here.
type Stream struct {
	body io.ReadCloser
	buf  [readBufferSize]byte
}

// Next returns the next chunk of the stream. It returns io.EOF when the
// upstream finished cleanly and any other error when the stream broke
// mid-flight. The returned slice is only valid until the next call.
func (s *Stream) Next() ([]byte, error) {
	n, err := s.body.Read(s.buf[:])
	if n > 0 {
		return s.buf[:n], nil
	}
	if err == nil {
		err = io.EOF
	}
	return nil, err
}

// Close releases the upstream connection
func (s *Stream) Close() error {
	return s.body.Close()
}
