package sender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/marcelsud/webhook-dispatch/webhook/signature"
)

const (
	// UserAgent identifies outbound webhook calls to receivers
	UserAgent = "webhook-dispatch-Webhook/1.0"

	// MaxResponseBytes caps the stored response body so that a
	// misbehaving endpoint cannot inflate delivery records
	MaxResponseBytes = 10 * 1024

	// DefaultTimeout is the hard per-attempt timeout
	DefaultTimeout = 30 * time.Second
)

/* Sender performs a single signed HTTP POST attempt against an endpoint
 * It has no retry logic of its own; scheduling retries is the dispatcher's
 * responsibility, which keeps single-attempt semantics testable in isolation
 */
type Sender struct {
	// client is reused across requests for connection pooling
	client  *http.Client
	timeout time.Duration
}

// Result captures the outcome of one delivery attempt
type Result struct {
	// Success is true iff the HTTP status is in the 2xx range
	Success bool
	Status  int
	// Body is the response body truncated to MaxResponseBytes
	Body string
}

// NewSender creates a sender with a pooled HTTP client and the given
// per-attempt timeout. A zero timeout falls back to DefaultTimeout.
func NewSender(timeout time.Duration) *Sender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Sender{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		timeout: timeout,
	}
}

// NewSenderWithClient creates a sender with a custom HTTP client,
// used for testing with custom transports
func NewSenderWithClient(client *http.Client, timeout time.Duration) *Sender {
	s := NewSender(timeout)
	if client != nil {
		s.client = client
	}
	return s
}

/* Send issues one signed POST to the endpoint URL
 * The payload must already be serialized; the signature is computed over the
 * exact bytes that go on the wire
 * A transport or timeout failure is returned as an error; a non-2xx response
 * is not an error, it is a Result with Success=false
 */
func (s *Sender) Send(ctx context.Context, url, secret, event, timestamp string, body []byte) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Signature", signature.Sign(body, secret))
	req.Header.Set("X-Webhook-Event", event)
	req.Header.Set("X-Webhook-Timestamp", timestamp)
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	// Read at most MaxResponseBytes and drain the rest so the
	// connection can be reused
	truncated, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return Result{}, fmt.Errorf("reading response body: %w", err)
	}
	io.Copy(io.Discard, resp.Body)

	return Result{
		Success: resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:  resp.StatusCode,
		Body:    string(truncated),
	}, nil
}
