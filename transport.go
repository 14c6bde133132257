package gobtc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WireRequest carries one HTTP exchange's inputs into a Transport.
type WireRequest struct {
	URL      string
	Body     []byte
	Username string
	Password string

	// Timeout bounds this exchange on top of whatever deadline the
	// caller's context already carries. Zero means no extra deadline.
	Timeout time.Duration
}

// WireResponse is the raw outcome of one HTTP exchange.
type WireResponse struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Transport sends one serialized JSON-RPC payload and returns the raw HTTP
// outcome. Implementations must honor context cancellation. The client
// never retries, so every logical call maps to exactly one Send.
type Transport interface {
	Send(ctx context.Context, req *WireRequest) (*WireResponse, error)
}

// HTTPTransport is the default Transport. It issues authenticated JSON
// POST requests through a net/http client and leaves pooling, TLS and
// keep-alive to it.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates an HTTPTransport. A nil client falls back to
// http.DefaultClient.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{client: client}
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, req *WireRequest) (*WireResponse, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(req.Username, req.Password)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &WireResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
