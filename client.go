package gobtc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/shaharia-lab/gobtc/jsonrpc"
)

// Client is a Bitcoin Core JSON-RPC client. It resolves its endpoint and
// credentials once at construction and holds no per-call state, so a single
// instance is safe for concurrent use from any number of goroutines.
//
// Example usage:
//
//	client, err := gobtc.NewClient(
//		gobtc.UseNetwork(gobtc.NetworkRegtest),
//		gobtc.UseCookieFile("/var/lib/bitcoind/regtest/.cookie"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	height, err := client.GetBlockCount(context.Background())
type Client struct {
	endpoint  endpoint
	creds     credentials
	url       string
	transport Transport
	logger    Logger
}

// NewClient constructs a Client from the given options. It fails when the
// configuration is unusable or when neither a cookie file nor explicit
// credentials yield a username and password; no call is ever attempted
// unauthenticated.
func NewClient(opts ...ClientConfigOption) (*Client, error) {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	ep, err := resolveEndpoint(cfg)
	if err != nil {
		return nil, err
	}

	creds, err := resolveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	transport := cfg.transport
	if transport == nil {
		transport = NewHTTPTransport(cfg.httpClient)
	}

	// UseLogger(nil) must not displace the silent default.
	logger := cfg.logger
	if logger == nil {
		logger = NewNullLogger()
	}

	c := &Client{
		endpoint:  ep,
		creds:     creds,
		url:       ep.url(),
		transport: transport,
		logger:    logger,
	}

	c.logger.WithFields(map[string]any{
		"url":     c.url,
		"timeout": ep.timeout,
	}).Debug("bitcoin rpc client configured")

	return c, nil
}

// URL returns the resolved RPC endpoint the client posts to.
func (c *Client) URL() string {
	return c.url
}

// callSettings carries per-invocation adjustments.
type callSettings struct {
	timeout time.Duration
	id      string
}

// CallOption adjusts a single RPC invocation. Cancellation is carried by
// the context; options cover what the context cannot.
type CallOption func(*callSettings)

// UseCallTimeout overrides the client's configured timeout for one call.
func UseCallTimeout(timeout time.Duration) CallOption {
	return func(s *callSettings) {
		s.timeout = timeout
	}
}

// UseCallID pins the correlation id of a single call instead of the
// generated timestamp id. Batch calls take their ids from the batch items
// and ignore this option.
func UseCallID(id string) CallOption {
	return func(s *callSettings) {
		s.id = id
	}
}

func (c *Client) newCallSettings(opts []CallOption) callSettings {
	settings := callSettings{timeout: c.endpoint.timeout}
	for _, opt := range opts {
		opt(&settings)
	}
	if settings.id == "" {
		settings.id = newCallID()
	}
	return settings
}

// newCallID builds a correlation id from the current time plus a random
// suffix, keeping concurrent calls issued in the same millisecond distinct.
func newCallID() string {
	return jsonrpc.NewID(uuid.NewString()[:8])
}

// Call invokes one RPC method and returns its raw JSON result. A non-null
// wire error surfaces as *jsonrpc.RPCError; a payload matching neither
// envelope shape surfaces as *jsonrpc.MalformedResponseError. Typed
// decoding of the result is the caller's concern, which is what the method
// facade is for.
func (c *Client) Call(ctx context.Context, method string, params any, opts ...CallOption) (json.RawMessage, error) {
	settings := c.newCallSettings(opts)

	ctx, span := StartSpan(ctx, "Client.Call")
	defer span.End()

	req := jsonrpc.NewRequest(settings.id, method, params)
	span.SetAttributes(
		attribute.String("rpc.system", "jsonrpc"),
		attribute.String("rpc.method", method),
		attribute.String("rpc.id", req.ID),
	)

	logger := c.logger.WithFields(map[string]any{"method": method, "id": req.ID})
	logger.Debug("sending rpc call")

	payload, err := json.Marshal(req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	start := time.Now()
	body, err := c.send(ctx, payload, settings.timeout)
	if err != nil {
		span.RecordError(err)
		logger.WithErr(err).Error("rpc call failed")
		return nil, err
	}

	resp, err := jsonrpc.DecodeResponse(body)
	if err != nil {
		span.RecordError(err)
		logger.WithErr(err).Error("rpc call returned an unusable response")
		return nil, err
	}

	result, err := resp.Unwrap()
	if err != nil {
		span.RecordError(err)
		logger.WithErr(err).Error("rpc call rejected by node")
		return nil, err
	}

	span.SetAttributes(attribute.Float64("rpc.elapsed_seconds", time.Since(start).Seconds()))
	logger.WithFields(map[string]any{"elapsed": time.Since(start)}).Debug("rpc call completed")

	return result, nil
}

// CallBatch submits every item in one HTTP round trip and returns the
// per-item outcomes in wire order. Outcomes are deliberately not unwrapped:
// a batch may mix successes and failures, so correlate by id and call
// Unwrap per item. Items without an explicit ID get a generated
// timestamp-index id. Calling with no items is a no-op.
func (c *Client) CallBatch(ctx context.Context, items []jsonrpc.BatchItem, opts ...CallOption) ([]jsonrpc.Response, error) {
	if len(items) == 0 {
		return nil, nil
	}

	settings := c.newCallSettings(opts)

	ctx, span := StartSpan(ctx, "Client.CallBatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("rpc.system", "jsonrpc"),
		attribute.Int("rpc.batch_size", len(items)),
	)

	reqs := jsonrpc.NewBatch(items)

	logger := c.logger.WithFields(map[string]any{"batch_size": len(reqs)})
	logger.Debug("sending rpc batch")

	payload, err := json.Marshal(reqs)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	start := time.Now()
	body, err := c.send(ctx, payload, settings.timeout)
	if err != nil {
		span.RecordError(err)
		logger.WithErr(err).Error("rpc batch failed")
		return nil, err
	}

	responses, err := jsonrpc.DecodeBatch(body)
	if err != nil {
		span.RecordError(err)
		logger.WithErr(err).Error("rpc batch returned an unusable response")
		return nil, err
	}

	logger.WithFields(map[string]any{"elapsed": time.Since(start)}).Debug("rpc batch completed")

	return responses, nil
}

// send posts one serialized payload and hands back the response body once
// transport-level status handling has run.
func (c *Client) send(ctx context.Context, payload []byte, timeout time.Duration) ([]byte, error) {
	resp, err := c.transport.Send(ctx, &WireRequest{
		URL:      c.url,
		Body:     payload,
		Username: c.creds.username,
		Password: c.creds.password,
		Timeout:  timeout,
	})
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// checkStatus enforces the transport-level failure contract. 401 means the
// node rejected our credentials no matter what the body says. Any other
// non-success status surfaces the body's JSON-RPC error when one is there,
// since the node wraps RPC failures in 500s, and falls back to the raw
// body otherwise.
func checkStatus(resp *WireResponse) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w (HTTP %d)", ErrInvalidCredentials, resp.StatusCode)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if isJSONContent(resp.Header.Get("Content-Type")) {
		if decoded, err := jsonrpc.DecodeResponse(resp.Body); err == nil && decoded.Error != nil {
			return decoded.Error
		}
	}

	return &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       resp.Body,
	}
}

func isJSONContent(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}
