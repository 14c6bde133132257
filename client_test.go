package gobtc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shaharia-lab/gobtc/jsonrpc"
)

// clientForServer builds a client pointed at an httptest server, going
// through the same endpoint resolution as production configuration.
func clientForServer(t *testing.T, server *httptest.Server, opts ...ClientConfigOption) *Client {
	t.Helper()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	base := []ClientConfigOption{
		UseHost(u.Hostname()),
		UsePort(port),
		UseBasicAuth("rpcuser", "rpcpass"),
		UseHTTPClient(server.Client()),
	}
	client, err := NewClient(append(base, opts...)...)
	require.NoError(t, err)
	return client
}

// staticTransport is a Transport stub that records the last request and
// replays a canned response.
type staticTransport struct {
	response *WireResponse
	err      error
	lastReq  *WireRequest
}

func (s *staticTransport) Send(_ context.Context, req *WireRequest) (*WireResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func jsonResponse(status int, body string) *WireResponse {
	return &WireResponse{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
	}
}

func TestNewClient(t *testing.T) {
	t.Run("explicit credentials", func(t *testing.T) {
		client, err := NewClient(
			UseNetwork(NetworkRegtest),
			UseBasicAuth("rpcuser", "rpcpass"),
		)
		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:18332/", client.URL())
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := NewClient(UseNetwork(NetworkRegtest))
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("unknown network", func(t *testing.T) {
		_, err := NewClient(
			UseNetwork("dogecoin"),
			UseBasicAuth("rpcuser", "rpcpass"),
		)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("cookie file wins over explicit credentials", func(t *testing.T) {
		transport := &staticTransport{response: jsonResponse(http.StatusOK, `{"jsonrpc":"2.0","id":"x","result":1}`)}
		client, err := NewClient(
			UseBasicAuth("explicituser", "explicitpass"),
			UseCookieFile(writeCookie(t, "cookieuser:cookiepass")),
			UseTransport(transport),
		)
		require.NoError(t, err)

		_, err = client.Call(context.Background(), "getblockcount", nil)
		require.NoError(t, err)
		require.NotNil(t, transport.lastReq)
		assert.Equal(t, "cookieuser", transport.lastReq.Username)
		assert.Equal(t, "cookiepass", transport.lastReq.Password)
	})

	t.Run("nil logger keeps the silent default", func(t *testing.T) {
		transport := &staticTransport{response: jsonResponse(http.StatusOK, `{"jsonrpc":"2.0","id":"x","result":800000}`)}
		client, err := NewClient(
			UseBasicAuth("rpcuser", "rpcpass"),
			UseLogger(nil),
			UseTransport(transport),
		)
		require.NoError(t, err)

		result, err := client.Call(context.Background(), "getblockcount", nil)
		require.NoError(t, err)
		assert.Equal(t, "800000", string(result))
	})
}

func TestClientCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		assert.True(t, ok, "missing basic auth")
		assert.Equal(t, "rpcuser", username)
		assert.Equal(t, "rpcpass", password)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "/", r.URL.Path)

		var req jsonrpc.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "getblockcount", req.Method)
		assert.NotEmpty(t, req.ID)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%q,"result":800000}`, req.ID)
	}))
	defer server.Close()

	client := clientForServer(t, server)

	result, err := client.Call(context.Background(), "getblockcount", nil)
	require.NoError(t, err)
	assert.Equal(t, "800000", string(result))
}

func TestClientCallLegacyEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"result":"0000000000000000000123","error":null,"id":"1"}`)
	}))
	defer server.Close()

	client := clientForServer(t, server)

	result, err := client.Call(context.Background(), "getbestblockhash", nil)
	require.NoError(t, err)
	assert.Equal(t, `"0000000000000000000123"`, string(result))
}

func TestClientCallUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "Unauthorized")
	}))
	defer server.Close()

	client := clientForServer(t, server)

	_, err := client.Call(context.Background(), "getblockcount", nil)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestClientCallErrorStatusWithRPCErrorBody(t *testing.T) {
	// Nodes wrap RPC failures in 500s with a regular error envelope. The
	// remote code and message must survive, not the bare status.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"result":null,"error":{"code":-5,"message":"Block not found"},"id":"1"}`)
	}))
	defer server.Close()

	client := clientForServer(t, server)

	_, err := client.Call(context.Background(), "getblock", []any{"deadbeef", 1})
	require.Error(t, err)

	var rpcErr *jsonrpc.RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, jsonrpc.CodeInvalidAddressOrKey, rpcErr.Code)
	assert.Equal(t, "Block not found", rpcErr.Message)
}

func TestClientCallErrorStatusWithoutJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "Work queue depth exceeded")
	}))
	defer server.Close()

	client := clientForServer(t, server)

	_, err := client.Call(context.Background(), "getblockcount", nil)
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Contains(t, httpErr.Error(), "Work queue depth exceeded")
}

func TestClientCallMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"unexpected":"shape"}`)
	}))
	defer server.Close()

	client := clientForServer(t, server)

	_, err := client.Call(context.Background(), "getblockcount", nil)
	require.Error(t, err)

	var malformed *jsonrpc.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestClientCallRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":"1","error":{"code":-8,"message":"Invalid parameter"}}`)
	}))
	defer server.Close()

	client := clientForServer(t, server)

	_, err := client.Call(context.Background(), "getblockhash", []any{-1})
	require.Error(t, err)

	var rpcErr *jsonrpc.RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, jsonrpc.CodeInvalidParameter, rpcErr.Code)
	assert.Contains(t, err.Error(), "-8")
	assert.Contains(t, err.Error(), "Invalid parameter")
}

func TestClientCallTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":"1","result":1}`)
	}))
	defer server.Close()

	client := clientForServer(t, server)

	_, err := client.Call(context.Background(), "getblockcount", nil, UseCallTimeout(20*time.Millisecond))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientCallCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	client := clientForServer(t, server)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Call(ctx, "getblockcount", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientCallPinnedID(t *testing.T) {
	transport := &staticTransport{response: jsonResponse(http.StatusOK, `{"jsonrpc":"2.0","id":"my-id","result":42}`)}
	client, err := NewClient(
		UseBasicAuth("rpcuser", "rpcpass"),
		UseTransport(transport),
	)
	require.NoError(t, err)

	_, err = client.Call(context.Background(), "getblockcount", nil, UseCallID("my-id"))
	require.NoError(t, err)

	var sent jsonrpc.Request
	require.NoError(t, json.Unmarshal(transport.lastReq.Body, &sent))
	assert.Equal(t, "my-id", sent.ID)
}

func TestClientTransportRequestShape(t *testing.T) {
	transport := &staticTransport{response: jsonResponse(http.StatusOK, `{"jsonrpc":"2.0","id":"x","result":1}`)}
	client, err := NewClient(
		UseNetwork(NetworkRegtest),
		UseBasicAuth("rpcuser", "rpcpass"),
		UseTransport(transport),
	)
	require.NoError(t, err)

	_, err = client.Call(context.Background(), "getblockcount", nil)
	require.NoError(t, err)

	req := transport.lastReq
	require.NotNil(t, req)
	assert.Equal(t, "http://127.0.0.1:18332/", req.URL)
	assert.Equal(t, "rpcuser", req.Username)
	assert.Equal(t, "rpcpass", req.Password)
	assert.Equal(t, 30*time.Second, req.Timeout, "default timeout must reach the transport")
}

func TestClientCallBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqs []jsonrpc.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqs))

		// Answer every request in order, failing the ones that ask for a
		// negative block height.
		out := make([]map[string]any, 0, len(reqs))
		for _, req := range reqs {
			if req.Method == "getblockhash" {
				out = append(out, map[string]any{
					"jsonrpc": "2.0",
					"id":      req.ID,
					"error":   map[string]any{"code": -8, "message": "Block height out of range"},
				})
				continue
			}
			out = append(out, map[string]any{
				"jsonrpc": "2.0",
				"id":      req.ID,
				"result":  800000,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(out))
	}))
	defer server.Close()

	client := clientForServer(t, server)

	responses, err := client.CallBatch(context.Background(), []jsonrpc.BatchItem{
		{ID: "a", Method: "getblockcount"},
		{ID: "b", Method: "getblockhash", Params: []any{-1}},
		{ID: "c", Method: "getblockcount"},
	})
	require.NoError(t, err)
	require.Len(t, responses, 3)

	assert.Equal(t, "a", responses[0].IDString())
	assert.Equal(t, "b", responses[1].IDString())
	assert.Equal(t, "c", responses[2].IDString())

	_, err = responses[0].Unwrap()
	assert.NoError(t, err)

	_, err = responses[1].Unwrap()
	var rpcErr *jsonrpc.RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, jsonrpc.CodeInvalidParameter, rpcErr.Code)

	result, err := responses[2].Unwrap()
	require.NoError(t, err)
	assert.Equal(t, "800000", string(result))
}

func TestClientCallBatchGeneratedIDs(t *testing.T) {
	var captured []jsonrpc.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		out := make([]map[string]any, 0, len(captured))
		for _, req := range captured {
			out = append(out, map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": 1})
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(out))
	}))
	defer server.Close()

	client := clientForServer(t, server)

	responses, err := client.CallBatch(context.Background(), []jsonrpc.BatchItem{
		{Method: "getblockcount"},
		{Method: "getblockcount"},
	})
	require.NoError(t, err)
	require.Len(t, responses, 2)
	require.Len(t, captured, 2)

	assert.NotEmpty(t, captured[0].ID)
	assert.NotEmpty(t, captured[1].ID)
	assert.NotEqual(t, captured[0].ID, captured[1].ID, "generated batch ids must be unique")
	assert.Equal(t, captured[0].ID, responses[0].IDString())
	assert.Equal(t, captured[1].ID, responses[1].IDString())
}

func TestClientCallBatchEmpty(t *testing.T) {
	transport := &staticTransport{}
	client, err := NewClient(
		UseBasicAuth("rpcuser", "rpcpass"),
		UseTransport(transport),
	)
	require.NoError(t, err)

	responses, err := client.CallBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, responses)
	assert.Nil(t, transport.lastReq, "empty batch must not hit the wire")
}

func TestClientConcurrentCalls(t *testing.T) {
	var inflight atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inflight.Add(1)
		defer inflight.Add(-1)

		var req jsonrpc.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		time.Sleep(5 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%q,"result":800000}`, req.ID)
	}))
	defer server.Close()

	client := clientForServer(t, server)

	g := new(errgroup.Group)
	const numCalls = 20

	for i := 0; i < numCalls; i++ {
		g.Go(func() error {
			height, err := client.GetBlockCount(context.Background())
			if err != nil {
				return fmt.Errorf("getblockcount failed: %w", err)
			}
			if height != 800000 {
				return fmt.Errorf("unexpected height %d", height)
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}

// Example usage with rate limiting:

type RateLimitedCaller struct {
	client  *Client
	limiter *rate.Limiter
}

func NewRateLimitedCaller(client *Client, rps float64) *RateLimitedCaller {
	return &RateLimitedCaller{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

func (r *RateLimitedCaller) Call(ctx context.Context, method string, params any, opts ...CallOption) (json.RawMessage, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}
	return r.client.Call(ctx, method, params, opts...)
}

func TestRateLimitedCaller(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":"1","result":800000}`)
	}))
	defer server.Close()

	limited := NewRateLimitedCaller(clientForServer(t, server), 50)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := limited.Call(context.Background(), "getblockcount", nil)
		require.NoError(t, err)
	}

	// Three calls at 50 rps hold at least two 20ms token waits.
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
}
