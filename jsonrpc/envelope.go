package jsonrpc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Version is the protocol version stamped on every outgoing request and used
// to discriminate 2.0 response envelopes.
const Version = "2.0"

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Application error codes returned by bitcoind. Only the codes callers
// commonly branch on are listed; the node defines many more.
const (
	CodeMiscError            = -1
	CodeTypeError            = -3
	CodeInvalidAddressOrKey  = -5
	CodeOutOfMemory          = -7
	CodeInvalidParameter     = -8
	CodeDeserializationError = -22
	CodeVerifyError          = -25
	CodeVerifyRejected       = -26
	CodeVerifyAlreadyInChain = -27
	CodeInWarmup             = -28
)

// Request is an outgoing JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// NewRequest builds a request envelope for a single call. Nil params encode
// as an empty positional list so the wire envelope always carries "params".
func NewRequest(id, method string, params any) Request {
	if params == nil {
		params = []any{}
	}
	return Request{
		JSONRPC: Version,
		ID:      id,
		Method:  method,
		Params:  params,
	}
}

// NewID generates a correlation id from the current wall clock in
// milliseconds. The optional suffix disambiguates ids minted within the same
// millisecond; callers issuing concurrent requests should always supply one.
func NewID(suffix string) string {
	id := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if suffix != "" {
		id += "-" + suffix
	}
	return id
}

// BatchItem describes one call inside a batch. ID is optional: items without
// one are assigned "{timestamp}-{index}" by NewBatch, keeping ids unique
// within a batch even when every envelope is minted in the same millisecond.
// Explicit ids pass through verbatim so callers can correlate outcomes.
type BatchItem struct {
	ID     string
	Method string
	Params any
}

// NewBatch builds the ordered request array for a batch call.
func NewBatch(items []BatchItem) []Request {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	reqs := make([]Request, len(items))
	for i, item := range items {
		id := item.ID
		if id == "" {
			id = ts + "-" + strconv.Itoa(i)
		}
		reqs[i] = NewRequest(id, item.Method, item.Params)
	}
	return reqs
}

// RPCError is the error object carried by a response envelope. Code and
// Message are reported by the remote node verbatim; Data is optional
// auxiliary detail that only 2.0 envelopes carry.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}
