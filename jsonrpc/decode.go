package jsonrpc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response is the normalized outcome of one call, produced from either a
// legacy or a 2.0 wire envelope. Exactly one of Result and Error is
// populated, mirroring the wire invariant. ID is kept as raw JSON because
// the node echoes whatever id type the request carried.
type Response struct {
	ID     json.RawMessage
	Result json.RawMessage
	Error  *RPCError
}

// Unwrap returns the result bytes, or the remote error when the envelope
// carried one.
func (r *Response) Unwrap() (json.RawMessage, error) {
	if r.Error != nil {
		return nil, r.Error
	}
	return r.Result, nil
}

// IDString renders the correlation id for matching against request ids.
// String ids are unquoted; any other id type is returned as its JSON text.
func (r *Response) IDString() string {
	var s string
	if err := json.Unmarshal(r.ID, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(r.ID))
}

// MalformedResponseError reports a payload that parses as JSON but matches
// neither the legacy nor the 2.0 envelope shape (or does not parse at all).
// Raw retains the full payload for diagnosis; Error prints a truncated
// rendering of it.
type MalformedResponseError struct {
	Raw []byte
}

const malformedPreviewLimit = 512

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	raw := bytes.TrimSpace(e.Raw)
	if len(raw) > malformedPreviewLimit {
		raw = append(raw[:malformedPreviewLimit:malformedPreviewLimit], "..."...)
	}
	return fmt.Sprintf("jsonrpc: response matches neither legacy nor 2.0 envelope: %s", raw)
}

// DecodeResponse classifies and normalizes a single response payload.
//
// An object whose "jsonrpc" field equals "2.0" is treated as a 2.0 envelope;
// otherwise an object carrying all of the "id", "result" and "error" keys is
// treated as legacy. Anything else fails with *MalformedResponseError. A
// populated wire error object surfaces in Response.Error; checking it (or
// calling Unwrap) is the caller's side of the contract.
func DecodeResponse(body []byte) (*Response, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, &MalformedResponseError{Raw: body}
	}
	return decodeEnvelope(body, probe)
}

// DecodeBatch decodes a batch response array, preserving wire order. Each
// element is classified independently, so arrays mixing legacy and 2.0
// envelopes decode as long as every element conforms to one of the two
// shapes. Items are not unwrapped: a batch may mix successes and failures
// that the caller must handle per item.
func DecodeBatch(body []byte) ([]Response, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, &MalformedResponseError{Raw: body}
	}
	// json.Unmarshal maps a JSON null to a nil slice without an error. Only
	// an actual array is a batch response.
	if elems == nil {
		return nil, &MalformedResponseError{Raw: body}
	}

	responses := make([]Response, len(elems))
	for i, elem := range elems {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(elem, &probe); err != nil {
			return nil, fmt.Errorf("batch element %d: %w", i, &MalformedResponseError{Raw: elem})
		}
		resp, err := decodeEnvelope(elem, probe)
		if err != nil {
			return nil, fmt.Errorf("batch element %d: %w", i, err)
		}
		responses[i] = *resp
	}
	return responses, nil
}

// decodeEnvelope applies the tagged-variant rule to one already-probed
// object. Single and batch decoding share this one classification path so
// the two envelope shapes never grow divergent handling.
func decodeEnvelope(body []byte, probe map[string]json.RawMessage) (*Response, error) {
	isV2 := false
	if raw, ok := probe["jsonrpc"]; ok {
		var version string
		if err := json.Unmarshal(raw, &version); err == nil && version == Version {
			isV2 = true
		}
	}
	if !isV2 && !hasKeys(probe, "id", "result", "error") {
		return nil, &MalformedResponseError{Raw: body}
	}

	resp := &Response{ID: probe["id"]}

	if rawErr, ok := probe["error"]; ok && !isJSONNull(rawErr) {
		rpcErr := new(RPCError)
		if err := json.Unmarshal(rawErr, rpcErr); err != nil {
			return nil, &MalformedResponseError{Raw: body}
		}
		resp.Error = rpcErr
		return resp, nil
	}

	result, ok := probe["result"]
	if !ok && isV2 {
		// A 2.0 envelope must carry result when it carries no error.
		return nil, &MalformedResponseError{Raw: body}
	}
	resp.Result = result
	return resp, nil
}

func hasKeys(probe map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if _, ok := probe[k]; !ok {
			return false
		}
	}
	return true
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
