// Package jsonrpc implements the JSON-RPC envelope layer spoken by Bitcoin
// Core style nodes.
//
// Outgoing requests always use the JSON-RPC 2.0 shape
// (https://www.jsonrpc.org/specification). Incoming responses are accepted in
// two shapes, because deployed node versions answer differently:
//
//   - the legacy envelope, which always carries "id", "result" and "error"
//     keys with one of result/error set to null, and
//   - the 2.0 envelope, discriminated by `"jsonrpc": "2.0"`, which carries
//     either "result" or "error".
//
// DecodeResponse classifies a payload by inspecting those discriminating
// fields and normalizes both shapes into a single Response value. A payload
// matching neither shape produces a *MalformedResponseError that retains the
// raw bytes for diagnosis.
//
// # Batches
//
// NewBatch builds an ordered request array, assigning "{timestamp}-{index}"
// correlation ids to items that do not bring their own. DecodeBatch returns
// the per-item envelopes in wire order without unwrapping them: a batch may
// mix successes and failures, so correlating by id and calling
// Response.Unwrap per item is left to the caller. Elements of a batch are
// classified independently, so arrays mixing legacy and 2.0 envelopes decode.
//
// # Errors
//
// A populated wire error object becomes an *RPCError carrying the remote
// code and message verbatim. Constants for the standard JSON-RPC 2.0 codes
// and the common bitcoind application codes are provided for callers that
// branch on them.
package jsonrpc
