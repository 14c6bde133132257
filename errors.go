package gobtc

import (
	"bytes"
	"errors"
	"fmt"
)

// Sentinel errors reported by client construction and transport handling.
// Match them with errors.Is.
var (
	// ErrInvalidConfig reports an unusable configuration value, such as an
	// unknown network name or a malformed cookie file.
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrMissingCredentials reports that neither a cookie file nor an
	// explicit username and password produced usable credentials. The
	// client never issues unauthenticated calls.
	ErrMissingCredentials = errors.New("missing credentials: configure a cookie file or a username and password")

	// ErrInvalidCredentials reports that the node rejected authentication
	// with HTTP 401.
	ErrInvalidCredentials = errors.New("invalid credentials: node rejected authentication")
)

const httpBodyPreviewLimit = 512

// HTTPError reports a non-success HTTP status whose body carried no
// parseable JSON-RPC error. Body retains the raw response payload.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	body := bytes.TrimSpace(e.Body)
	if len(body) == 0 {
		return fmt.Sprintf("unexpected HTTP status %s", e.Status)
	}
	if len(body) > httpBodyPreviewLimit {
		body = append(body[:httpBodyPreviewLimit:httpBodyPreviewLimit], "..."...)
	}
	return fmt.Sprintf("unexpected HTTP status %s: %s", e.Status, body)
}
