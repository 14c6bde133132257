package gobtc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// credentials is the resolved authentication pair sent with every call.
// Never logged.
type credentials struct {
	username string
	password string
}

// resolveCredentials derives the authentication pair from the raw
// configuration. A configured cookie file takes precedence over explicit
// credentials; ending up with an empty username or password is an error
// because the client never issues unauthenticated calls.
func resolveCredentials(cfg *ClientConfig) (credentials, error) {
	if cfg.cookieFile != "" {
		return readCookieFile(cfg.cookieFile)
	}

	creds := credentials{username: cfg.username, password: cfg.password}
	if creds.username == "" || creds.password == "" {
		return credentials{}, ErrMissingCredentials
	}
	return creds, nil
}

// readCookieFile parses a node-generated cookie file holding a single
// username:password line. The split happens on the first colon, so
// passwords containing colons survive; both sides are trimmed.
func readCookieFile(path string) (credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return credentials{}, fmt.Errorf("%w: cookie file not found: %w", ErrInvalidConfig, err)
		case errors.Is(err, fs.ErrPermission):
			return credentials{}, fmt.Errorf("%w: cookie file permission denied: %w", ErrInvalidConfig, err)
		default:
			return credentials{}, fmt.Errorf("failed to read cookie file %s: %w", path, err)
		}
	}

	username, password, found := strings.Cut(strings.TrimSpace(string(data)), ":")
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if !found || username == "" || password == "" {
		return credentials{}, fmt.Errorf("%w: cookie file %s must hold a single username:password line", ErrInvalidConfig, path)
	}

	return credentials{username: username, password: password}, nil
}
