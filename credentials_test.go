package gobtc

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCookie(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".cookie")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolveCredentialsFromCookie(t *testing.T) {
	tests := []struct {
		name         string
		cookie       string
		wantUsername string
		wantPassword string
	}{
		{
			name:         "plain pair with trailing newline",
			cookie:       "rpcuser:s3cret\n",
			wantUsername: "rpcuser",
			wantPassword: "s3cret",
		},
		{
			name:         "node generated cookie",
			cookie:       "__cookie__:a41d6bd07b2232323a4f42",
			wantUsername: "__cookie__",
			wantPassword: "a41d6bd07b2232323a4f42",
		},
		{
			name:         "password containing colons",
			cookie:       "rpcuser:pa:ss:word",
			wantUsername: "rpcuser",
			wantPassword: "pa:ss:word",
		},
		{
			name:         "whitespace around fields",
			cookie:       "  rpcuser : s3cret  \n",
			wantUsername: "rpcuser",
			wantPassword: "s3cret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultClientConfig()
			UseCookieFile(writeCookie(t, tt.cookie))(cfg)

			creds, err := resolveCredentials(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUsername, creds.username)
			assert.Equal(t, tt.wantPassword, creds.password)
		})
	}
}

func TestResolveCredentialsCookiePrecedence(t *testing.T) {
	cfg := defaultClientConfig()
	UseBasicAuth("explicituser", "explicitpass")(cfg)
	UseCookieFile(writeCookie(t, "cookieuser:cookiepass"))(cfg)

	creds, err := resolveCredentials(cfg)
	require.NoError(t, err)
	assert.Equal(t, "cookieuser", creds.username)
	assert.Equal(t, "cookiepass", creds.password)
}

func TestResolveCredentialsExplicit(t *testing.T) {
	cfg := defaultClientConfig()
	UseBasicAuth("rpcuser", "rpcpass")(cfg)

	creds, err := resolveCredentials(cfg)
	require.NoError(t, err)
	assert.Equal(t, "rpcuser", creds.username)
	assert.Equal(t, "rpcpass", creds.password)
}

func TestResolveCredentialsMissing(t *testing.T) {
	tests := []struct {
		name string
		opts []ClientConfigOption
	}{
		{name: "nothing configured"},
		{name: "username only", opts: []ClientConfigOption{UseBasicAuth("rpcuser", "")}},
		{name: "password only", opts: []ClientConfigOption{UseBasicAuth("", "rpcpass")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultClientConfig()
			for _, opt := range tt.opts {
				opt(cfg)
			}

			_, err := resolveCredentials(cfg)
			assert.ErrorIs(t, err, ErrMissingCredentials)
		})
	}
}

func TestReadCookieFileMalformed(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
	}{
		{name: "no colon", cookie: "justonefield\n"},
		{name: "empty file", cookie: ""},
		{name: "empty username", cookie: ":password"},
		{name: "empty password", cookie: "username:"},
		{name: "only whitespace password", cookie: "username:   \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readCookieFile(writeCookie(t, tt.cookie))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), "username:password")
		})
	}
}

func TestReadCookieFileNotFound(t *testing.T) {
	_, err := readCookieFile(filepath.Join(t.TempDir(), "missing.cookie"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, fs.ErrNotExist, "the underlying cause must stay matchable")
	assert.Contains(t, err.Error(), "not found")
}

func TestReadCookieFilePermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}

	path := writeCookie(t, "rpcuser:s3cret")
	require.NoError(t, os.Chmod(path, 0o000))

	_, err := readCookieFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Contains(t, err.Error(), "permission denied")
}
