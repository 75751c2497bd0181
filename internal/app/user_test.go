package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oshokin/admin-client/internal/api/user"
	"github.com/oshokin/admin-client/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBackend emulates the user endpoints, accepting only the token "T".
func newTestBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /dev-api/user/login", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"code":20000,"data":{"token":"T"}}`)) //nolint:errcheck,gosec // Test handler.
	})

	mux.HandleFunc("POST /dev-api/user/info", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Token") != "T" {
			w.Write([]byte(`{"code":50014,"message":"Token expired"}`)) //nolint:errcheck,gosec // Test handler.

			return
		}

		w.Write([]byte(`{"code":20000,"data":{"roles":["admin","editor"],"name":"Super Admin"}}`)) //nolint:errcheck,gosec,lll // Test handler.
	})

	mux.HandleFunc("POST /dev-api/user/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"code":20000,"data":"success"}`)) //nolint:errcheck,gosec // Test handler.
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

// newTestConfig writes a configuration file and loads it back.
func newTestConfig(t *testing.T, baseAPI, token string) *config.Config {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "config.yaml")
	content := "base_api: " + baseAPI + "/dev-api\nauth_token: \"" + token + "\"\nlog_level: error\n"

	require.NoError(t, os.WriteFile(filename, []byte(content), 0o600))

	cfg, err := config.LoadConfig(filename)
	require.NoError(t, err)
	require.NoError(t, config.ValidateConfig(cfg))

	return cfg
}

func readConfigFile(t *testing.T, cfg *config.Config) string {
	t.Helper()

	content, err := os.ReadFile(cfg.Filename)
	require.NoError(t, err)

	return string(content)
}

// TestExecuteUserLoginCommand tests that the returned token is saved.
func TestExecuteUserLoginCommand(t *testing.T) {
	t.Parallel()

	server := newTestBackend(t)
	cfg := newTestConfig(t, server.URL, "")

	var out bytes.Buffer

	err := ExecuteUserLoginCommand(context.Background(), cfg, Streams{In: strings.NewReader(""), Out: &out},
		user.Credentials{Username: "admin", Password: "111111"})
	require.NoError(t, err)

	assert.Equal(t, "T", cfg.AuthToken)
	assert.Contains(t, readConfigFile(t, cfg), `auth_token: "T"`)
	assert.Empty(t, out.String())
}

// TestExecuteUserLoginCommand_InvalidCredentials tests that nothing is saved for empty credentials.
func TestExecuteUserLoginCommand_InvalidCredentials(t *testing.T) {
	t.Parallel()

	server := newTestBackend(t)
	cfg := newTestConfig(t, server.URL, "")

	err := ExecuteUserLoginCommand(context.Background(), cfg, Streams{In: strings.NewReader(""), Out: &bytes.Buffer{}},
		user.Credentials{Username: "admin"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, cfg.AuthToken)
}

// TestExecuteUserInfoCommand tests that the profile is printed.
func TestExecuteUserInfoCommand(t *testing.T) {
	t.Parallel()

	server := newTestBackend(t)
	cfg := newTestConfig(t, server.URL, "T")

	var out bytes.Buffer

	err := ExecuteUserInfoCommand(context.Background(), cfg, Streams{In: strings.NewReader(""), Out: &out})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Super Admin")
	assert.Contains(t, out.String(), "admin, editor")
}

// TestExecuteUserInfoCommand_NotLoggedIn tests that no request is sent without a token.
func TestExecuteUserInfoCommand_NotLoggedIn(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, "http://127.0.0.1:1", "")

	err := ExecuteUserInfoCommand(context.Background(), cfg, Streams{In: strings.NewReader(""), Out: &bytes.Buffer{}})
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

// TestExecuteUserInfoCommand_ExpiredToken tests the forced logout through the terminal.
func TestExecuteUserInfoCommand_ExpiredToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		answer        string
		expectedToken string
	}{
		{name: "re-login accepted", answer: "y\n", expectedToken: ""},
		{name: "stay on page", answer: "n\n", expectedToken: "stale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestBackend(t)
			cfg := newTestConfig(t, server.URL, "stale")

			var out bytes.Buffer

			err := ExecuteUserInfoCommand(context.Background(), cfg,
				Streams{In: strings.NewReader(tt.answer), Out: &out})
			require.Error(t, err)

			assert.Contains(t, out.String(), "[ERROR] Token expired")
			assert.Contains(t, out.String(), "Confirm logout")
			assert.Equal(t, tt.expectedToken, cfg.AuthToken)
			assert.Contains(t, readConfigFile(t, cfg), "auth_token: \""+tt.expectedToken+"\"")
		})
	}
}

// TestExecuteUserLogoutCommand tests that the stored token is cleared.
func TestExecuteUserLogoutCommand(t *testing.T) {
	t.Parallel()

	server := newTestBackend(t)
	cfg := newTestConfig(t, server.URL, "T")

	err := ExecuteUserLogoutCommand(context.Background(), cfg, Streams{In: strings.NewReader(""), Out: &bytes.Buffer{}})
	require.NoError(t, err)

	assert.Empty(t, cfg.AuthToken)
	assert.Contains(t, readConfigFile(t, cfg), `auth_token: ""`)
}
