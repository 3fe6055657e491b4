// Package testutil builds hermetic test dependencies: a migrated sqlite
// database in a temp dir and a Server around it.
package testutil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/vocab/internal/config"
	"github.com/deppfellow/vocab/internal/database"
	"github.com/deppfellow/vocab/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// NewConfig returns a valid configuration pointing at a fresh sqlite file.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			ShutdownTimeout:    time.Second,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			Path:         filepath.Join(t.TempDir(), "vocab.db"),
			MaxOpenConns: 1,
		},
		Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost},
		RateLimit: config.RateLimitConfig{
			LoginRequests: 0,
			LoginWindow:   time.Minute,
		},
		Catalog: config.CatalogConfig{
			UniqueWords: true,
		},
		Observability: config.DefaultObservabilityConfig(),
	}
}

// NewServer migrates the configured database and opens a Server on it.
// Options adjust the config before anything is opened.
func NewServer(t testing.TB, opts ...func(*config.Config)) *server.Server {
	t.Helper()

	cfg := NewConfig(t)
	for _, opt := range opts {
		opt(cfg)
	}

	logger := zerolog.Nop()
	require.NoError(t, database.Migrate(context.Background(), &logger, cfg))

	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

// SendRequest sends body as JSON (nil means no body) and records the response.
func SendRequest(t testing.TB, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		var sb strings.Builder
		require.NoError(t, json.NewEncoder(&sb).Encode(body))
		reader = strings.NewReader(sb.String())
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

// ParseResponse decodes the recorded JSON body into T.
func ParseResponse[T any](t testing.TB, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var resp T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	return resp
}
