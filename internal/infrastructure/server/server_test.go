package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/LuminOS/backend/internal/infrastructure/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Server.Port = "0"
	cfg.Desktop.OpenDelay = time.Millisecond
	cfg.Desktop.CloseDelay = time.Millisecond
	return cfg
}

func newServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	srv, err := NewServer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close(context.Background()) })
	return srv
}

func serve(srv *Server, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestServerRoutes(t *testing.T) {
	srv := newServer(t, testConfig())

	w := serve(srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

	w = serve(srv, http.MethodGet, "/api/apps", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(srv, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lumin_http_requests_total")
}

func TestCompression(t *testing.T) {
	srv := newServer(t, testConfig())
	content := strings.Repeat("lorem ipsum ", 400)

	w := serve(srv, http.MethodPut, "/api/fs/file",
		`{"path":"/documents/long.txt","content":"`+content+`"}`,
		http.Header{"Content-Type": {"application/json"}})
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(srv, http.MethodGet, "/api/fs/file?path=/documents/long.txt", "",
		http.Header{"Accept-Encoding": {"gzip"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	cfg := testConfig()
	cfg.Server.Compress = false
	plain := newServer(t, cfg)
	w = serve(plain, http.MethodGet, "/api/apps", "", http.Header{"Accept-Encoding": {"gzip"}})
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}

func TestUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Driver = "floppy"

	_, err := NewServer(context.Background(), cfg)
	assert.ErrorContains(t, err, "floppy")
}

func TestRunAndShutdown(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Host = "127.0.0.1"
	srv, err := NewServer(context.Background(), cfg)
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() { errc <- srv.Run() }()

	// Run returns immediately with an error if the listener cannot start.
	select {
	case err := <-errc:
		t.Fatalf("server stopped early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, srv.Shutdown(context.Background()))
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
	assert.NotEmpty(t, srv.Desktop().ID())
}
