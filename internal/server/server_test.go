package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lazverb/internal/config"
	"lazverb/internal/di"
	"lazverb/internal/observability"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	cfg := config.Default()
	cfg.IsTest = true
	cfg.Database.URL = "sqlite://" + filepath.Join(t.TempDir(), "lazverb.db")

	container := di.NewServiceContainer(cfg, observability.NewNopLogger())
	require.NoError(t, container.Initialize(context.Background()))
	app := NewApplication(container)
	t.Cleanup(func() { _ = app.Shutdown(context.Background()) })
	return app
}

func TestApplication_HandlerServesHealth(t *testing.T) {
	app := newTestApplication(t)

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestApplication_ServeStopsOnCancel(t *testing.T) {
	app := newTestApplication(t)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx, l) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + l.Addr().String() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
