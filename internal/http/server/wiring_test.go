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

	"github.com/dropDatabas3/dealerdesk/internal/config"
	"github.com/dropDatabas3/dealerdesk/internal/store/adapters/memory"
)

func TestBuild_MemoryDefaults(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	cfg.Server.BasePath = "/api"
	cfg.Rate.Enabled = true

	app, err := Build(context.Background(), cfg, memory.New(), "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	rec := httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"memory"`)

	rec = httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// la policy sale de la config
	assert.Equal(t, cfg.Security.PasswordMinLength, app.Policy.MinLength)
}

func TestBuild_BadBlacklistPath(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	cfg.Security.PasswordBlacklistPath = "/definitely/not/here.txt"

	_, err := Build(context.Background(), cfg, memory.New(), "test")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "blacklist"))
}

func TestServe_ShutdownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), time.Second)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
