package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CallSendsBearerAndJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/dealers/d1/status", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"Suspended"}`, string(b))
		_, _ = w.Write([]byte(`{"id":"d1","status":"Suspended"}`))
	}))
	defer srv.Close()

	cl := &client{BaseURL: srv.URL + "/api/", Token: "tok", HTTP: newHTTPClient(time.Second)}
	body, err := cl.call("set-status", http.MethodPatch, "/dealers/d1/status", map[string]string{"status": "Suspended"})
	require.NoError(t, err)
	assert.Contains(t, string(body), "Suspended")
}

func TestClient_CallNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":"FORBIDDEN"}`))
	}))
	defer srv.Close()

	cl := &client{BaseURL: srv.URL, HTTP: newHTTPClient(time.Second)}
	_, err := cl.call("leads list", http.MethodGet, "/leads", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=403")
}
