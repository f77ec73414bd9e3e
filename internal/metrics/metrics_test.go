package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "/"},
		{"/", "/"},
		{"/leads", "/leads"},
		{"/leads/123/accept-dealer", "/leads/:param/accept-dealer"},
		{"/dealers/3f2a1b4c-1111-4222-8333-444455556666/approve", "/dealers/:param/approve"},
		{"/users?cursor=abc", "/users"},
		{"/admin/events/", "/admin/events"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizePath(c.in), c.in)
	}
}

func TestRegisterAndRecord(t *testing.T) {
	h, err := Register(Config{Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	require.NotNil(t, h)

	before := testutil.ToFloat64(reconciliationsTotal.WithLabelValues("accept", "ok"))
	Reconciliation("accept", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(reconciliationsTotal.WithLabelValues("accept", "ok")))

	done := HTTPStart("get", "/leads/42")
	assert.Equal(t, 1.0, testutil.ToFloat64(httpInflight.WithLabelValues("GET", "/leads/:param")))
	done(http.StatusNoContent)
	assert.Equal(t, 0.0, testutil.ToFloat64(httpInflight.WithLabelValues("GET", "/leads/:param")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/leads/:param", "204")), 1.0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
