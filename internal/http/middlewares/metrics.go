package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/dealerdesk/internal/metrics"
)

// WithMetrics registra cantidad, latencia e inflight por método y ruta.
func WithMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done := metrics.HTTPStart(r.Method, r.URL.Path)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			done(rec.status)
		})
	}
}
