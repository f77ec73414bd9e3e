package middlewares

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	headerRequestID     = "X-Request-ID"
	headerCorrelationID = "X-Correlation-ID"
	maxRequestIDLen     = 128
)

// WithRequestID toma el id del cliente (X-Request-ID, o X-Correlation-ID
// como segunda opción) si es ASCII imprimible y corto; si no, genera un
// uuid. Siempre lo devuelve en X-Request-ID.
func WithRequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := inboundRequestID(r)
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set(headerRequestID, rid)
			next.ServeHTTP(w, r.WithContext(setRequestID(r.Context(), rid)))
		})
	}
}

func inboundRequestID(r *http.Request) string {
	for _, h := range []string{headerRequestID, headerCorrelationID} {
		if v := strings.TrimSpace(r.Header.Get(h)); validRequestID(v) {
			return v
		}
	}
	return ""
}

func validRequestID(s string) bool {
	if s == "" || len(s) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
