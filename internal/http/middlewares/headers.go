package middlewares

import (
	"net/http"
	"strings"
)

type header struct{ key, value string }

// apiHeaders: la API solo responde JSON, nunca se embebe ni se renderiza.
var apiHeaders = []header{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Cross-Origin-Resource-Policy", "same-site"},
	{"X-Permitted-Cross-Domain-Policies", "none"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	{"Permissions-Policy", "camera=(), microphone=(), geolocation=()"},
}

var noStoreHeaders = []header{
	{"Cache-Control", "no-store"},
	{"Pragma", "no-cache"},
}

const hstsValue = "max-age=15552000; includeSubDomains"

func withHeaders(hs []header, extra func(http.Header, *http.Request)) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range hs {
				h.Set(kv.key, kv.value)
			}
			if extra != nil {
				extra(h, r)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithSecurityHeaders agrega las cabeceras fijas de la API y HSTS cuando
// el request llegó por TLS (directo o vía X-Forwarded-Proto).
func WithSecurityHeaders() Middleware {
	return withHeaders(apiHeaders, func(h http.Header, r *http.Request) {
		if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
			h.Set("Strict-Transport-Security", hstsValue)
		}
	})
}

// WithNoStore para rutas que devuelven tokens.
func WithNoStore() Middleware { return withHeaders(noStoreHeaders, nil) }
