// Package router arma el árbol de rutas chi con sus cadenas de middlewares.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/dealerdesk/internal/http/controllers"
	"github.com/dropDatabas3/dealerdesk/internal/http/errors"
	mw "github.com/dropDatabas3/dealerdesk/internal/http/middlewares"
	jwti "github.com/dropDatabas3/dealerdesk/internal/jwt"
	"github.com/dropDatabas3/dealerdesk/internal/onboarding"
	"github.com/dropDatabas3/dealerdesk/internal/rate"
)

// Deps contiene todo lo necesario para construir el router.
type Deps struct {
	Controllers *controllers.Controllers
	Issuer      *jwti.Issuer

	BasePath    string
	CORSOrigins []string

	// Rate limiting (opcional). Limiter nil lo desactiva.
	Limiter     rate.Limiter
	LoginPolicy rate.Policy
	ApplyPolicy rate.Policy

	// Metrics handler para GET /metrics (opcional).
	Metrics http.Handler
}

// New construye el handler raíz.
//
// Cadena global: Recover → RequestID → Metrics → Logging → SecurityHeaders → CORS.
// Cada grupo agrega lo suyo (NoStore, RateLimit, Auth, RBAC).
func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(mw.Std(
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithMetrics(),
		mw.WithLogging(),
		mw.WithSecurityHeaders(),
		mw.WithCORS(d.CORSOrigins),
	)...)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, errors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errors.WriteError(w, errors.ErrMethodNotAllowed)
	})

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	mount := func(api chi.Router) {
		registerHealthRoutes(api, d)
		registerAuthRoutes(api, d)
		registerDealerRoutes(api, d)
		registerAdminRoutes(api, d)
	}
	if d.BasePath == "" || d.BasePath == "/" {
		mount(r)
	} else {
		r.Route(d.BasePath, func(api chi.Router) { mount(api) })
	}
	return r
}

// rateLimited aplica la política si hay limiter.
func rateLimited(d Deps, p rate.Policy) func(http.Handler) http.Handler {
	return mw.WithRateLimit(mw.RateLimitConfig{
		Limiter: d.Limiter,
		Policy:  p,
		KeyFunc: mw.IPOnlyRateKey,
	})
}

// withActor propaga el usuario autenticado como actor de auditoría.
func withActor() mw.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := onboarding.WithActor(r.Context(), mw.GetUserID(r.Context()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
