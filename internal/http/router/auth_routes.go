package router

import (
	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/dealerdesk/internal/http/middlewares"
)

// registerAuthRoutes registra /auth. Todas las respuestas llevan no-store.
func registerAuthRoutes(r chi.Router, d Deps) {
	c := d.Controllers.Auth

	r.Route("/auth", func(r chi.Router) {
		r.Use(mw.WithNoStore())

		r.Post("/register", c.Register)
		r.With(rateLimited(d, d.LoginPolicy)).Post("/login", c.Login)
		r.Post("/refresh", c.Refresh)
		r.Post("/logout", c.Logout)

		r.With(mw.RequireAuth(d.Issuer)).Get("/me", c.Me)
	})
}
