package router

import "github.com/go-chi/chi/v5"

// registerHealthRoutes: probes públicos, sin auth ni rate limit.
func registerHealthRoutes(r chi.Router, d Deps) {
	c := d.Controllers.Health

	r.Get("/health/live", c.Live)
	r.Get("/health/ready", c.Ready)
}
