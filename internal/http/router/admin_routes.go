package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	mw "github.com/dropDatabas3/dealerdesk/internal/http/middlewares"
)

// registerAdminRoutes registra leads, dealers (admin|marketing), users y
// admin (solo admin).
func registerAdminRoutes(r chi.Router, d Deps) {
	c := d.Controllers.Admin

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth(d.Issuer), withActor())

		// ─── Leads + Dealers: admin | marketing ───
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(repository.RoleAdmin, repository.RoleMarketing))

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", c.Leads.List)
				r.Post("/", c.Leads.Create)
				r.Post("/bulk-delete", c.Leads.BulkDelete)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", c.Leads.Get)
					r.Patch("/", c.Leads.Update)
					r.Delete("/", c.Leads.Delete)
					r.Patch("/status", c.Leads.SetStatus)
					r.Post("/accept-dealer", c.Leads.AcceptDealer)
				})
			})

			r.Route("/dealers", func(r chi.Router) {
				r.Get("/", c.Dealers.List)
				r.Post("/", c.Dealers.Create)
				r.Post("/bulk-delete", c.Dealers.BulkDelete)
				r.Route("/{id}", func(r chi.Router) {
					r.Patch("/", c.Dealers.Update)
					r.Delete("/", c.Dealers.Delete)
					r.Patch("/status", c.Dealers.SetStatus)
					r.Post("/approve", c.Dealers.Approve)
					r.Get("/detail", c.Dealers.Detail)
				})
			})
		})

		// ─── Users + Admin: solo admin ───
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(repository.RoleAdmin))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", c.Users.List)
				r.Post("/", c.Users.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", c.Users.Get)
					r.Patch("/", c.Users.Update)
					r.Delete("/", c.Users.Delete)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Get("/stats", c.Admin.Stats)
				r.Get("/events", c.Admin.Events)
				r.With(mw.WithNoStore()).Post("/users/{id}/impersonate", c.Admin.Impersonate)
			})
		})
	})
}
