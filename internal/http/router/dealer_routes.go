package router

import (
	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/dealerdesk/internal/http/middlewares"
)

// registerDealerRoutes registra el portal de dealers.
//
//	POST /dealer/apply     público, rate limit apply
//	POST /dealer/login     público, rate limit login, no-store
//	POST /dealer/uploads   autenticado
//	GET  /dealer/uploads   autenticado
func registerDealerRoutes(r chi.Router, d Deps) {
	c := d.Controllers.Dealer

	r.Route("/dealer", func(r chi.Router) {
		r.With(rateLimited(d, d.ApplyPolicy)).Post("/apply", c.Apply)
		r.With(mw.WithNoStore(), rateLimited(d, d.LoginPolicy)).Post("/login", c.Login)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth(d.Issuer))
			r.Post("/uploads", c.CreateUpload)
			r.Get("/uploads", c.ListUploads)
		})
	})
}
