// Package controllers agrupa todos los controllers HTTP.
// Cada dominio tiene su sub-paquete con un aggregator Controllers que
// recibe los services ya construidos (ver services.New).
package controllers

import (
	"github.com/dropDatabas3/dealerdesk/internal/http/controllers/admin"
	"github.com/dropDatabas3/dealerdesk/internal/http/controllers/auth"
	"github.com/dropDatabas3/dealerdesk/internal/http/controllers/dealer"
	"github.com/dropDatabas3/dealerdesk/internal/http/controllers/health"
	"github.com/dropDatabas3/dealerdesk/internal/http/services"
)

type Controllers struct {
	Auth   *auth.Controllers
	Dealer *dealer.Controllers
	Admin  *admin.Controllers
	Health *health.Controllers
}

func New(s *services.Services) *Controllers {
	return &Controllers{
		Auth:   auth.NewControllers(s.Auth),
		Dealer: dealer.NewControllers(s.Dealer),
		Admin:  admin.NewControllers(s.Admin),
		Health: health.NewControllers(s.Health),
	}
}
