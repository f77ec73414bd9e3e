// Package services agrupa todos los services HTTP.
// Este es el "composition root" de services: cada dominio vive en su
// sub-paquete (auth, dealer, admin, health) con su Deps y su aggregator.
//
// Uso:
//
//	svcs := services.New(services.Deps{...})
//	ctrls := controllers.New(svcs)
//	handler := router.New(router.Deps{Controllers: ctrls, ...})
package services

import (
	"time"

	"github.com/dropDatabas3/dealerdesk/internal/cache"
	"github.com/dropDatabas3/dealerdesk/internal/http/services/admin"
	"github.com/dropDatabas3/dealerdesk/internal/http/services/auth"
	"github.com/dropDatabas3/dealerdesk/internal/http/services/dealer"
	"github.com/dropDatabas3/dealerdesk/internal/http/services/health"
	"github.com/dropDatabas3/dealerdesk/internal/onboarding"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
	"github.com/dropDatabas3/dealerdesk/internal/session"
	"github.com/dropDatabas3/dealerdesk/internal/store"
)

// Deps contiene las dependencias base para crear los services.
type Deps struct {
	// ─── Infraestructura ───
	Store    store.Store
	Engine   *onboarding.Engine
	Sessions *session.Issuer
	Cache    cache.Client // opcional

	// ─── Configuración ───
	Policy   password.Policy
	StatsTTL time.Duration
	Version  string
}

// Services agrupa todos los sub-services por dominio.
type Services struct {
	Auth   auth.Services
	Dealer dealer.Services
	Admin  admin.Services
	Health health.HealthService
}

func New(d Deps) *Services {
	st := d.Store

	h := health.Deps{
		StoreName:  st.Name(),
		Durable:    st.Durable(),
		Version:    d.Version,
		StoreCheck: st.Ping,
	}
	if d.Cache != nil {
		h.CacheCheck = d.Cache.Ping
	}

	return &Services{
		Auth: auth.NewServices(auth.Deps{
			Users:    st.Users(),
			Sessions: d.Sessions,
			Policy:   d.Policy,
		}),
		Dealer: dealer.NewServices(dealer.Deps{
			Engine: d.Engine,
			Users:  st.Users(),
			Leads:  st.Leads(),
		}),
		Admin: admin.NewServices(admin.Deps{
			Users:    st.Users(),
			Dealers:  st.Dealers(),
			Leads:    st.Leads(),
			Audit:    st.Audit(),
			Engine:   d.Engine,
			Tokens:   d.Sessions.Tokens(),
			Cache:    d.Cache,
			Policy:   d.Policy,
			StatsTTL: d.StatsTTL,
		}),
		Health: health.NewHealthService(h),
	}
}
