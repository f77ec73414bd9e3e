// Package admin contiene los services del back-office: leads, dealers,
// usuarios, estadísticas, auditoría e impersonación.
//
// Las ediciones administrativas son CRUD directo sobre cada store. Las
// únicas operaciones que cruzan entidades (aceptar un lead, aprobar un
// dealer) delegan en el motor de onboarding.
package admin

import (
	"context"
	"time"

	"github.com/dropDatabas3/dealerdesk/internal/cache"
	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	jwti "github.com/dropDatabas3/dealerdesk/internal/jwt"
	"github.com/dropDatabas3/dealerdesk/internal/onboarding"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
)

// Engine es la parte del motor de onboarding que usa el back-office.
type Engine interface {
	AcceptDealer(ctx context.Context, leadID string) (*onboarding.AcceptResult, error)
	AcceptDealerByID(ctx context.Context, dealerID string) (*onboarding.AcceptResult, error)
}

type Deps struct {
	Users   repository.UserRepository
	Dealers repository.DealerRepository
	Leads   repository.LeadRepository
	Audit   repository.AuditRepository
	Engine  Engine
	Tokens  *jwti.Issuer
	Cache   cache.Client // opcional: sin cache, stats se calcula siempre
	Policy  password.Policy

	StatsTTL time.Duration
	Now      func() time.Time
}

type Services struct {
	Leads   LeadService
	Dealers DealerService
	Users   UserService
	Stats   StatsService
	Events  EventService
}

func NewServices(d Deps) Services {
	if d.StatsTTL <= 0 {
		d.StatsTTL = 30 * time.Second
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return Services{
		Leads:   NewLeadService(d),
		Dealers: NewDealerService(d),
		Users:   NewUserService(d),
		Stats:   NewStatsService(d),
		Events:  NewEventService(d),
	}
}
