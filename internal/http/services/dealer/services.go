// Package dealer contiene los services del portal de dealers: postulación,
// login sin password y entregas (uploads) del dealer autenticado.
package dealer

import (
	"context"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/onboarding"
)

// Engine es la parte del motor de onboarding que usa el portal.
type Engine interface {
	ApplyAsDealer(ctx context.Context, in onboarding.ApplyInput) (*onboarding.ApplyResult, error)
	DealerLogin(ctx context.Context, in onboarding.LoginInput) (*onboarding.LoginResult, error)
}

type Deps struct {
	Engine Engine
	Users  repository.UserRepository
	Leads  repository.LeadRepository
}

type Services struct {
	Portal  PortalService
	Uploads UploadService
}

func NewServices(d Deps) Services {
	return Services{
		Portal:  NewPortalService(d),
		Uploads: NewUploadService(d),
	}
}
