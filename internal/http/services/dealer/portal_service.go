package dealer

import (
	"context"

	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/dealer"
	"github.com/dropDatabas3/dealerdesk/internal/onboarding"
	"github.com/dropDatabas3/dealerdesk/internal/session"
)

// PortalService expone Apply y Login del motor de onboarding.
type PortalService interface {
	Apply(ctx context.Context, in dto.ApplyRequest) (*dto.ApplyResponse, error)
	Login(ctx context.Context, in dto.LoginRequest, meta session.Meta) (*onboarding.LoginResult, error)
}

type portalService struct {
	engine Engine
}

func NewPortalService(d Deps) PortalService {
	return &portalService{engine: d.Engine}
}

func (s *portalService) Apply(ctx context.Context, in dto.ApplyRequest) (*dto.ApplyResponse, error) {
	res, err := s.engine.ApplyAsDealer(ctx, onboarding.ApplyInput{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Country: in.Country,
		Message: in.Message,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ApplyResponse{ID: res.ID, Status: string(res.Status)}, nil
}

func (s *portalService) Login(ctx context.Context, in dto.LoginRequest, meta session.Meta) (*onboarding.LoginResult, error) {
	return s.engine.DealerLogin(ctx, onboarding.LoginInput{
		Email:     in.Email,
		Phone:     in.Phone,
		UserAgent: meta.UserAgent,
		IP:        meta.IP,
	})
}
