package auth

import (
	"context"

	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/auth"
)

// MeService devuelve el perfil del usuario autenticado.
type MeService interface {
	Me(ctx context.Context, userID, impersonatedBy string) (*dto.MeResponse, error)
}

type meService struct {
	deps Deps
}

func NewMeService(d Deps) MeService {
	return &meService{deps: d}
}

func (s *meService) Me(ctx context.Context, userID, impersonatedBy string) (*dto.MeResponse, error) {
	u, err := s.deps.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Roles:       u.Roles,
		Profile: dto.Profile{
			Phone:   u.Profile.Phone,
			Company: u.Profile.Company,
			Country: u.Profile.Country,
		},
		ImpersonatedBy: impersonatedBy,
	}, nil
}
