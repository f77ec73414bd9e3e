package auth

import (
	"context"
	"strings"

	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/auth"
	"github.com/dropDatabas3/dealerdesk/internal/session"
)

// SessionService rota y revoca refresh tokens.
type SessionService interface {
	Refresh(ctx context.Context, in dto.RefreshRequest, meta session.Meta) (*dto.TokenResponse, error)
	Logout(ctx context.Context, in dto.LogoutRequest) error
}

type sessionService struct {
	deps Deps
}

func NewSessionService(d Deps) SessionService {
	return &sessionService{deps: d}
}

func (s *sessionService) Refresh(ctx context.Context, in dto.RefreshRequest, meta session.Meta) (*dto.TokenResponse, error) {
	rt := strings.TrimSpace(in.RefreshToken)
	if rt == "" {
		return nil, session.ErrInvalidRefresh
	}
	pair, err := s.deps.Sessions.Rotate(ctx, rt, meta)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// Logout es idempotente: sin token o con token desconocido no falla.
func (s *sessionService) Logout(ctx context.Context, in dto.LogoutRequest) error {
	rt := strings.TrimSpace(in.RefreshToken)
	if rt == "" {
		return nil
	}
	return s.deps.Sessions.Revoke(ctx, rt)
}
