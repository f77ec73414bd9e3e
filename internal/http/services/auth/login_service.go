package auth

import (
	"context"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/dealerdesk/internal/http/errors"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
	"github.com/dropDatabas3/dealerdesk/internal/session"
)

// LoginService autentica email + password.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest, meta session.Meta) (*dto.TokenResponse, error)
}

type loginService struct {
	deps Deps
}

func NewLoginService(d Deps) LoginService {
	return &loginService{deps: d}
}

func (s *loginService) Login(ctx context.Context, in dto.LoginRequest, meta session.Meta) (*dto.TokenResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	email := repository.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.deps.Users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			// Mismo error que password inválido: no revelar existencia.
			return nil, ErrInvalidCredentials
		}
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	if !password.Verify(in.Password, u.PasswordHash) {
		log.Debug("password mismatch", logger.UserID(u.ID))
		return nil, ErrInvalidCredentials
	}

	return issue(ctx, s.deps.Sessions, u, meta)
}
