package auth

import (
	"context"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/dealerdesk/internal/http/errors"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
	"github.com/dropDatabas3/dealerdesk/internal/session"
)

// RegisterService da de alta usuarios con password.
type RegisterService interface {
	Register(ctx context.Context, in dto.RegisterRequest, meta session.Meta) (*dto.TokenResponse, error)
}

type registerService struct {
	deps Deps
}

func NewRegisterService(d Deps) RegisterService {
	return &registerService{deps: d}
}

// Register crea el usuario y devuelve tokens. El primer usuario del
// sistema recibe rol admin; los siguientes, user.
func (s *registerService) Register(ctx context.Context, in dto.RegisterRequest, meta session.Meta) (*dto.TokenResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("Register"),
	)

	in.Email = repository.NormalizeEmail(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if ok, reasons := s.deps.Policy.ValidateFor(in.Password, in.Email); !ok {
		return nil, httperrors.ErrPasswordTooWeak.WithDetail(strings.Join(reasons, ","))
	}

	if _, err := s.deps.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !repository.IsNotFound(err) {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}

	n, err := s.deps.Users.Count(ctx)
	if err != nil {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	roles := []string{repository.RoleUser}
	if n == 0 {
		roles = []string{repository.RoleAdmin}
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, httperrors.ErrInternalServerError.WithCause(err)
	}

	u, err := s.deps.Users.Create(ctx, repository.CreateUserInput{
		Email:        in.Email,
		DisplayName:  in.DisplayName,
		Roles:        roles,
		PasswordHash: hash,
	})
	if err != nil {
		if repository.IsConflict(err) {
			return nil, ErrEmailTaken
		}
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	log.Info("user registered", logger.UserID(u.ID), logger.Roles(u.Roles))

	return issue(ctx, s.deps.Sessions, u, meta)
}

func issue(ctx context.Context, sessions *session.Issuer, u *repository.User, meta session.Meta) (*dto.TokenResponse, error) {
	pair, err := sessions.Issue(ctx, session.Subject{UserID: u.ID, Roles: u.Roles}, meta)
	if err != nil {
		return nil, httperrors.ErrInternalServerError.WithCause(err)
	}
	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
