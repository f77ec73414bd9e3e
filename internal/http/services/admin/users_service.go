package admin

import (
	"context"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/dealerdesk/internal/http/errors"
	jwti "github.com/dropDatabas3/dealerdesk/internal/jwt"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// UserService administra el Identity Store. Nunca deriva datos de leads.
type UserService interface {
	List(ctx context.Context, q, cursor string, limit int) (*dto.UserList, error)
	Create(ctx context.Context, in dto.UserCreateRequest) (*repository.User, error)
	Get(ctx context.Context, id string) (*repository.User, error)
	Update(ctx context.Context, id string, in dto.UserUpdateRequest) (*repository.User, error)
	Delete(ctx context.Context, id string) error
	Impersonate(ctx context.Context, actorID, targetID string) (*dto.ImpersonateResponse, error)
}

type userService struct {
	users  repository.UserRepository
	audit  repository.AuditRepository
	tokens *jwti.Issuer
	policy password.Policy
}

func NewUserService(d Deps) UserService {
	return &userService{users: d.Users, audit: d.Audit, tokens: d.Tokens, policy: d.Policy}
}

func (s *userService) List(ctx context.Context, q, cursor string, limit int) (*dto.UserList, error) {
	switch {
	case limit <= 0:
		limit = defaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}
	items, next, err := s.users.List(ctx, repository.UserFilter{
		Query:  strings.TrimSpace(q),
		Limit:  limit,
		Cursor: strings.TrimSpace(cursor),
	})
	if err != nil {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	out := &dto.UserList{Items: items}
	if out.Items == nil {
		out.Items = []repository.User{}
	}
	if next != "" {
		out.NextCursor = &next
	}
	return out, nil
}

// Create da de alta un usuario. Sin password queda con un hash temporal
// inutilizable (solo puede entrar por el login de dealer o tras un update).
func (s *userService) Create(ctx context.Context, in dto.UserCreateRequest) (*repository.User, error) {
	email := repository.NormalizeEmail(in.Email)
	if email == "" {
		return nil, httperrors.ErrValidation.WithDetail("email is required")
	}

	hash, err := s.hashOrTemporary(in.Password, email)
	if err != nil {
		return nil, err
	}

	roles := repository.MergeRoles(nil, in.Roles...)
	if len(roles) == 0 {
		roles = []string{repository.RoleUser}
	}
	var profile repository.Profile
	if in.Profile != nil {
		profile = *in.Profile
	}

	u, err := s.users.Create(ctx, repository.CreateUserInput{
		Email:        email,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Roles:        roles,
		PasswordHash: hash,
		Profile:      profile,
	})
	if err != nil {
		if repository.IsConflict(err) {
			return nil, httperrors.ErrEmailAlreadyInUse
		}
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id string) (*repository.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, id string, in dto.UserUpdateRequest) (*repository.User, error) {
	patch := repository.UserPatch{
		DisplayName: in.DisplayName,
		Profile:     in.Profile,
	}
	if in.Roles != nil {
		patch.Roles = repository.MergeRoles(nil, in.Roles...)
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, httperrors.ErrValidation.WithDetail("password cannot be empty")
		}
		cur, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		hash, err := s.hashOrTemporary(*in.Password, cur.Email)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}
	return s.users.Update(ctx, id, patch)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.users.SoftDelete(ctx, id)
}

func (s *userService) hashOrTemporary(plain, email string) (string, error) {
	if plain == "" {
		h, err := password.TemporaryHash()
		if err != nil {
			return "", httperrors.ErrInternalServerError.WithCause(err)
		}
		return h, nil
	}
	if ok, reasons := s.policy.ValidateFor(plain, email); !ok {
		return "", httperrors.ErrPasswordTooWeak.WithDetail(strings.Join(reasons, ","))
	}
	h, err := password.Hash(plain)
	if err != nil {
		return "", httperrors.ErrInternalServerError.WithCause(err)
	}
	return h, nil
}

// Impersonate emite un access token del usuario destino con imp_by = actor.
// No hay refresh: la sesión impersonada dura lo que el access token.
// El evento de auditoría es obligatorio; si no se puede registrar, no se
// emite el token.
func (s *userService) Impersonate(ctx context.Context, actorID, targetID string) (*dto.ImpersonateResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("admin.users"),
		logger.Op("Impersonate"),
	)

	if actorID == "" {
		return nil, httperrors.ErrUnauthorized
	}
	if actorID == targetID {
		return nil, httperrors.ErrValidation.WithDetail("cannot impersonate yourself")
	}

	u, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if s.audit == nil {
		return nil, httperrors.ErrServiceUnavailable.WithDetail("audit log not configured")
	}
	if err := s.audit.Append(ctx, repository.AuditEvent{
		ActorID: actorID,
		Action:  repository.AuditImpersonate,
		Target:  "user:" + u.ID,
		Meta:    map[string]any{"roles": u.Roles},
	}); err != nil {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}

	tok, _, err := s.tokens.IssueAccess(u.ID, u.Roles, actorID)
	if err != nil {
		return nil, httperrors.ErrInternalServerError.WithCause(err)
	}
	log.Info("impersonation token issued", logger.UserID(u.ID), logger.String("actor_id", actorID))

	return &dto.ImpersonateResponse{
		AccessToken: tok,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.AccessTTL.Seconds()),
		UserID:      u.ID,
		Roles:       u.Roles,
	}, nil
}
