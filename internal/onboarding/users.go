package onboarding

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
)

// provision describe cómo crear o completar al usuario de un dealer.
type provision struct {
	email       string
	displayName string
	profile     repository.Profile
	// mergeProfile aplica profile sobre un usuario existente.
	mergeProfile bool
	// prepare, si está, completa displayName/profile justo antes de crear
	// al usuario. No corre cuando el usuario ya existe.
	prepare func(ctx context.Context, p *provision)
}

// resolveDealerUser busca el usuario por email normalizado. Si existe le
// agrega el rol dealer (y el profile si corresponde); si no, lo crea con un
// hash temporal inutilizable.
func (e *Engine) resolveDealerUser(ctx context.Context, p provision) (*repository.User, error) {
	email := repository.NormalizeEmail(p.email)

	u, err := e.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return e.grantDealer(ctx, u, p)
	case !repository.IsNotFound(err):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if p.prepare != nil {
		p.prepare(ctx, &p)
	}
	hash, err := e.tempHash()
	if err != nil {
		return nil, fmt.Errorf("temporary password: %w", err)
	}
	u, err = e.users.Create(ctx, repository.CreateUserInput{
		Email:        email,
		DisplayName:  firstNonEmpty(p.displayName, email),
		Roles:        []string{repository.RoleDealer},
		PasswordHash: hash,
		Profile:      p.profile,
	})
	if repository.IsConflict(err) {
		// Otro request lo creó entre el lookup y el insert.
		existing, gerr := e.users.GetByEmail(ctx, email)
		if gerr != nil {
			return nil, fmt.Errorf("lookup user after conflict: %w", gerr)
		}
		return e.grantDealer(ctx, existing, p)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.From(ctx).Info("dealer user provisioned", logger.UserID(u.ID))
	return u, nil
}

func (e *Engine) grantDealer(ctx context.Context, u *repository.User, p provision) (*repository.User, error) {
	var patch repository.UserPatch
	changed := false

	if !u.HasRole(repository.RoleDealer) {
		patch.Roles = repository.MergeRoles(u.Roles, repository.RoleDealer)
		changed = true
	}
	if p.mergeProfile {
		merged := mergeProfile(u.Profile, p.profile)
		if merged != u.Profile {
			patch.Profile = &merged
			changed = true
		}
	}
	if !changed {
		return u, nil
	}

	updated, err := e.users.Update(ctx, u.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}
