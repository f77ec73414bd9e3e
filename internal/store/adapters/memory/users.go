package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

type userRepo struct{ db *DB }

func copyUser(u *repository.User) *repository.User {
	cp := *u
	cp.Roles = cloneStrings(u.Roles)
	if u.DeletedAt != nil {
		t := *u.DeletedAt
		cp.DeletedAt = &t
	}
	return &cp
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	return copyUser(u), nil
}

// findByEmailLocked requiere el lock tomado.
func (r *userRepo) findByEmailLocked(email string) *repository.User {
	norm := repository.NormalizeEmail(email)
	for _, u := range r.db.users {
		if u.DeletedAt == nil && repository.NormalizeEmail(u.Email) == norm {
			return u
		}
	}
	return nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if u := r.findByEmailLocked(email); u != nil {
		return copyUser(u), nil
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	if strings.TrimSpace(in.Email) == "" {
		return nil, repository.ErrInvalidInput
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.findByEmailLocked(in.Email) != nil {
		return nil, repository.ErrConflict
	}
	now := r.db.now()
	u := &repository.User{
		ID:           newID(),
		Email:        repository.NormalizeEmail(in.Email),
		DisplayName:  in.DisplayName,
		Roles:        repository.MergeRoles(in.Roles),
		PasswordHash: in.PasswordHash,
		Profile:      in.Profile,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.db.users[u.ID] = u
	return copyUser(u), nil
}

func (r *userRepo) Update(ctx context.Context, id string, p repository.UserPatch) (*repository.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.Roles != nil {
		u.Roles = repository.MergeRoles(p.Roles)
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Profile != nil {
		u.Profile = *p.Profile
	}
	u.UpdatedAt = r.db.now()
	return copyUser(u), nil
}

func (r *userRepo) List(ctx context.Context, f repository.UserFilter) ([]repository.User, string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))

	rows := make([]*repository.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		if u.DeletedAt != nil {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(u.Email), q) &&
			!strings.Contains(strings.ToLower(u.DisplayName), q) {
			continue
		}
		if f.Cursor != "" && u.ID <= f.Cursor {
			continue
		}
		rows = append(rows, u)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		next = rows[limit-1].ID
	}
	out := make([]repository.User, 0, len(rows))
	for _, u := range rows {
		out = append(out, *copyUser(u))
	}
	return out, next, nil
}

func (r *userRepo) SoftDelete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok || u.DeletedAt != nil {
		return repository.ErrNotFound
	}
	now := r.db.now()
	u.DeletedAt = &now
	u.UpdatedAt = now
	return nil
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	n := 0
	for _, u := range r.db.users {
		if u.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}
