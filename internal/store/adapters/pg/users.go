package pg

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

type userRepo struct{ pool *pgxpool.Pool }

const userColumns = `id, email, display_name, roles, password_hash, profile, created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (*repository.User, error) {
	var (
		u       repository.User
		profile []byte
	)
	if err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Roles, &u.PasswordHash,
		&profile, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt); err != nil {
		return nil, err
	}
	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &u.Profile); err != nil {
			return nil, err
		}
	}
	u.Roles = emptyIfNil(u.Roles)
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	u, err := scanUser(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, mapErr("get user by id", err)
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = $1 AND deleted_at IS NULL`
	u, err := scanUser(r.pool.QueryRow(ctx, q, repository.NormalizeEmail(email)))
	if err != nil {
		return nil, mapErr("get user by email", err)
	}
	return u, nil
}

func (r *userRepo) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	if strings.TrimSpace(in.Email) == "" {
		return nil, repository.ErrInvalidInput
	}
	profile, err := json.Marshal(in.Profile)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	const q = `
		INSERT INTO users (id, email, display_name, roles, password_hash, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, q,
		newID(), repository.NormalizeEmail(in.Email), in.DisplayName,
		repository.MergeRoles(in.Roles), in.PasswordHash, profile, now))
	if err != nil {
		return nil, mapErr("create user", err)
	}
	return u, nil
}

func (r *userRepo) Update(ctx context.Context, id string, p repository.UserPatch) (*repository.User, error) {
	var set setList
	if p.DisplayName != nil {
		set.add("display_name", *p.DisplayName)
	}
	if p.Roles != nil {
		set.add("roles", repository.MergeRoles(p.Roles))
	}
	if p.PasswordHash != nil {
		set.add("password_hash", *p.PasswordHash)
	}
	if p.Profile != nil {
		b, err := json.Marshal(p.Profile)
		if err != nil {
			return nil, err
		}
		set.add("profile", b)
	}
	if set.empty() {
		return r.GetByID(ctx, id)
	}
	set.add("updated_at", time.Now().UTC())

	args := append(set.args, id)
	q := `UPDATE users SET ` + set.sql() + ` WHERE id = $` + itoa(len(args)) +
		` AND deleted_at IS NULL RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		return nil, mapErr("update user", err)
	}
	return u, nil
}

func (r *userRepo) List(ctx context.Context, f repository.UserFilter) ([]repository.User, string, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	var where whereList
	where.add("deleted_at IS NULL")
	if q := strings.TrimSpace(f.Query); q != "" {
		where.add("(email ILIKE ? OR display_name ILIKE ?)", likePattern(q), likePattern(q))
	}
	if f.Cursor != "" {
		where.add("id > ?", f.Cursor)
	}
	args := append(where.args, limit+1)
	q := `SELECT ` + userColumns + ` FROM users` + where.sql() +
		` ORDER BY id ASC LIMIT $` + itoa(len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, "", mapErr("list users", err)
	}
	defer rows.Close()

	var out []repository.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, "", mapErr("scan user", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, "", mapErr("list users", err)
	}

	next := ""
	if len(out) > limit {
		out = out[:limit]
		next = out[limit-1].ID
	}
	return out, next, nil
}

func (r *userRepo) SoftDelete(ctx context.Context, id string) error {
	const q = `UPDATE users SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return mapErr("soft delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE deleted_at IS NULL`).Scan(&n)
	return n, mapErr("count users", err)
}
