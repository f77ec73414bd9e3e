package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

type sessionRepo struct{ pool *pgxpool.Pool }

const sessionColumns = `id, user_id, refresh_hash, user_agent, ip, created_at, expires_at, revoked_at`

func scanSession(row pgx.Row) (*repository.Session, error) {
	var s repository.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.RefreshHash, &s.UserAgent, &s.IP,
		&s.CreatedAt, &s.ExpiresAt, &s.RevokedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Create(ctx context.Context, in repository.CreateSessionInput) (*repository.Session, error) {
	const q = `
		INSERT INTO sessions (id, user_id, refresh_hash, user_agent, ip, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + sessionColumns
	s, err := scanSession(r.pool.QueryRow(ctx, q, newID(), in.UserID, in.RefreshHash,
		in.UserAgent, in.IP, time.Now().UTC(), in.ExpiresAt))
	if err != nil {
		return nil, mapErr("create session", err)
	}
	return s, nil
}

func (r *sessionRepo) GetByRefreshHash(ctx context.Context, hash string) (*repository.Session, error) {
	s, err := scanSession(r.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE refresh_hash = $1`, hash))
	if err != nil {
		return nil, mapErr("get session", err)
	}
	return s, nil
}

func (r *sessionRepo) Revoke(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE sessions SET revoked_at = COALESCE(revoked_at, now()) WHERE id = $1`, id)
	if err != nil {
		return mapErr("revoke session", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *sessionRepo) RevokeAllForUser(ctx context.Context, userID string) (int, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE sessions SET revoked_at = now() WHERE user_id = $1 AND revoked_at IS NULL`, userID)
	if err != nil {
		return 0, mapErr("revoke user sessions", err)
	}
	return int(tag.RowsAffected()), nil
}
