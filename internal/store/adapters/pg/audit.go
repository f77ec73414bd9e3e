package pg

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

type auditRepo struct{ pool *pgxpool.Pool }

func (r *auditRepo) Append(ctx context.Context, ev repository.AuditEvent) error {
	if ev.ID == "" {
		ev.ID = newID()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	meta, err := json.Marshal(ev.Meta)
	if err != nil {
		return err
	}
	const q = `INSERT INTO audit_events (id, actor_id, action, target, meta, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.pool.Exec(ctx, q, ev.ID, ev.ActorID, ev.Action, ev.Target, meta, ev.CreatedAt)
	return mapErr("append audit", err)
}

func (r *auditRepo) List(ctx context.Context, limit int) ([]repository.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `SELECT id, actor_id, action, target, meta, created_at FROM audit_events ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, mapErr("list audit", err)
	}
	defer rows.Close()

	out := []repository.AuditEvent{}
	for rows.Next() {
		var (
			ev   repository.AuditEvent
			meta []byte
		)
		if err := rows.Scan(&ev.ID, &ev.ActorID, &ev.Action, &ev.Target, &meta, &ev.CreatedAt); err != nil {
			return nil, mapErr("scan audit", err)
		}
		if len(meta) > 0 && string(meta) != "null" {
			_ = json.Unmarshal(meta, &ev.Meta)
		}
		out = append(out, ev)
	}
	return out, mapErr("list audit", rows.Err())
}

func itoa(n int) string { return strconv.Itoa(n) }
