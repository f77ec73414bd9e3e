package memory

import (
	"context"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

type auditRepo struct{ db *DB }

func (r *auditRepo) Append(ctx context.Context, ev repository.AuditEvent) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if ev.ID == "" {
		ev.ID = newID()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = r.db.now()
	}
	ev.Meta = cloneMeta(ev.Meta)
	r.db.audit = append(r.db.audit, ev)
	return nil
}

func (r *auditRepo) List(ctx context.Context, limit int) ([]repository.AuditEvent, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if limit <= 0 || limit > len(r.db.audit) {
		limit = len(r.db.audit)
	}
	out := make([]repository.AuditEvent, 0, limit)
	for i := len(r.db.audit) - 1; i >= 0 && len(out) < limit; i-- {
		ev := r.db.audit[i]
		ev.Meta = cloneMeta(ev.Meta)
		out = append(out, ev)
	}
	return out, nil
}
