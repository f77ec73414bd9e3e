package memory

import (
	"context"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

type sessionRepo struct{ db *DB }

func copySession(s *repository.Session) *repository.Session {
	cp := *s
	if s.RevokedAt != nil {
		t := *s.RevokedAt
		cp.RevokedAt = &t
	}
	return &cp
}

func (r *sessionRepo) Create(ctx context.Context, in repository.CreateSessionInput) (*repository.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, s := range r.db.sessions {
		if s.RefreshHash == in.RefreshHash {
			return nil, repository.ErrConflict
		}
	}
	s := &repository.Session{
		ID:          newID(),
		UserID:      in.UserID,
		RefreshHash: in.RefreshHash,
		UserAgent:   in.UserAgent,
		IP:          in.IP,
		CreatedAt:   r.db.now(),
		ExpiresAt:   in.ExpiresAt,
	}
	r.db.sessions[s.ID] = s
	return copySession(s), nil
}

func (r *sessionRepo) GetByRefreshHash(ctx context.Context, hash string) (*repository.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, s := range r.db.sessions {
		if s.RefreshHash == hash {
			return copySession(s), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *sessionRepo) Revoke(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	if s.RevokedAt == nil {
		now := r.db.now()
		s.RevokedAt = &now
	}
	return nil
}

func (r *sessionRepo) RevokeAllForUser(ctx context.Context, userID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := r.db.now()
	n := 0
	for _, s := range r.db.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			t := now
			s.RevokedAt = &t
			n++
		}
	}
	return n, nil
}
