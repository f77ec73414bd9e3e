package repository

import (
	"context"
	"time"
)

// Session representa una sesión de refresh persistida.
// Nunca guardamos el refresh token en claro, solo su hash.
type Session struct {
	ID          string
	UserID      string
	RefreshHash string
	UserAgent   string
	IP          string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	RevokedAt   *time.Time
}

// Active indica si la sesión sigue siendo utilizable en el instante dado.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// CreateSessionInput contiene los datos para crear una sesión.
type CreateSessionInput struct {
	UserID      string
	RefreshHash string
	UserAgent   string
	IP          string
	ExpiresAt   time.Time
}

// SessionRepository define operaciones para gestionar sesiones de refresh.
type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) (*Session, error)

	// GetByRefreshHash obtiene la sesión por hash, revocada o no.
	GetByRefreshHash(ctx context.Context, hash string) (*Session, error)

	// Revoke marca la sesión como revocada. Idempotente.
	Revoke(ctx context.Context, id string) error

	// RevokeAllForUser revoca todas las sesiones activas del usuario.
	RevokeAllForUser(ctx context.Context, userID string) (int, error)
}
