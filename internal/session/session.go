// Package session emite pares access/refresh y persiste la sesión
// asociada al refresh token (solo su hash).
package session

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	jwti "github.com/dropDatabas3/dealerdesk/internal/jwt"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
)

// ErrInvalidRefresh cubre refresh desconocido, revocado, expirado o con
// firma inválida. El caller no distingue entre ellos.
var ErrInvalidRefresh = errors.New("session: invalid refresh token")

// HashRefresh es lo que se guarda en sessions.refresh_hash: sha256 del
// token en base64url sin padding. El token en claro nunca se persiste.
func HashRefresh(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// Subject identifica al usuario para quien se emiten los tokens.
type Subject struct {
	UserID string
	Roles  []string
}

// Meta del cliente que pidió la sesión.
type Meta struct {
	UserAgent string
	IP        string
}

// TokenPair es lo que se devuelve al cliente.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // segundos del access
	SessionID    string `json:"-"`         // vacío si no se pudo persistir
}

// Issuer combina el firmador JWT con el repositorio de sesiones.
type Issuer struct {
	tokens   *jwti.Issuer
	sessions repository.SessionRepository
	users    repository.UserRepository
	now      func() time.Time
}

func NewIssuer(tok *jwti.Issuer, sessions repository.SessionRepository, users repository.UserRepository) *Issuer {
	return &Issuer{tokens: tok, sessions: sessions, users: users, now: time.Now}
}

// Tokens expone el firmador (middlewares de auth, impersonación).
func (i *Issuer) Tokens() *jwti.Issuer { return i.tokens }

// Issue firma access + refresh y registra la sesión. La persistencia es
// best-effort: si falla se loguea y los tokens igual se devuelven.
func (i *Issuer) Issue(ctx context.Context, sub Subject, meta Meta) (*TokenPair, error) {
	log := logger.From(ctx).With(logger.Component("session"), logger.Op("issue"), logger.UserID(sub.UserID))

	access, _, err := i.tokens.IssueAccess(sub.UserID, sub.Roles, "")
	if err != nil {
		return nil, fmt.Errorf("session: sign access: %w", err)
	}
	refresh, refreshExp, err := i.tokens.IssueRefresh(sub.UserID)
	if err != nil {
		return nil, fmt.Errorf("session: sign refresh: %w", err)
	}

	pair := &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(i.tokens.AccessTTL / time.Second),
	}

	if i.sessions != nil {
		s, err := i.sessions.Create(ctx, repository.CreateSessionInput{
			UserID:      sub.UserID,
			RefreshHash: HashRefresh(refresh),
			UserAgent:   meta.UserAgent,
			IP:          meta.IP,
			ExpiresAt:   refreshExp,
		})
		if err != nil {
			log.Warn("session persist failed", logger.Err(err))
		} else {
			pair.SessionID = s.ID
		}
	}
	return pair, nil
}

// Rotate cambia un refresh válido por un par nuevo. La sesión vieja queda
// revocada; reusar el mismo refresh devuelve ErrInvalidRefresh.
func (i *Issuer) Rotate(ctx context.Context, refreshToken string, meta Meta) (*TokenPair, error) {
	// Paso 1: firma y expiración
	claims, err := i.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	// Paso 2: sesión viva por hash
	s, err := i.sessions.GetByRefreshHash(ctx, HashRefresh(refreshToken))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidRefresh
		}
		return nil, fmt.Errorf("session: lookup: %w", err)
	}
	if !s.Active(i.now()) || s.UserID != claims.Subject {
		return nil, ErrInvalidRefresh
	}

	// Paso 3: revocar antes de emitir
	if err := i.sessions.Revoke(ctx, s.ID); err != nil {
		return nil, fmt.Errorf("session: revoke: %w", err)
	}

	// Paso 4: roles frescos del usuario
	u, err := i.users.GetByID(ctx, s.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidRefresh
		}
		return nil, fmt.Errorf("session: load user: %w", err)
	}

	return i.Issue(ctx, Subject{UserID: u.ID, Roles: u.Roles}, meta)
}

// Revoke cierra la sesión del refresh dado. Refresh desconocido no es error.
func (i *Issuer) Revoke(ctx context.Context, refreshToken string) error {
	s, err := i.sessions.GetByRefreshHash(ctx, HashRefresh(refreshToken))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("session: lookup: %w", err)
	}
	if s.RevokedAt != nil {
		return nil
	}
	if err := i.sessions.Revoke(ctx, s.ID); err != nil && !repository.IsNotFound(err) {
		return fmt.Errorf("session: revoke: %w", err)
	}
	return nil
}
