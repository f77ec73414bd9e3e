package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	jwti "github.com/dropDatabas3/dealerdesk/internal/jwt"
	"github.com/dropDatabas3/dealerdesk/internal/store/adapters/memory"
)

type failingSessions struct{ repository.SessionRepository }

func (failingSessions) Create(context.Context, repository.CreateSessionInput) (*repository.Session, error) {
	return nil, errors.New("db down")
}

func setup(t *testing.T) (*Issuer, *memory.DB, *repository.User) {
	t.Helper()
	db := memory.New()
	u, err := db.Users().Create(context.Background(), repository.CreateUserInput{
		Email: "dealer@acme.com",
		Roles: []string{repository.RoleDealer},
	})
	require.NoError(t, err)
	tok := jwti.NewIssuer("test", "a-secret", "r-secret")
	return NewIssuer(tok, db.Sessions(), db.Users()), db, u
}

func TestIssue_PersistsHashedRefresh(t *testing.T) {
	iss, db, u := setup(t)
	ctx := context.Background()

	pair, err := iss.Issue(ctx, Subject{UserID: u.ID, Roles: u.Roles}, Meta{UserAgent: "ua", IP: "10.0.0.1"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.SessionID)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	s, err := db.Sessions().GetByRefreshHash(ctx, HashRefresh(pair.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, u.ID, s.UserID)
	assert.Equal(t, "ua", s.UserAgent)
	assert.Equal(t, "10.0.0.1", s.IP)

	claims, err := iss.Tokens().ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, []string{"dealer"}, claims.Roles)
}

func TestIssue_SessionFailureIsSwallowed(t *testing.T) {
	db := memory.New()
	tok := jwti.NewIssuer("test", "a-secret", "r-secret")
	iss := NewIssuer(tok, failingSessions{db.Sessions()}, db.Users())

	pair, err := iss.Issue(context.Background(), Subject{UserID: "u1"}, Meta{})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Empty(t, pair.SessionID)
}

func TestRotate(t *testing.T) {
	iss, _, u := setup(t)
	ctx := context.Background()

	first, err := iss.Issue(ctx, Subject{UserID: u.ID, Roles: u.Roles}, Meta{})
	require.NoError(t, err)

	second, err := iss.Rotate(ctx, first.RefreshToken, Meta{})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// el refresh viejo quedó revocado
	_, err = iss.Rotate(ctx, first.RefreshToken, Meta{})
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	// el nuevo sigue vivo
	_, err = iss.Rotate(ctx, second.RefreshToken, Meta{})
	assert.NoError(t, err)
}

func TestRotate_Garbage(t *testing.T) {
	iss, _, _ := setup(t)
	_, err := iss.Rotate(context.Background(), "not-a-jwt", Meta{})
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRotate_UnknownSession(t *testing.T) {
	iss, _, u := setup(t)
	refresh, _, err := iss.Tokens().IssueRefresh(u.ID)
	require.NoError(t, err)

	_, err = iss.Rotate(context.Background(), refresh, Meta{})
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRevoke_Idempotent(t *testing.T) {
	iss, _, u := setup(t)
	ctx := context.Background()

	pair, err := iss.Issue(ctx, Subject{UserID: u.ID}, Meta{})
	require.NoError(t, err)

	require.NoError(t, iss.Revoke(ctx, pair.RefreshToken))
	require.NoError(t, iss.Revoke(ctx, pair.RefreshToken))
	require.NoError(t, iss.Revoke(ctx, "unknown"))

	_, err = iss.Rotate(ctx, pair.RefreshToken, Meta{})
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestHashRefresh(t *testing.T) {
	assert.Equal(t, "ungWv48Bz-pBQUDeXa4iI7ADYaOWF3qctBD_YfIAFa0", HashRefresh("abc"))
	assert.NotEqual(t, HashRefresh("a"), HashRefresh("b"))
}
