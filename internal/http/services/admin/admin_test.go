package admin

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/dealerdesk/internal/cache"
	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/dealerdesk/internal/http/errors"
	jwti "github.com/dropDatabas3/dealerdesk/internal/jwt"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
	"github.com/dropDatabas3/dealerdesk/internal/store/adapters/memory"
)

func newTestServices(t *testing.T) (Services, *memory.DB, *jwti.Issuer) {
	t.Helper()
	st := memory.New()
	tok := jwti.NewIssuer("test", "a-secret", "r-secret")
	return NewServices(Deps{
		Users:    st.Users(),
		Dealers:  st.Dealers(),
		Leads:    st.Leads(),
		Audit:    st.Audit(),
		Tokens:   tok,
		Cache:    cache.NewMemory("t:", time.Minute),
		Policy:   password.DefaultPolicy(),
		StatsTTL: time.Minute,
	}), st, tok
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var ae *httperrors.AppError
	require.True(t, errors.As(err, &ae), "expected AppError, got %v", err)
	return ae.HTTPStatus
}

func TestStats_CountsAndCaches(t *testing.T) {
	ctx := context.Background()
	s, st, _ := newTestServices(t)

	for _, typ := range []repository.LeadType{repository.LeadPrototype, repository.LeadPrototype, repository.LeadDealer} {
		_, err := st.Leads().Create(ctx, repository.CreateLeadInput{Name: "n", Email: "x@y.io", Type: typ, Status: repository.LeadNew})
		require.NoError(t, err)
	}
	for i, status := range []repository.DealerStatus{repository.DealerActive, repository.DealerPending} {
		_, err := st.Dealers().Create(ctx, repository.CreateDealerInput{
			Org:          "org",
			ContactEmail: []string{"a@d.io", "b@d.io"}[i],
			Status:       status,
		})
		require.NoError(t, err)
	}

	got, err := s.Stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.Stats{TotalLeads: 3, ActiveDealers: 1, PendingDealers: 1, Proto30d: 2}, *got)

	// dentro del TTL se sirve desde cache
	_, err = st.Leads().Create(ctx, repository.CreateLeadInput{Name: "n", Email: "z@y.io", Type: repository.LeadMedia, Status: repository.LeadNew})
	require.NoError(t, err)
	again, err := s.Stats.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, again.TotalLeads)
}

func TestImpersonate(t *testing.T) {
	ctx := context.Background()
	s, st, tok := newTestServices(t)

	admin, err := st.Users().Create(ctx, repository.CreateUserInput{Email: "root@x.io", Roles: []string{repository.RoleAdmin}})
	require.NoError(t, err)
	target, err := st.Users().Create(ctx, repository.CreateUserInput{Email: "ops@acme.com", Roles: []string{repository.RoleDealer}})
	require.NoError(t, err)

	t.Run("self is rejected", func(t *testing.T) {
		_, err := s.Users.Impersonate(ctx, admin.ID, admin.ID)
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})

	t.Run("token carries imp_by and is audited", func(t *testing.T) {
		res, err := s.Users.Impersonate(ctx, admin.ID, target.ID)
		require.NoError(t, err)
		assert.Equal(t, target.ID, res.UserID)

		claims, err := tok.ParseAccess(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, target.ID, claims.Subject)
		assert.Equal(t, admin.ID, claims.ImpersonatedBy)
		assert.Equal(t, []string{repository.RoleDealer}, claims.Roles)

		events, err := st.Audit().List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, repository.AuditImpersonate, events[0].Action)
		assert.Equal(t, admin.ID, events[0].ActorID)
	})
}

func TestDealers_CreateRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestServices(t)

	d, err := s.Dealers.Create(ctx, dto.DealerCreateRequest{Org: "Acme", Email: "ops@acme.com"})
	require.NoError(t, err)
	assert.Equal(t, repository.DealerPending, d.Status)

	_, err = s.Dealers.Create(ctx, dto.DealerCreateRequest{Org: "Acme 2", Email: "OPS@acme.com"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	_, err = s.Dealers.Create(ctx, dto.DealerCreateRequest{Email: "x@acme.com"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestDealers_UpdateRejectsTakenEmail(t *testing.T) {
	ctx := context.Background()
	s, st, _ := newTestServices(t)

	a, err := s.Dealers.Create(ctx, dto.DealerCreateRequest{Org: "A", Email: "a@x.com"})
	require.NoError(t, err)
	b, err := s.Dealers.Create(ctx, dto.DealerCreateRequest{Org: "B", Email: "b@x.com"})
	require.NoError(t, err)

	taken := "A@X.com"
	_, err = s.Dealers.Update(ctx, b.ID, dto.DealerUpdateRequest{ContactEmail: &taken})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	got, err := st.Dealers().FindByContactEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	// el propio email, con otro formato, no es conflicto
	own := " B@x.com "
	upd, err := s.Dealers.Update(ctx, b.ID, dto.DealerUpdateRequest{ContactEmail: &own})
	require.NoError(t, err)
	assert.Equal(t, "B@x.com", upd.ContactEmail)

	blank := "  "
	_, err = s.Dealers.Update(ctx, b.ID, dto.DealerUpdateRequest{ContactEmail: &blank})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestUsers_CreateWithoutPassword(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestServices(t)

	u, err := s.Users.Create(ctx, dto.UserCreateRequest{Email: " New@Team.io "})
	require.NoError(t, err)
	assert.Equal(t, "new@team.io", u.Email)
	assert.Equal(t, []string{repository.RoleUser}, u.Roles)
	assert.NotEmpty(t, u.PasswordHash)
	assert.False(t, password.Verify("", u.PasswordHash))

	_, err = s.Users.Create(ctx, dto.UserCreateRequest{Email: "new@team.io"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestUsers_ListPaginates(t *testing.T) {
	ctx := context.Background()
	s, st, _ := newTestServices(t)

	for _, e := range []string{"a@x.io", "b@x.io", "c@x.io"} {
		_, err := st.Users().Create(ctx, repository.CreateUserInput{Email: e})
		require.NoError(t, err)
	}

	page, err := s.Users.List(ctx, "", "", 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.NotNil(t, page.NextCursor)

	rest, err := s.Users.List(ctx, "", *page.NextCursor, 2)
	require.NoError(t, err)
	assert.Len(t, rest.Items, 1)
	assert.Nil(t, rest.NextCursor)
}
