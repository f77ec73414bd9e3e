package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/store"
)

func TestRegisteredAdapter(t *testing.T) {
	s, err := store.Open(context.Background(), store.AdapterConfig{Name: "memory"})
	require.NoError(t, err)
	assert.Equal(t, "memory", s.Name())
	assert.False(t, s.Durable())
}

func TestUsers_EmailIsCaseInsensitiveAndUnique(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	u, err := users.Create(ctx, repository.CreateUserInput{Email: " Ops@Acme.com ", Roles: []string{"dealer"}})
	require.NoError(t, err)
	assert.Equal(t, "ops@acme.com", u.Email)

	got, err := users.GetByEmail(ctx, "OPS@ACME.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.Create(ctx, repository.CreateUserInput{Email: "ops@acme.com"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestUsers_SoftDeleteFreesEmail(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	u, err := users.Create(ctx, repository.CreateUserInput{Email: "a@b.com"})
	require.NoError(t, err)
	require.NoError(t, users.SoftDelete(ctx, u.ID))

	_, err = users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = users.GetByEmail(ctx, "a@b.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = users.Create(ctx, repository.CreateUserInput{Email: "a@b.com"})
	assert.NoError(t, err)
}

func TestUsers_ListPaginates(t *testing.T) {
	ctx := context.Background()
	users := New().Users()
	for _, e := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := users.Create(ctx, repository.CreateUserInput{Email: e})
		require.NoError(t, err)
	}

	page1, next, err := users.List(ctx, repository.UserFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)
	require.NotEmpty(t, next)

	page2, next2, err := users.List(ctx, repository.UserFilter{Limit: 2, Cursor: next})
	require.NoError(t, err)
	assert.Len(t, page2, 1)
	assert.Empty(t, next2)
}

func TestLeads_FindLatestByEmailAndType(t *testing.T) {
	ctx := context.Background()
	db := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := base
	db.SetClock(func() time.Time { tick = tick.Add(time.Minute); return tick })
	leads := db.Leads()

	_, err := leads.Create(ctx, repository.CreateLeadInput{Name: "old", Email: "x@y.com", Type: repository.LeadDealer})
	require.NoError(t, err)
	_, err = leads.Create(ctx, repository.CreateLeadInput{Name: "media", Email: "x@y.com", Type: repository.LeadMedia})
	require.NoError(t, err)
	latest, err := leads.Create(ctx, repository.CreateLeadInput{Name: "new", Email: "X@Y.com", Type: repository.LeadDealer})
	require.NoError(t, err)

	got, err := leads.FindLatestByEmailAndType(ctx, "x@y.com", repository.LeadDealer)
	require.NoError(t, err)
	assert.Equal(t, latest.ID, got.ID)
	assert.Equal(t, repository.LeadNew, got.Status)

	_, err = leads.FindLatestByEmailAndType(ctx, "nobody@y.com", repository.LeadDealer)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLeads_ListFilters(t *testing.T) {
	ctx := context.Background()
	db := New()
	day := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	db.SetClock(func() time.Time { return day })
	leads := db.Leads()

	_, err := leads.Create(ctx, repository.CreateLeadInput{Name: "Acme", Email: "a@acme.com", Company: "Acme", Type: repository.LeadDealer})
	require.NoError(t, err)
	_, err = leads.Create(ctx, repository.CreateLeadInput{Name: "Zed", Email: "z@zed.com", Type: repository.LeadPrototype, Tags: []string{"vip"}})
	require.NoError(t, err)

	items, err := leads.List(ctx, repository.LeadFilter{Query: "acme"})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = leads.List(ctx, repository.LeadFilter{Type: repository.LeadPrototype, Tag: "vip"})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	from := day.Add(time.Hour)
	items, err = leads.List(ctx, repository.LeadFilter{From: &from})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDealers_FindByContactEmailAndCount(t *testing.T) {
	ctx := context.Background()
	dealers := New().Dealers()

	d, err := dealers.Create(ctx, repository.CreateDealerInput{Org: "Acme", ContactEmail: "Ops@Acme.com"})
	require.NoError(t, err)
	assert.Equal(t, repository.DealerPending, d.Status)

	got, err := dealers.FindByContactEmail(ctx, "ops@acme.com")
	require.NoError(t, err)
	assert.Equal(t, "Ops@Acme.com", got.ContactEmail)

	active := repository.DealerActive
	_, err = dealers.Update(ctx, d.ID, repository.DealerPatch{Status: &active})
	require.NoError(t, err)

	n, err := dealers.CountByStatus(ctx, repository.DealerActive)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	deleted, err := dealers.DeleteMany(ctx, []string{d.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
}

func TestDealers_ContactEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	dealers := New().Dealers()

	a, err := dealers.Create(ctx, repository.CreateDealerInput{ContactEmail: "a@x.com"})
	require.NoError(t, err)
	b, err := dealers.Create(ctx, repository.CreateDealerInput{ContactEmail: "b@x.com"})
	require.NoError(t, err)

	_, err = dealers.Create(ctx, repository.CreateDealerInput{ContactEmail: " A@X.com "})
	assert.ErrorIs(t, err, repository.ErrConflict)

	taken := "A@x.COM"
	_, err = dealers.Update(ctx, b.ID, repository.DealerPatch{ContactEmail: &taken})
	assert.ErrorIs(t, err, repository.ErrConflict)

	same := "a@x.com"
	_, err = dealers.Update(ctx, a.ID, repository.DealerPatch{ContactEmail: &same})
	assert.NoError(t, err)

	// sin email no hay unicidad
	_, err = dealers.Create(ctx, repository.CreateDealerInput{Org: "x"})
	require.NoError(t, err)
	_, err = dealers.Create(ctx, repository.CreateDealerInput{Org: "y"})
	assert.NoError(t, err)
}

func TestSessions_RevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	sessions := New().Sessions()

	s, err := sessions.Create(ctx, repository.CreateSessionInput{UserID: "u1", RefreshHash: "h1", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.True(t, s.Active(time.Now()))

	require.NoError(t, sessions.Revoke(ctx, s.ID))
	require.NoError(t, sessions.Revoke(ctx, s.ID))

	got, err := sessions.GetByRefreshHash(ctx, "h1")
	require.NoError(t, err)
	assert.False(t, got.Active(time.Now()))
}

func TestAudit_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	audit := New().Audit()
	require.NoError(t, audit.Append(ctx, repository.AuditEvent{Action: "first"}))
	require.NoError(t, audit.Append(ctx, repository.AuditEvent{Action: "second"}))

	items, err := audit.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "second", items[0].Action)
}
