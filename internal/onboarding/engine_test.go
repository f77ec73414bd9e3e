package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	jwti "github.com/dropDatabas3/dealerdesk/internal/jwt"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
	"github.com/dropDatabas3/dealerdesk/internal/session"
	"github.com/dropDatabas3/dealerdesk/internal/store/adapters/memory"
)

func init() { password.Cost = bcrypt.MinCost }

type fixture struct {
	db     *memory.DB
	tokens *jwti.Issuer
	engine *Engine
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	db := memory.New()
	tok := jwti.NewIssuer("test", "access", "refresh")
	return &fixture{
		db:     db,
		tokens: tok,
		engine: New(Deps{
			Users:   db.Users(),
			Dealers: db.Dealers(),
			Leads:   db.Leads(),
			Audit:   db.Audit(),
			Tokens:  session.NewIssuer(tok, db.Sessions(), db.Users()),
		}, opts),
	}
}

func (f *fixture) withDealers(d repository.DealerRepository) {
	f.engine.dealers = d
}

func (f *fixture) dealersFor(t *testing.T, email string) []repository.Dealer {
	t.Helper()
	all, err := f.db.Dealers().List(context.Background(), repository.DealerFilter{})
	require.NoError(t, err)
	var out []repository.Dealer
	for _, d := range all {
		if repository.NormalizeEmail(d.ContactEmail) == repository.NormalizeEmail(email) {
			out = append(out, d)
		}
	}
	return out
}

// failingDealers rompe todas las escrituras del registro Dealer.
type failingDealers struct{ repository.DealerRepository }

var errDealerDown = errors.New("dealer store down")

func (failingDealers) Create(context.Context, repository.CreateDealerInput) (*repository.Dealer, error) {
	return nil, errDealerDown
}

func (failingDealers) Update(context.Context, string, repository.DealerPatch) (*repository.Dealer, error) {
	return nil, errDealerDown
}

func (f *fixture) withLeads(l repository.LeadRepository) { f.engine.leads = l }

func (f *fixture) withUsers(u repository.UserRepository) { f.engine.users = u }

// flakyLeads rompe las operaciones marcadas y delega el resto.
type flakyLeads struct {
	repository.LeadRepository
	failCreate, failUpdate, failFind bool
}

var errLeadDown = errors.New("lead store down")

func (l flakyLeads) Create(ctx context.Context, in repository.CreateLeadInput) (*repository.Lead, error) {
	if l.failCreate {
		return nil, errLeadDown
	}
	return l.LeadRepository.Create(ctx, in)
}

func (l flakyLeads) Update(ctx context.Context, id string, p repository.LeadPatch) (*repository.Lead, error) {
	if l.failUpdate {
		return nil, errLeadDown
	}
	return l.LeadRepository.Update(ctx, id, p)
}

func (l flakyLeads) FindLatestByEmailAndType(ctx context.Context, email string, t repository.LeadType) (*repository.Lead, error) {
	if l.failFind {
		return nil, errLeadDown
	}
	return l.LeadRepository.FindLatestByEmailAndType(ctx, email, t)
}

// failingUsers rompe la búsqueda de usuarios por email.
type failingUsers struct{ repository.UserRepository }

func (failingUsers) GetByEmail(context.Context, string) (*repository.User, error) {
	return nil, errors.New("user store down")
}

// ─── ApplyAsDealer ───

func TestApply_Validation(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "  ", Email: "a@b.com"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "A"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApply_CreatesLeadAndPendingDealer(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	res, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Jane", Email: "jane@acme.com", Company: "Acme", Country: "AR"})
	require.NoError(t, err)
	assert.Equal(t, repository.LeadNew, res.Status)

	lead, err := f.db.Leads().GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.LeadDealer, lead.Type)
	assert.Empty(t, lead.Tags)

	dealers := f.dealersFor(t, "jane@acme.com")
	require.Len(t, dealers, 1)
	assert.Equal(t, "Acme", dealers[0].Org)
	assert.Equal(t, "Jane", dealers[0].ContactName)
	assert.Equal(t, "AR", dealers[0].Region)
	assert.Equal(t, repository.DealerPending, dealers[0].Status)
	assert.Equal(t, 0, dealers[0].Users)
}

func TestApply_OrgFallsBackToName(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.engine.ApplyAsDealer(context.Background(), ApplyInput{Name: "Solo", Email: "solo@x.com"})
	require.NoError(t, err)

	dealers := f.dealersFor(t, "solo@x.com")
	require.Len(t, dealers, 1)
	assert.Equal(t, "Solo", dealers[0].Org)
}

func TestApply_IdempotentReapplication(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	first, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Jane", Email: "jane@acme.com", Company: "Acme", Country: "AR"})
	require.NoError(t, err)
	_, err = f.engine.AcceptDealer(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, repository.DealerActive, f.dealersFor(t, "jane@acme.com")[0].Status)

	// segunda postulación con otro casing y campos vacíos
	_, err = f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Jane D", Email: "JANE@acme.com "})
	require.NoError(t, err)

	dealers := f.dealersFor(t, "jane@acme.com")
	require.Len(t, dealers, 1)
	assert.Equal(t, repository.DealerPending, dealers[0].Status)
	assert.Equal(t, "Acme", dealers[0].Org, "blank company must not clobber org")
	assert.Equal(t, "AR", dealers[0].Region)
	assert.Equal(t, "Jane D", dealers[0].ContactName)
}

func TestApply_DealerFailureIsSwallowed(t *testing.T) {
	f := newFixture(t, Options{})
	f.withDealers(failingDealers{f.db.Dealers()})

	core, logs := observer.New(zapcore.WarnLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	res, err := f.engine.ApplyAsDealer(context.Background(), ApplyInput{Name: "Jane", Email: "jane@acme.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, 1, logs.FilterMessage("dealer upsert failed").Len())
}

func TestApply_LeadFailureIsUnavailable(t *testing.T) {
	f := newFixture(t, Options{})
	f.withLeads(flakyLeads{LeadRepository: f.db.Leads(), failCreate: true})

	_, err := f.engine.ApplyAsDealer(context.Background(), ApplyInput{Name: "Jane", Email: "jane@acme.com"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, errLeadDown)
	assert.Empty(t, f.dealersFor(t, "jane@acme.com"))
}

// ─── AcceptDealer ───

func TestAccept_Errors(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.engine.AcceptDealer(ctx, "missing")
	assert.ErrorIs(t, err, ErrLeadNotFound)

	other, err := f.db.Leads().Create(ctx, repository.CreateLeadInput{Name: "P", Email: "p@x.com", Type: repository.LeadPrototype})
	require.NoError(t, err)
	_, err = f.engine.AcceptDealer(ctx, other.ID)
	assert.ErrorIs(t, err, ErrNotDealerLead)

	users, err := f.db.Users().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, users)
}

func TestAccept_RoleAdditivity(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	admin, err := f.db.Users().Create(ctx, repository.CreateUserInput{
		Email:   "boss@acme.com",
		Roles:   []string{repository.RoleAdmin},
		Profile: repository.Profile{Phone: "111", Company: "Old Co"},
	})
	require.NoError(t, err)

	app, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Boss", Email: "Boss@Acme.com", Company: "Acme"})
	require.NoError(t, err)

	res, err := f.engine.AcceptDealer(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, res.UserID)

	u, err := f.db.Users().GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"admin", "dealer"}, u.Roles)
	assert.Equal(t, "Acme", u.Profile.Company, "lead value wins when present")
	assert.Equal(t, "111", u.Profile.Phone, "blank lead phone keeps existing")
}

func TestAccept_StatusMonotonicity(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	app, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Jane", Email: "jane@acme.com"})
	require.NoError(t, err)

	first, err := f.engine.AcceptDealer(ctx, app.ID)
	require.NoError(t, err)
	second, err := f.engine.AcceptDealer(ctx, app.ID)
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)
	assert.Equal(t, repository.LeadQualified, second.Lead.Status)
	assert.Equal(t, []string{"accepted"}, second.Lead.Tags)

	n, err := f.db.Users().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAccept_CreatesActiveDealerWhenMissing(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	lead, err := f.db.Leads().Create(ctx, repository.CreateLeadInput{
		Name: "", Company: "Acme", Email: "ops@acme.com", Type: repository.LeadDealer, Country: "CL",
	})
	require.NoError(t, err)

	res, err := f.engine.AcceptDealer(ctx, lead.ID)
	require.NoError(t, err)

	dealers := f.dealersFor(t, "ops@acme.com")
	require.Len(t, dealers, 1)
	assert.Equal(t, repository.DealerActive, dealers[0].Status)
	assert.Equal(t, 1, dealers[0].Users)
	assert.Equal(t, "Acme", dealers[0].Org)

	u, err := f.db.Users().GetByID(ctx, res.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", u.DisplayName)
	assert.NotEmpty(t, u.PasswordHash)
	assert.Equal(t, "CL", u.Profile.Country)
}

func TestAccept_DealerFailureDoesNotAbort(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	app, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Jane", Email: "jane@acme.com"})
	require.NoError(t, err)
	f.withDealers(failingDealers{f.db.Dealers()})

	res, err := f.engine.AcceptDealer(ctx, app.ID)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Nil(t, res.Dealer)
	assert.Equal(t, repository.LeadQualified, res.Lead.Status)

	_, err = f.db.Users().GetByEmail(ctx, "jane@acme.com")
	assert.NoError(t, err)
}

func TestAccept_AuditWithActor(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := WithActor(context.Background(), "admin-1")

	app, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Jane", Email: "jane@acme.com"})
	require.NoError(t, err)
	_, err = f.engine.AcceptDealer(ctx, app.ID)
	require.NoError(t, err)

	events, err := f.db.Audit().List(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, repository.AuditDealerAccept, events[0].Action)
	assert.Equal(t, "admin-1", events[0].ActorID)
	assert.Equal(t, "lead:"+app.ID, events[0].Target)
}

func TestAcceptByID(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.engine.AcceptDealerByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrDealerNotFound)

	// con lead
	app, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Jane", Email: "jane@acme.com"})
	require.NoError(t, err)
	d := f.dealersFor(t, "jane@acme.com")[0]
	res, err := f.engine.AcceptDealerByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Lead)
	assert.Equal(t, app.ID, res.Lead.ID)
	assert.Equal(t, repository.LeadQualified, res.Lead.Status)

	// sin lead: alta manual de dealer
	manual, err := f.db.Dealers().Create(ctx, repository.CreateDealerInput{
		Org: "Manual SA", ContactName: "Max", ContactEmail: "max@manual.com", Region: "UY",
	})
	require.NoError(t, err)
	res, err = f.engine.AcceptDealerByID(ctx, manual.ID)
	require.NoError(t, err)
	assert.Nil(t, res.Lead)
	require.NotNil(t, res.Dealer)
	assert.Equal(t, repository.DealerActive, res.Dealer.Status)
	assert.Equal(t, 1, res.Dealer.Users)

	u, err := f.db.Users().GetByID(ctx, res.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Max", u.DisplayName)
	assert.Equal(t, "Manual SA", u.Profile.Company)
	assert.True(t, u.HasRole(repository.RoleDealer))
}

func TestAccept_UserFailureIsUnavailable(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	app, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Jane", Email: "jane@acme.com"})
	require.NoError(t, err)
	f.withUsers(failingUsers{f.db.Users()})

	_, err = f.engine.AcceptDealer(ctx, app.ID)
	assert.ErrorIs(t, err, ErrUnavailable)

	lead, err := f.db.Leads().GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.LeadNew, lead.Status)
}

func TestAccept_QualifyFailureKeepsProvisionedUser(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	app, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Jane", Email: "jane@acme.com"})
	require.NoError(t, err)
	f.withLeads(flakyLeads{LeadRepository: f.db.Leads(), failUpdate: true})

	_, err = f.engine.AcceptDealer(ctx, app.ID)
	assert.ErrorIs(t, err, ErrUnavailable)

	// sin rollback: el usuario queda creado y con rol dealer
	u, err := f.db.Users().GetByEmail(ctx, "jane@acme.com")
	require.NoError(t, err)
	assert.True(t, u.HasRole(repository.RoleDealer))

	lead, err := f.db.Leads().GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.LeadNew, lead.Status)
}

func TestAccept_ClosedLead(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	lead, err := f.db.Leads().Create(ctx, repository.CreateLeadInput{
		Name: "Jane", Email: "jane@acme.com", Type: repository.LeadDealer, Status: repository.LeadClosed,
	})
	require.NoError(t, err)

	_, err = f.engine.AcceptDealer(ctx, lead.ID)
	assert.ErrorIs(t, err, ErrLeadClosed)
	n, err := f.db.Users().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// desde el registro Dealer se aprueba igual, sin reabrir el lead
	d, err := f.db.Dealers().Create(ctx, repository.CreateDealerInput{Org: "Acme", ContactEmail: "jane@acme.com"})
	require.NoError(t, err)
	res, err := f.engine.AcceptDealerByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, res.Lead)
	require.NotNil(t, res.Dealer)
	assert.Equal(t, repository.DealerActive, res.Dealer.Status)

	again, err := f.db.Leads().GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.LeadClosed, again.Status)
}

// ─── DealerLogin ───

func TestLogin_Validation(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.engine.DealerLogin(context.Background(), LoginInput{Email: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin_PendingDealer(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Jane", Email: "jane@acme.com"})
	require.NoError(t, err)

	_, err = f.engine.DealerLogin(ctx, LoginInput{Email: "jane@acme.com"})
	var fe *ForbiddenError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, CodePending, fe.Code)
}

func TestLogin_SuspendedWritesNoUser(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.db.Dealers().Create(ctx, repository.CreateDealerInput{
		Org: "Acme", ContactEmail: "ops@acme.com", Status: repository.DealerSuspended,
	})
	require.NoError(t, err)

	_, err = f.engine.DealerLogin(ctx, LoginInput{Email: "OPS@acme.com", Phone: "555"})
	var fe *ForbiddenError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, CodeSuspended, fe.Code)

	n, err := f.db.Users().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLogin_SuspendedDoesNotTouchExistingUser(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	u, err := f.db.Users().Create(ctx, repository.CreateUserInput{Email: "ops@acme.com", Roles: []string{"user"}})
	require.NoError(t, err)
	_, err = f.db.Dealers().Create(ctx, repository.CreateDealerInput{ContactEmail: "ops@acme.com", Status: repository.DealerSuspended})
	require.NoError(t, err)

	_, err = f.engine.DealerLogin(ctx, LoginInput{Email: "ops@acme.com", Phone: "555"})
	require.Error(t, err)

	after, err := f.db.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.UpdatedAt, after.UpdatedAt)
	assert.Equal(t, []string{"user"}, after.Roles)
	assert.Empty(t, after.Profile.Phone)
}

func TestLogin_UnqualifiedLeadWithoutDealer(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.db.Leads().Create(ctx, repository.CreateLeadInput{
		Name: "Jane", Email: "jane@acme.com", Type: repository.LeadDealer, Status: repository.LeadInReview,
	})
	require.NoError(t, err)

	_, err = f.engine.DealerLogin(ctx, LoginInput{Email: "jane@acme.com"})
	var fe *ForbiddenError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, CodePending, fe.Code)
}

func TestLogin_QualifiedLeadWithoutDealer(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.db.Leads().Create(ctx, repository.CreateLeadInput{
		Name: "Jane", Company: "Acme", Phone: "555-0000", Email: "jane@acme.com",
		Type: repository.LeadDealer, Status: repository.LeadQualified,
	})
	require.NoError(t, err)

	res, err := f.engine.DealerLogin(ctx, LoginInput{Email: "jane@acme.com"})
	require.NoError(t, err)

	u, err := f.db.Users().GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.DisplayName)
	assert.Equal(t, "555-0000", u.Profile.Phone)
	assert.Equal(t, []string{"dealer"}, u.Roles)
}

func TestLogin_UnvettedEmail(t *testing.T) {
	ctx := context.Background()

	strict := newFixture(t, Options{AllowUnvettedLogin: false})
	_, err := strict.engine.DealerLogin(ctx, LoginInput{Email: "nobody@x.com"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	permissive := newFixture(t, Options{AllowUnvettedLogin: true})
	res, err := permissive.engine.DealerLogin(ctx, LoginInput{Email: "nobody@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "nobody@x.com", res.User.Email)
	assert.Equal(t, []string{"dealer"}, res.User.Roles)
}

func TestLogin_PhoneTrustOnFirstUse(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	app, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Jane", Email: "jane@acme.com"})
	require.NoError(t, err)
	_, err = f.engine.AcceptDealer(ctx, app.ID)
	require.NoError(t, err)

	first, err := f.engine.DealerLogin(ctx, LoginInput{Email: "jane@acme.com", Phone: "555-1234"})
	require.NoError(t, err)

	u, err := f.db.Users().GetByID(ctx, first.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-1234", u.Profile.Phone)

	_, err = f.engine.DealerLogin(ctx, LoginInput{Email: "jane@acme.com", Phone: "5551234"})
	require.NoError(t, err)

	_, err = f.engine.DealerLogin(ctx, LoginInput{Email: "jane@acme.com", Phone: "555-9999"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// sin teléfono no se chequea
	_, err = f.engine.DealerLogin(ctx, LoginInput{Email: "jane@acme.com"})
	assert.NoError(t, err)
}

func TestLogin_AddsDealerRoleToExistingUser(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	u, err := f.db.Users().Create(ctx, repository.CreateUserInput{Email: "ops@acme.com", Roles: []string{"marketing"}})
	require.NoError(t, err)
	_, err = f.db.Dealers().Create(ctx, repository.CreateDealerInput{ContactEmail: "ops@acme.com", Status: repository.DealerActive})
	require.NoError(t, err)

	res, err := f.engine.DealerLogin(ctx, LoginInput{Email: "ops@acme.com"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.ElementsMatch(t, []string{"marketing", "dealer"}, res.User.Roles)
}

func TestLogin_ActiveDealerSkipsLeadLookup(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	u, err := f.db.Users().Create(ctx, repository.CreateUserInput{Email: "ops@acme.com", Roles: []string{repository.RoleDealer}})
	require.NoError(t, err)
	_, err = f.db.Dealers().Create(ctx, repository.CreateDealerInput{ContactEmail: "ops@acme.com", Status: repository.DealerActive})
	require.NoError(t, err)
	f.withLeads(flakyLeads{LeadRepository: f.db.Leads(), failFind: true})

	res, err := f.engine.DealerLogin(ctx, LoginInput{Email: "ops@acme.com"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
}

func TestLogin_NewUserProvisionsFromDealerWhenLeadsDown(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	_, err := f.db.Dealers().Create(ctx, repository.CreateDealerInput{
		Org: "Acme", ContactEmail: "ops@acme.com", Region: "CL", Status: repository.DealerActive,
	})
	require.NoError(t, err)
	f.withLeads(flakyLeads{LeadRepository: f.db.Leads(), failFind: true})

	core, logs := observer.New(zapcore.WarnLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	res, err := f.engine.DealerLogin(ctx, LoginInput{Email: "ops@acme.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("dealer lead lookup failed, provisioning from dealer record").Len())

	u, err := f.db.Users().GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", u.DisplayName)
	assert.Equal(t, "CL", u.Profile.Country)
}

func TestLogin_LeadOutageWithoutDealerIsUnavailable(t *testing.T) {
	f := newFixture(t, Options{AllowUnvettedLogin: true})
	f.withLeads(flakyLeads{LeadRepository: f.db.Leads(), failFind: true})

	_, err := f.engine.DealerLogin(context.Background(), LoginInput{Email: "ops@acme.com"})
	assert.ErrorIs(t, err, ErrUnavailable)
	n, err := f.db.Users().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

// ─── Escenario completo ───

func TestEndToEnd_AcmeFilms(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	app, err := f.engine.ApplyAsDealer(ctx, ApplyInput{Name: "Acme Films", Email: "Ops@Acme.com"})
	require.NoError(t, err)
	assert.Equal(t, repository.LeadNew, app.Status)

	dealers := f.dealersFor(t, "ops@acme.com")
	require.Len(t, dealers, 1)
	assert.Equal(t, "Ops@Acme.com", dealers[0].ContactEmail)
	assert.Equal(t, repository.DealerPending, dealers[0].Status)

	acc, err := f.engine.AcceptDealer(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.LeadQualified, acc.Lead.Status)
	assert.True(t, acc.Lead.HasTag("accepted"))
	assert.Equal(t, repository.DealerActive, f.dealersFor(t, "ops@acme.com")[0].Status)

	u, err := f.db.Users().GetByEmail(ctx, "ops@acme.com")
	require.NoError(t, err)
	assert.Equal(t, "ops@acme.com", u.Email)
	assert.True(t, u.HasRole(repository.RoleDealer))

	login, err := f.engine.DealerLogin(ctx, LoginInput{Email: "ops@acme.com"})
	require.NoError(t, err)
	claims, err := f.tokens.ParseAccess(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, u.ID, login.User.ID)
	assert.NotEmpty(t, login.RefreshToken)
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "ok", resultLabel(nil))
	assert.Equal(t, "forbidden", resultLabel(&ForbiddenError{Code: CodePending}))
	assert.Equal(t, "invalid", resultLabel(invalid("x")))
	assert.Equal(t, "not_found", resultLabel(ErrLeadNotFound))
	assert.Equal(t, "unauthorized", resultLabel(ErrInvalidCredentials))
	assert.Equal(t, "error", resultLabel(unavailable("x", errors.New("boom"))))
}
