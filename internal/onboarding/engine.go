// Package onboarding implementa el flujo de dealers: postulación pública,
// aceptación administrativa y login del dealer.
//
// Lead, Dealer y User se relacionan solo por email normalizado. Este
// paquete es el único que escribe en Dealer o User datos derivados de un
// Lead. El registro Dealer es una proyección: sus escrituras son
// best-effort y nunca abortan la operación.
package onboarding

import (
	"context"
	"errors"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/metrics"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
	"github.com/dropDatabas3/dealerdesk/internal/session"
	"go.uber.org/zap"
)

// TokenIssuer emite el par de tokens y persiste la sesión.
type TokenIssuer interface {
	Issue(ctx context.Context, sub session.Subject, meta session.Meta) (*session.TokenPair, error)
}

// Deps son los colaboradores del Engine. Audit es opcional.
type Deps struct {
	Users   repository.UserRepository
	Dealers repository.DealerRepository
	Leads   repository.LeadRepository
	Audit   repository.AuditRepository
	Tokens  TokenIssuer
}

// Options ajusta reglas de negocio configurables.
type Options struct {
	// AllowUnvettedLogin permite el login de un email sin dealer ni lead.
	AllowUnvettedLogin bool
}

// Engine orquesta los tres stores y el emisor de credenciales.
type Engine struct {
	users   repository.UserRepository
	dealers repository.DealerRepository
	leads   repository.LeadRepository
	audit   repository.AuditRepository
	tokens  TokenIssuer
	opts    Options

	tempHash func() (string, error)
}

func New(d Deps, opts Options) *Engine {
	return &Engine{
		users:    d.Users,
		dealers:  d.Dealers,
		leads:    d.Leads,
		audit:    d.Audit,
		tokens:   d.Tokens,
		opts:     opts,
		tempHash: password.TemporaryHash,
	}
}

func (e *Engine) log(ctx context.Context, op string) *zap.Logger {
	return logger.From(ctx).With(logger.Layer("service"), logger.Component("onboarding"), logger.Op(op))
}

// ─── Actor ───

type actorKey struct{}

// WithActor marca el contexto con el id del usuario que ejecuta la acción
// (para auditoría).
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func actorFrom(ctx context.Context) string {
	v, _ := ctx.Value(actorKey{}).(string)
	return v
}

func (e *Engine) recordAudit(ctx context.Context, action, target string, meta map[string]any) {
	if e.audit == nil {
		return
	}
	ev := repository.AuditEvent{ActorID: actorFrom(ctx), Action: action, Target: target, Meta: meta}
	if err := e.audit.Append(ctx, ev); err != nil {
		logger.From(ctx).Warn("audit append failed", logger.String("action", action), logger.Err(err))
	}
}

// ─── Merge ───

// pick devuelve incoming si no está vacío, si no current.
// Es la única política de merge del paquete: un valor vacío nunca pisa
// uno existente.
func pick(incoming, current string) string {
	if strings.TrimSpace(incoming) != "" {
		return incoming
	}
	return current
}

// firstNonEmpty devuelve el primer valor no vacío (después de trim).
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func mergeProfile(current, incoming repository.Profile) repository.Profile {
	return repository.Profile{
		Phone:   pick(incoming.Phone, current.Phone),
		Company: pick(incoming.Company, current.Company),
		Country: pick(incoming.Country, current.Country),
	}
}

func observe(op string, err error) {
	metrics.Reconciliation(op, resultLabel(err))
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, new(*ForbiddenError)):
		return "forbidden"
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotDealerLead):
		return "invalid"
	case errors.Is(err, ErrLeadNotFound), errors.Is(err, ErrDealerNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidCredentials):
		return "unauthorized"
	default:
		return "error"
	}
}
