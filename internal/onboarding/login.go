package onboarding

import (
	"context"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
	"github.com/dropDatabas3/dealerdesk/internal/session"
)

type LoginInput struct {
	Email     string
	Phone     string
	UserAgent string
	IP        string
}

type LoginUser struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type LoginResult struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	User         LoginUser `json:"user"`
}

// DealerLogin autentica a un dealer por email (y teléfono si lo manda).
//
// Orden de decisión: estado del registro Dealer; si no hay registro, estado
// del último lead tipo Dealer; luego usuario (se crea si falta), binding de
// teléfono y emisión de tokens. Un login bloqueado no escribe ningún User.
func (e *Engine) DealerLogin(ctx context.Context, in LoginInput) (res *LoginResult, err error) {
	defer func() { observe("login", err) }()
	log := e.log(ctx, "login")

	// Paso 1: email normalizado
	email := repository.NormalizeEmail(in.Email)
	if email == "" {
		return nil, invalid("email is required")
	}

	// Paso 2: gate por registro Dealer
	dealer, err := e.dealers.FindByContactEmail(ctx, email)
	switch {
	case err == nil:
		switch dealer.Status {
		case repository.DealerPending:
			return nil, forbiddenPending("your account is pending approval")
		case repository.DealerSuspended:
			return nil, &ForbiddenError{Code: CodeSuspended, Message: "your account has been suspended"}
		}
	case repository.IsNotFound(err):
		dealer = nil
	default:
		return nil, unavailable("find dealer", err)
	}

	// Paso 3: sin registro, gate por último lead
	var lead *repository.Lead
	if dealer == nil {
		lead, err = e.leads.FindLatestByEmailAndType(ctx, email, repository.LeadDealer)
		switch {
		case err == nil:
		case repository.IsNotFound(err):
			lead = nil
		default:
			return nil, unavailable("find lead", err)
		}
		if lead != nil && lead.Status != repository.LeadQualified {
			return nil, forbiddenPending("your application is under review")
		}
		if lead == nil && !e.opts.AllowUnvettedLogin {
			return nil, ErrInvalidCredentials
		}
	}

	// Paso 4: usuario. Con registro Dealer el lead solo aporta datos de
	// alta, así que se busca recién si hay que crear al usuario.
	p := provision{
		email: email,
		prepare: func(ctx context.Context, p *provision) {
			fallback := lead
			if fallback == nil && dealer != nil {
				l, lerr := e.leads.FindLatestByEmailAndType(ctx, email, repository.LeadDealer)
				switch {
				case lerr == nil:
					fallback = l
				case !repository.IsNotFound(lerr):
					log.Warn("dealer lead lookup failed, provisioning from dealer record", logger.Err(lerr))
				}
			}
			*p = loginProvision(email, dealer, fallback)
		},
	}
	u, err := e.resolveDealerUser(ctx, p)
	if err != nil {
		return nil, unavailable("resolve user", err)
	}
	log = log.With(logger.UserID(u.ID))

	// Paso 5: teléfono (trust on first use)
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		if u.Profile.Phone != "" {
			if repository.NormalizePhone(u.Profile.Phone) != repository.NormalizePhone(phone) {
				log.Info("dealer login phone mismatch")
				return nil, ErrInvalidCredentials
			}
		} else {
			profile := u.Profile
			profile.Phone = phone
			if updated, uerr := e.users.Update(ctx, u.ID, repository.UserPatch{Profile: &profile}); uerr != nil {
				log.Warn("phone bind failed", logger.Err(uerr))
			} else {
				u = updated
			}
		}
	}

	// Paso 6: tokens
	pair, err := e.tokens.Issue(ctx, session.Subject{UserID: u.ID, Roles: u.Roles},
		session.Meta{UserAgent: in.UserAgent, IP: in.IP})
	if err != nil {
		return nil, err
	}

	e.recordAudit(WithActor(ctx, u.ID), repository.AuditDealerLogin, "user:"+u.ID, nil)
	log.Info("dealer logged in", logger.Roles(u.Roles))
	return &LoginResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         LoginUser{ID: u.ID, Email: u.Email, Roles: u.Roles},
	}, nil
}

// loginProvision arma los datos para crear al usuario en su primer login.
// A un usuario existente no se le toca el profile.
func loginProvision(email string, dealer *repository.Dealer, lead *repository.Lead) provision {
	p := provision{email: email}
	var org, contact string
	if dealer != nil {
		org, contact = dealer.Org, dealer.ContactName
	}
	if lead != nil {
		p.displayName = firstNonEmpty(contact, org, lead.Name, lead.Company)
		p.profile = repository.Profile{
			Phone:   lead.Phone,
			Company: firstNonEmpty(lead.Company, org),
			Country: lead.Country,
		}
	} else {
		p.displayName = firstNonEmpty(contact, org)
		p.profile = repository.Profile{Company: org}
		if dealer != nil {
			p.profile.Country = dealer.Region
		}
	}
	return p
}
