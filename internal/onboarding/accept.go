package onboarding

import (
	"context"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
)

type AcceptResult struct {
	OK     bool               `json:"ok"`
	UserID string             `json:"userId"`
	Lead   *repository.Lead   `json:"lead,omitempty"`
	Dealer *repository.Dealer `json:"dealer,omitempty"`
}

// AcceptDealer aprueba un lead tipo Dealer: provisiona el usuario con rol
// dealer, activa el registro Dealer y califica el lead con el tag accepted.
// Es idempotente: aceptar dos veces deja el mismo estado.
func (e *Engine) AcceptDealer(ctx context.Context, leadID string) (res *AcceptResult, err error) {
	defer func() { observe("accept", err) }()
	log := e.log(ctx, "accept").With(logger.LeadID(leadID))

	// Paso 1: precondiciones
	lead, err := e.leads.GetByID(ctx, leadID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrLeadNotFound
		}
		return nil, unavailable("load lead", err)
	}
	if lead.Type != repository.LeadDealer {
		return nil, ErrNotDealerLead
	}
	if lead.Status == repository.LeadClosed {
		return nil, ErrLeadClosed
	}

	// Paso 2: usuario
	u, err := e.resolveDealerUser(ctx, provision{
		email:        lead.Email,
		displayName:  firstNonEmpty(lead.Name, lead.Company, lead.Email),
		profile:      repository.Profile{Phone: lead.Phone, Company: lead.Company, Country: lead.Country},
		mergeProfile: true,
	})
	if err != nil {
		return nil, unavailable("resolve user", err)
	}
	log = log.With(logger.UserID(u.ID))

	// Paso 3: proyección Dealer (best-effort)
	dealer, err := e.activateDealerFromLead(ctx, lead)
	if err != nil {
		log.Warn("dealer activation failed", logger.Err(err))
	}

	// Paso 4: calificar lead
	qualified := repository.LeadQualified
	updated, err := e.leads.Update(ctx, lead.ID, repository.LeadPatch{
		Status: &qualified,
		Tags:   repository.MergeTags(lead.Tags, "accepted"),
	})
	if err != nil {
		return nil, unavailable("qualify lead", err)
	}

	e.recordAudit(ctx, repository.AuditDealerAccept, "lead:"+lead.ID, map[string]any{
		"userId": u.ID,
		"email":  u.Email,
	})
	log.Info("dealer accepted")
	return &AcceptResult{OK: true, UserID: u.ID, Lead: updated, Dealer: dealer}, nil
}

func (e *Engine) activateDealerFromLead(ctx context.Context, lead *repository.Lead) (*repository.Dealer, error) {
	active := repository.DealerActive

	existing, err := e.dealers.FindByContactEmail(ctx, lead.Email)
	switch {
	case err == nil:
		org := pick(lead.Company, existing.Org)
		contact := pick(lead.Name, existing.ContactName)
		region := pick(lead.Country, existing.Region)
		return e.dealers.Update(ctx, existing.ID, repository.DealerPatch{
			Org:         &org,
			ContactName: &contact,
			Region:      &region,
			Status:      &active,
		})
	case repository.IsNotFound(err):
		return e.dealers.Create(ctx, repository.CreateDealerInput{
			Org:          firstNonEmpty(lead.Company, lead.Name, lead.Email),
			ContactName:  lead.Name,
			ContactEmail: lead.Email,
			Region:       lead.Country,
			Status:       active,
			Users:        1,
		})
	default:
		return nil, err
	}
}

// AcceptDealerByID aprueba desde el registro Dealer. Si hay un lead tipo
// Dealer abierto para el email de contacto se acepta ese lead; si no hay
// lead o está Closed, el usuario se provisiona con los datos del propio
// registro y el lead queda como está.
func (e *Engine) AcceptDealerByID(ctx context.Context, dealerID string) (*AcceptResult, error) {
	dealer, err := e.dealers.GetByID(ctx, dealerID)
	if err != nil {
		if repository.IsNotFound(err) {
			observe("accept", ErrDealerNotFound)
			return nil, ErrDealerNotFound
		}
		observe("accept", err)
		return nil, unavailable("load dealer", err)
	}

	lead, err := e.leads.FindLatestByEmailAndType(ctx, dealer.ContactEmail, repository.LeadDealer)
	switch {
	case err == nil && lead.Status != repository.LeadClosed:
		return e.AcceptDealer(ctx, lead.ID)
	case err != nil && !repository.IsNotFound(err):
		observe("accept", err)
		return nil, unavailable("find lead", err)
	}

	res, err := e.acceptWithoutLead(ctx, dealer)
	observe("accept", err)
	return res, err
}

func (e *Engine) acceptWithoutLead(ctx context.Context, dealer *repository.Dealer) (*AcceptResult, error) {
	log := e.log(ctx, "accept").With(logger.DealerID(dealer.ID))

	u, err := e.resolveDealerUser(ctx, provision{
		email:        dealer.ContactEmail,
		displayName:  firstNonEmpty(dealer.ContactName, dealer.Org, dealer.ContactEmail),
		profile:      repository.Profile{Company: dealer.Org, Country: dealer.Region},
		mergeProfile: true,
	})
	if err != nil {
		return nil, unavailable("resolve user", err)
	}

	active := repository.DealerActive
	patch := repository.DealerPatch{Status: &active}
	if dealer.Users == 0 {
		one := 1
		patch.Users = &one
	}
	updated, err := e.dealers.Update(ctx, dealer.ID, patch)
	if err != nil {
		log.Warn("dealer activation failed", logger.Err(err))
		updated = nil
	}

	e.recordAudit(ctx, repository.AuditDealerAccept, "dealer:"+dealer.ID, map[string]any{
		"userId": u.ID,
		"email":  u.Email,
	})
	log.Info("dealer approved without lead", logger.UserID(u.ID))
	return &AcceptResult{OK: true, UserID: u.ID, Dealer: updated}, nil
}
