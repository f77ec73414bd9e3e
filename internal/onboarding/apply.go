package onboarding

import (
	"context"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
)

// ApplyInput es el formulario público de postulación.
type ApplyInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Country string
	Message string
}

type ApplyResult struct {
	ID     string                `json:"id"`
	Status repository.LeadStatus `json:"status"`
}

// ApplyAsDealer registra la postulación como Lead tipo Dealer y deja el
// registro Dealer del email en Pending (lo crea si no existe).
// Re-postular con un dealer Active o Suspended lo vuelve a Pending.
func (e *Engine) ApplyAsDealer(ctx context.Context, in ApplyInput) (res *ApplyResult, err error) {
	defer func() { observe("apply", err) }()
	log := e.log(ctx, "apply")

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, invalid("name and email are required")
	}

	// Paso 1: el lead es el criterio de éxito
	lead, err := e.leads.Create(ctx, repository.CreateLeadInput{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(in.Phone),
		Company: strings.TrimSpace(in.Company),
		Country: strings.TrimSpace(in.Country),
		Type:    repository.LeadDealer,
		Message: in.Message,
		Tags:    []string{},
		Status:  repository.LeadNew,
	})
	if err != nil {
		return nil, unavailable("create lead", err)
	}
	log = log.With(logger.LeadID(lead.ID))

	// Paso 2: proyección Dealer (best-effort)
	if err := e.upsertPendingDealer(ctx, lead); err != nil {
		log.Warn("dealer upsert failed", logger.Err(err))
	}

	log.Info("dealer application received")
	return &ApplyResult{ID: lead.ID, Status: lead.Status}, nil
}

func (e *Engine) upsertPendingDealer(ctx context.Context, lead *repository.Lead) error {
	pending := repository.DealerPending

	existing, err := e.dealers.FindByContactEmail(ctx, lead.Email)
	switch {
	case err == nil:
		org := pick(lead.Company, existing.Org)
		contact := pick(lead.Name, existing.ContactName)
		region := pick(lead.Country, existing.Region)
		_, err = e.dealers.Update(ctx, existing.ID, repository.DealerPatch{
			Org:         &org,
			ContactName: &contact,
			Region:      &region,
			Status:      &pending,
		})
		return err
	case repository.IsNotFound(err):
		_, err = e.dealers.Create(ctx, repository.CreateDealerInput{
			Org:          firstNonEmpty(lead.Company, lead.Name, lead.Email),
			ContactName:  lead.Name,
			ContactEmail: lead.Email,
			Region:       lead.Country,
			Status:       pending,
			Users:        0,
		})
		return err
	default:
		return err
	}
}
