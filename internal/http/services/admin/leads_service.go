package admin

import (
	"context"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/dealerdesk/internal/http/errors"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
	"github.com/dropDatabas3/dealerdesk/internal/onboarding"
)

// LeadService administra el Application Ledger.
type LeadService interface {
	List(ctx context.Context, f repository.LeadFilter) (*dto.LeadList, error)
	Create(ctx context.Context, in dto.LeadCreateRequest) (*repository.Lead, error)
	Get(ctx context.Context, id string) (*repository.Lead, error)
	Update(ctx context.Context, id string, in dto.LeadUpdateRequest) (*repository.Lead, error)
	SetStatus(ctx context.Context, id, status string) (*repository.Lead, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int, error)
	AcceptDealer(ctx context.Context, id string) (*onboarding.AcceptResult, error)
}

type leadService struct {
	leads  repository.LeadRepository
	engine Engine
}

func NewLeadService(d Deps) LeadService {
	return &leadService{leads: d.Leads, engine: d.Engine}
}

func (s *leadService) List(ctx context.Context, f repository.LeadFilter) (*dto.LeadList, error) {
	items, err := s.leads.List(ctx, f)
	if err != nil {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	if items == nil {
		items = []repository.Lead{}
	}
	return &dto.LeadList{Items: items}, nil
}

func (s *leadService) Create(ctx context.Context, in dto.LeadCreateRequest) (*repository.Lead, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	typ := repository.LeadType(in.Type)
	if in.Name == "" || in.Email == "" || !typ.Valid() {
		return nil, httperrors.ErrValidation.WithDetail("name, email and a valid type are required")
	}
	status := repository.LeadNew
	if in.Status != "" {
		status = repository.LeadStatus(in.Status)
		if !status.Valid() {
			return nil, httperrors.ErrValidation.WithDetail("invalid status")
		}
	}

	lead, err := s.leads.Create(ctx, repository.CreateLeadInput{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Country: in.Country,
		Type:    typ,
		Message: in.Message,
		Tags:    in.Tags,
		Status:  status,
		OwnerID: in.OwnerID,
	})
	if err != nil {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	return lead, nil
}

func (s *leadService) Get(ctx context.Context, id string) (*repository.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

func (s *leadService) Update(ctx context.Context, id string, in dto.LeadUpdateRequest) (*repository.Lead, error) {
	patch := repository.LeadPatch{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Company: in.Company,
		Country: in.Country,
		Message: in.Message,
		Tags:    in.Tags,
		OwnerID: in.OwnerID,
	}
	if in.Type != nil {
		t := repository.LeadType(*in.Type)
		if !t.Valid() {
			return nil, httperrors.ErrValidation.WithDetail("invalid type")
		}
		patch.Type = &t
	}
	if in.Status != nil {
		st := repository.LeadStatus(*in.Status)
		if !st.Valid() {
			return nil, httperrors.ErrValidation.WithDetail("invalid status")
		}
		patch.Status = &st
	}
	return s.leads.Update(ctx, id, patch)
}

func (s *leadService) SetStatus(ctx context.Context, id, status string) (*repository.Lead, error) {
	st := repository.LeadStatus(status)
	if !st.Valid() {
		return nil, httperrors.ErrValidation.WithDetail("status must be one of New, In Review, Qualified, Closed")
	}
	return s.leads.Update(ctx, id, repository.LeadPatch{Status: &st})
}

func (s *leadService) Delete(ctx context.Context, id string) error {
	return s.leads.Delete(ctx, id)
}

func (s *leadService) BulkDelete(ctx context.Context, ids []string) (int, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return 0, httperrors.ErrValidation.WithDetail("ids is required")
	}
	n, err := s.leads.DeleteMany(ctx, ids)
	if err != nil {
		return 0, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	logger.From(ctx).Info("leads deleted", logger.Component("admin.leads"), logger.Count(n))
	return n, nil
}

func (s *leadService) AcceptDealer(ctx context.Context, id string) (*onboarding.AcceptResult, error) {
	return s.engine.AcceptDealer(ctx, id)
}

// compactIDs descarta vacíos y duplicados.
func compactIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
