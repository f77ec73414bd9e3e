package admin

import (
	"context"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/dealerdesk/internal/http/errors"
	"github.com/dropDatabas3/dealerdesk/internal/onboarding"
)

// DealerService administra el Organization Registry.
type DealerService interface {
	List(ctx context.Context, f repository.DealerFilter) (*dto.DealerList, error)
	Create(ctx context.Context, in dto.DealerCreateRequest) (*repository.Dealer, error)
	Update(ctx context.Context, id string, in dto.DealerUpdateRequest) (*repository.Dealer, error)
	SetStatus(ctx context.Context, id, status string) (*repository.Dealer, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int, error)
	Approve(ctx context.Context, id string) (*onboarding.AcceptResult, error)
	Detail(ctx context.Context, id string) (*dto.DealerDetail, error)
}

type dealerService struct {
	dealers repository.DealerRepository
	users   repository.UserRepository
	leads   repository.LeadRepository
	engine  Engine
}

func NewDealerService(d Deps) DealerService {
	return &dealerService{dealers: d.Dealers, users: d.Users, leads: d.Leads, engine: d.Engine}
}

func (s *dealerService) List(ctx context.Context, f repository.DealerFilter) (*dto.DealerList, error) {
	items, err := s.dealers.List(ctx, f)
	if err != nil {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	if items == nil {
		items = []repository.Dealer{}
	}
	return &dto.DealerList{Items: items}, nil
}

// Create da de alta un dealer Pending. Un email ya registrado es conflicto:
// hay a lo sumo un registro por email de contacto.
func (s *dealerService) Create(ctx context.Context, in dto.DealerCreateRequest) (*repository.Dealer, error) {
	in.Org = strings.TrimSpace(in.Org)
	in.Email = strings.TrimSpace(in.Email)
	if in.Org == "" || in.Email == "" {
		return nil, httperrors.ErrValidation.WithDetail("org and email are required")
	}

	if _, err := s.dealers.FindByContactEmail(ctx, in.Email); err == nil {
		return nil, httperrors.ErrConflict.WithDetail("a dealer with this contact email already exists")
	} else if !repository.IsNotFound(err) {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}

	d, err := s.dealers.Create(ctx, repository.CreateDealerInput{
		Org:          in.Org,
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactEmail: in.Email,
		Region:       strings.TrimSpace(in.Region),
		Status:       repository.DealerPending,
	})
	if repository.IsConflict(err) {
		return nil, httperrors.ErrConflict.WithDetail("a dealer with this contact email already exists").WithCause(err)
	}
	if err != nil {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	return d, nil
}

// Update aplica un patch parcial. Cambiar el email de contacto a uno que ya
// tiene otro dealer es conflicto.
func (s *dealerService) Update(ctx context.Context, id string, in dto.DealerUpdateRequest) (*repository.Dealer, error) {
	if in.ContactEmail != nil {
		email := strings.TrimSpace(*in.ContactEmail)
		if email == "" {
			return nil, httperrors.ErrValidation.WithDetail("contactEmail cannot be empty")
		}
		in.ContactEmail = &email
		owner, err := s.dealers.FindByContactEmail(ctx, email)
		switch {
		case err == nil && owner.ID != id:
			return nil, httperrors.ErrConflict.WithDetail("a dealer with this contact email already exists")
		case err != nil && !repository.IsNotFound(err):
			return nil, httperrors.ErrServiceUnavailable.WithCause(err)
		}
	}

	patch := repository.DealerPatch{
		Org:          in.Org,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		Region:       in.Region,
		Users:        in.Users,
	}
	if in.Status != nil {
		st := repository.DealerStatus(*in.Status)
		if !st.Valid() {
			return nil, httperrors.ErrValidation.WithDetail("invalid status")
		}
		patch.Status = &st
	}
	if in.Users != nil && *in.Users < 0 {
		return nil, httperrors.ErrValidation.WithDetail("users must be >= 0")
	}
	return s.dealers.Update(ctx, id, patch)
}

func (s *dealerService) SetStatus(ctx context.Context, id, status string) (*repository.Dealer, error) {
	st := repository.DealerStatus(status)
	if !st.Valid() {
		return nil, httperrors.ErrValidation.WithDetail("status must be one of Pending, Active, Suspended")
	}
	return s.dealers.Update(ctx, id, repository.DealerPatch{Status: &st})
}

func (s *dealerService) Delete(ctx context.Context, id string) error {
	return s.dealers.Delete(ctx, id)
}

func (s *dealerService) BulkDelete(ctx context.Context, ids []string) (int, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return 0, httperrors.ErrValidation.WithDetail("ids is required")
	}
	n, err := s.dealers.DeleteMany(ctx, ids)
	if err != nil {
		return 0, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	return n, nil
}

func (s *dealerService) Approve(ctx context.Context, id string) (*onboarding.AcceptResult, error) {
	return s.engine.AcceptDealerByID(ctx, id)
}

// Detail completa el teléfono desde el usuario o, si no tiene, desde el
// último lead tipo Dealer. Es solo lectura.
func (s *dealerService) Detail(ctx context.Context, id string) (*dto.DealerDetail, error) {
	d, err := s.dealers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.DealerDetail{
		ID:           d.ID,
		Org:          d.Org,
		ContactName:  d.ContactName,
		ContactEmail: d.ContactEmail,
		Region:       d.Region,
		Status:       string(d.Status),
		Users:        d.Users,
		Last:         d.UpdatedAt,
	}

	if u, err := s.users.GetByEmail(ctx, d.ContactEmail); err == nil {
		out.UserID = u.ID
		out.Phone = u.Profile.Phone
	}
	if out.Phone == "" {
		if l, err := s.leads.FindLatestByEmailAndType(ctx, d.ContactEmail, repository.LeadDealer); err == nil {
			out.Phone = l.Phone
		}
	}
	return out, nil
}
