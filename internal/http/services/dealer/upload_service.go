package dealer

import (
	"context"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/dealer"
	httperrors "github.com/dropDatabas3/dealerdesk/internal/http/errors"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
)

const (
	// TagUpload marca los leads que son entregas de un dealer.
	TagUpload       = "dealer_upload"
	defaultCategory = "Testing Report"
)

// UploadService guarda entregas del dealer como leads tipo Other.
type UploadService interface {
	Create(ctx context.Context, userID string, in dto.UploadRequest) (*dto.UploadResponse, error)
	List(ctx context.Context, userID string) (*dto.UploadList, error)
}

type uploadService struct {
	users repository.UserRepository
	leads repository.LeadRepository
}

func NewUploadService(d Deps) UploadService {
	return &uploadService{users: d.Users, leads: d.Leads}
}

func (s *uploadService) Create(ctx context.Context, userID string, in dto.UploadRequest) (*dto.UploadResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("dealer.uploads"),
		logger.Op("Create"),
	)

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultCategory
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = category
	}
	msg := strings.TrimSpace(in.Description)
	if msg == "" {
		msg = "Dealer upload: " + category
	}

	owner := u.ID
	lead, err := s.leads.Create(ctx, repository.CreateLeadInput{
		Name:    name,
		Email:   u.Email,
		Phone:   u.Profile.Phone,
		Company: u.Profile.Company,
		Country: u.Profile.Country,
		Type:    repository.LeadOther,
		Message: msg,
		Tags:    []string{TagUpload, category},
		Status:  repository.LeadNew,
		OwnerID: &owner,
	})
	if err != nil {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	log.Info("dealer upload stored", logger.LeadID(lead.ID), logger.UserID(u.ID))

	return &dto.UploadResponse{ID: lead.ID, Status: uploadStatus(lead.Status)}, nil
}

// List devuelve las entregas del usuario, más nuevas primero.
func (s *uploadService) List(ctx context.Context, userID string) (*dto.UploadList, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	leads, err := s.leads.List(ctx, repository.LeadFilter{Email: u.Email, Tag: TagUpload})
	if err != nil {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}

	out := &dto.UploadList{Items: make([]dto.UploadItem, 0, len(leads))}
	for _, l := range leads {
		out.Items = append(out.Items, dto.UploadItem{
			ID:          l.ID,
			Name:        l.Name,
			Category:    uploadCategory(l.Tags),
			Description: l.Message,
			Status:      uploadStatus(l.Status),
			CreatedAt:   l.CreatedAt,
		})
	}
	return out, nil
}

// uploadStatus traduce el estado del lead a la vista del dealer.
func uploadStatus(s repository.LeadStatus) string {
	switch s {
	case repository.LeadQualified:
		return "Approved"
	case repository.LeadClosed:
		return "Rejected"
	default:
		return "Pending"
	}
}

func uploadCategory(tags []string) string {
	for _, t := range tags {
		if t != TagUpload {
			return t
		}
	}
	return "Upload"
}
