package admin

import (
	"context"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/dealerdesk/internal/http/errors"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 100
)

// EventService lista la auditoría, más nuevos primero.
type EventService interface {
	List(ctx context.Context, limit int) (*dto.EventList, error)
}

type eventService struct {
	audit repository.AuditRepository
}

func NewEventService(d Deps) EventService {
	return &eventService{audit: d.Audit}
}

func (s *eventService) List(ctx context.Context, limit int) (*dto.EventList, error) {
	switch {
	case limit <= 0:
		limit = defaultEventLimit
	case limit > maxEventLimit:
		limit = maxEventLimit
	}
	out := &dto.EventList{Items: []repository.AuditEvent{}}
	if s.audit == nil {
		return out, nil
	}
	items, err := s.audit.List(ctx, limit)
	if err != nil {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}
	if items != nil {
		out.Items = items
	}
	return out, nil
}
