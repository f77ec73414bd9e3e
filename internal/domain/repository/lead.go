package repository

import (
	"context"
	"time"
)

// LeadType clasifica el propósito de un lead.
type LeadType string

const (
	LeadPrototype LeadType = "Prototype"
	LeadDealer    LeadType = "Dealer"
	LeadMedia     LeadType = "Media"
	LeadOther     LeadType = "Other"
)

// Valid indica si el tipo es uno de los conocidos.
func (t LeadType) Valid() bool {
	switch t {
	case LeadPrototype, LeadDealer, LeadMedia, LeadOther:
		return true
	}
	return false
}

// LeadStatus es el estado de revisión de un lead.
type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadInReview  LeadStatus = "In Review"
	LeadQualified LeadStatus = "Qualified"
	LeadClosed    LeadStatus = "Closed"
)

// Valid indica si el status es uno de los conocidos.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadInReview, LeadQualified, LeadClosed:
		return true
	}
	return false
}

// Lead es una entrada del Application Ledger.
type Lead struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Company   string     `json:"company"`
	Country   string     `json:"country"`
	Type      LeadType   `json:"type"`
	Message   string     `json:"message"`
	Tags      []string   `json:"tags"`
	Status    LeadStatus `json:"status"`
	OwnerID   *string    `json:"owner"`
	CreatedAt time.Time  `json:"createdAt"`
}

// HasTag indica si el lead tiene el tag exacto.
func (l *Lead) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CreateLeadInput contiene los datos para crear un lead.
type CreateLeadInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Country string
	Type    LeadType
	Message string
	Tags    []string
	Status  LeadStatus
	OwnerID *string
}

// LeadPatch es una actualización parcial. Los campos nil no se tocan.
type LeadPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Country *string
	Type    *LeadType
	Message *string
	Tags    []string // nil = sin cambios
	Status  *LeadStatus
	OwnerID *string
}

// LeadFilter filtra el listado de leads. From/To son inclusivos.
type LeadFilter struct {
	Query   string // busca en name, email y company
	Status  LeadStatus
	Type    LeadType
	From    *time.Time
	To      *time.Time
	Email   string // match exacto sin distinguir mayúsculas
	Tag     string
	OwnerID string
}

// LeadCountFilter filtra los conteos usados por las estadísticas.
type LeadCountFilter struct {
	Type  LeadType
	Since *time.Time
}

// LeadRepository define operaciones sobre el Application Ledger.
type LeadRepository interface {
	GetByID(ctx context.Context, id string) (*Lead, error)
	Create(ctx context.Context, input CreateLeadInput) (*Lead, error)

	// FindLatestByEmailAndType retorna el lead más reciente del tipo dado
	// para el email (sin distinguir mayúsculas). ErrNotFound si no hay.
	FindLatestByEmailAndType(ctx context.Context, email string, t LeadType) (*Lead, error)

	Update(ctx context.Context, id string, patch LeadPatch) (*Lead, error)

	// List retorna leads ordenados por createdAt descendente.
	List(ctx context.Context, filter LeadFilter) ([]Lead, error)

	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
	Count(ctx context.Context, filter LeadCountFilter) (int, error)
}
