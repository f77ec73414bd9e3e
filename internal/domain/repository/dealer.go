package repository

import (
	"context"
	"time"
)

// DealerStatus es el estado del registro de organización.
type DealerStatus string

const (
	DealerPending   DealerStatus = "Pending"
	DealerActive    DealerStatus = "Active"
	DealerSuspended DealerStatus = "Suspended"
)

// Valid indica si el status es uno de los conocidos.
func (s DealerStatus) Valid() bool {
	switch s {
	case DealerPending, DealerActive, DealerSuspended:
		return true
	}
	return false
}

// Dealer es la proyección organizacional de un dealer (Organization Registry).
// ContactEmail se guarda tal cual se recibió; las búsquedas lo normalizan.
type Dealer struct {
	ID           string       `json:"id"`
	Org          string       `json:"org"`
	ContactName  string       `json:"contactName"`
	ContactEmail string       `json:"contactEmail"`
	Region       string       `json:"region"`
	Status       DealerStatus `json:"status"`
	Users        int          `json:"users"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// CreateDealerInput contiene los datos para crear un dealer.
type CreateDealerInput struct {
	Org          string
	ContactName  string
	ContactEmail string
	Region       string
	Status       DealerStatus
	Users        int
}

// DealerPatch es una actualización parcial. Los campos nil no se tocan.
type DealerPatch struct {
	Org          *string
	ContactName  *string
	ContactEmail *string
	Region       *string
	Status       *DealerStatus
	Users        *int
}

// DealerFilter filtra el listado de dealers.
type DealerFilter struct {
	Query  string // busca en org, contactName, contactEmail y region
	Status DealerStatus
	Region string
}

// DealerRepository define operaciones sobre el registro de dealers.
type DealerRepository interface {
	GetByID(ctx context.Context, id string) (*Dealer, error)

	// FindByContactEmail busca sin distinguir mayúsculas.
	// Si hubiera más de una fila (carrera entre requests) devuelve la más reciente.
	FindByContactEmail(ctx context.Context, email string) (*Dealer, error)

	Create(ctx context.Context, input CreateDealerInput) (*Dealer, error)
	Update(ctx context.Context, id string, patch DealerPatch) (*Dealer, error)

	// List retorna dealers ordenados por updatedAt descendente.
	List(ctx context.Context, filter DealerFilter) ([]Dealer, error)

	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
	CountByStatus(ctx context.Context, status DealerStatus) (int, error)
}
