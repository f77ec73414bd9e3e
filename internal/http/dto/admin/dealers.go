package admin

import (
	"time"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

type DealerCreateRequest struct {
	Org         string `json:"org"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Region      string `json:"region"`
}

type DealerUpdateRequest struct {
	Org          *string `json:"org"`
	ContactName  *string `json:"contactName"`
	ContactEmail *string `json:"contactEmail"`
	Region       *string `json:"region"`
	Status       *string `json:"status"`
	Users        *int    `json:"users"`
}

type DealerList struct {
	Items []repository.Dealer `json:"items"`
}

// DealerDetail agrega el teléfono del usuario (o del último lead).
type DealerDetail struct {
	ID           string    `json:"id"`
	Org          string    `json:"org"`
	ContactName  string    `json:"contactName"`
	ContactEmail string    `json:"contactEmail"`
	Phone        string    `json:"phone"`
	Region       string    `json:"region"`
	Status       string    `json:"status"`
	Users        int       `json:"users"`
	UserID       string    `json:"userId,omitempty"`
	Last         time.Time `json:"last"`
}
