// Package admin contiene DTOs de los endpoints administrativos
// (leads, dealers, users, stats, auditoría).
package admin

import "github.com/dropDatabas3/dealerdesk/internal/domain/repository"

type LeadCreateRequest struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Company string   `json:"company"`
	Country string   `json:"country"`
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Tags    []string `json:"tags"`
	Status  string   `json:"status"`
	OwnerID *string  `json:"owner"`
}

// LeadUpdateRequest: los campos ausentes no se tocan.
type LeadUpdateRequest struct {
	Name    *string  `json:"name"`
	Email   *string  `json:"email"`
	Phone   *string  `json:"phone"`
	Company *string  `json:"company"`
	Country *string  `json:"country"`
	Type    *string  `json:"type"`
	Message *string  `json:"message"`
	Tags    []string `json:"tags"`
	Status  *string  `json:"status"`
	OwnerID *string  `json:"owner"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

type LeadList struct {
	Items []repository.Lead `json:"items"`
}
