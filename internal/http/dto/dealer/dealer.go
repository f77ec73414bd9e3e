// Package dealer contiene DTOs del portal público y autenticado de dealers.
package dealer

import "time"

type ApplyRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Country string `json:"country"`
	Message string `json:"message"`
}

type ApplyResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type LoginRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UploadRequest es una entrega del dealer (reporte, foto de instalación, etc).
type UploadRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type UploadResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UploadItem es la vista del dealer: Pending | Approved | Rejected.
type UploadItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UploadList struct {
	Items []UploadItem `json:"items"`
}
