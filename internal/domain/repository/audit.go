package repository

import (
	"context"
	"time"
)

// Acciones de auditoría conocidas.
const (
	AuditDealerAccept = "dealer_accept"
	AuditDealerLogin  = "dealer_login"
	AuditImpersonate  = "impersonate"
)

// AuditEvent es un registro de auditoría append-only.
type AuditEvent struct {
	ID        string         `json:"id"`
	ActorID   string         `json:"actorId"`
	Action    string         `json:"action"`
	Target    string         `json:"target"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AuditRepository persiste eventos de auditoría.
type AuditRepository interface {
	Append(ctx context.Context, ev AuditEvent) error

	// List retorna los eventos más recientes primero.
	List(ctx context.Context, limit int) ([]AuditEvent, error)
}
