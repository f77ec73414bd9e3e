package onboarding

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation: falta un campo requerido o tiene formato inválido.
	ErrValidation = errors.New("onboarding: validation failed")
	// ErrLeadNotFound / ErrDealerNotFound: la entidad referenciada no existe.
	ErrLeadNotFound   = errors.New("onboarding: lead not found")
	ErrDealerNotFound = errors.New("onboarding: dealer not found")
	// ErrNotDealerLead: el lead existe pero no es de tipo Dealer.
	ErrNotDealerLead = errors.New("onboarding: not a dealer lead")
	// ErrLeadClosed: un lead Closed no vuelve a Qualified.
	ErrLeadClosed = errors.New("onboarding: lead is closed")
	// ErrInvalidCredentials: el teléfono no coincide con el registrado,
	// o el login no tiene dealer ni lead y el modo permisivo está apagado.
	ErrInvalidCredentials = errors.New("onboarding: invalid credentials")
	// ErrUnavailable envuelve fallas del store en pasos obligatorios.
	ErrUnavailable = errors.New("onboarding: store unavailable")
)

// Códigos de ForbiddenError que ve el cliente.
const (
	CodePending   = "pending"
	CodeSuspended = "suspended"
)

// ForbiddenError es un bloqueo por estado del ciclo de vida del dealer.
type ForbiddenError struct {
	Code    string
	Message string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("onboarding: forbidden (%s): %s", e.Code, e.Message)
}

func forbiddenPending(msg string) error {
	return &ForbiddenError{Code: CodePending, Message: msg}
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func unavailable(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, step, err)
}
