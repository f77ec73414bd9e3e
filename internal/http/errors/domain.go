package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/onboarding"
	"github.com/dropDatabas3/dealerdesk/internal/session"
)

// fromDomain traduce errores de onboarding, session y repository.
// Retorna nil si el error no es conocido.
func fromDomain(err error) *AppError {
	if err == nil {
		return nil
	}

	var fe *onboarding.ForbiddenError
	if stderrors.As(err, &fe) {
		return &AppError{
			Code:       fe.Code,
			Message:    fe.Message,
			HTTPStatus: http.StatusForbidden,
			Err:        err,
		}
	}

	switch {
	case stderrors.Is(err, onboarding.ErrValidation):
		return ErrValidation.WithDetail(detailOf(err)).WithCause(err)
	case stderrors.Is(err, onboarding.ErrLeadNotFound):
		return ErrNotFound.WithDetail("lead not found").WithCause(err)
	case stderrors.Is(err, onboarding.ErrDealerNotFound):
		return ErrNotFound.WithDetail("dealer not found").WithCause(err)
	case stderrors.Is(err, onboarding.ErrNotDealerLead):
		return ErrInvalidState.WithDetail("lead is not a Dealer lead").WithCause(err)
	case stderrors.Is(err, onboarding.ErrLeadClosed):
		return ErrInvalidState.WithDetail("lead is closed").WithCause(err)
	case stderrors.Is(err, onboarding.ErrInvalidCredentials):
		return ErrInvalidCredentials.WithCause(err)
	case stderrors.Is(err, onboarding.ErrUnavailable):
		return ErrServiceUnavailable.WithCause(err)
	case stderrors.Is(err, session.ErrInvalidRefresh):
		return ErrTokenInvalid.WithCause(err)
	case stderrors.Is(err, repository.ErrNotFound):
		return ErrNotFound.WithCause(err)
	case stderrors.Is(err, repository.ErrConflict):
		return ErrConflict.WithCause(err)
	case stderrors.Is(err, repository.ErrInvalidInput):
		return ErrValidation.WithCause(err)
	}
	return nil
}

// detailOf quita el prefijo del sentinel: "onboarding: validation failed: email is required" → "email is required".
func detailOf(err error) string {
	msg := err.Error()
	prefix := onboarding.ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return ""
}
