package auth

import (
	"net/http"

	httperrors "github.com/dropDatabas3/dealerdesk/internal/http/errors"
)

// Errores que el controller escribe tal cual.
var (
	ErrMissingFields      = httperrors.New(http.StatusBadRequest, "MISSING_FIELDS", "Email y password son requeridos.")
	ErrEmailTaken         = httperrors.ErrEmailAlreadyInUse
	ErrInvalidCredentials = httperrors.ErrInvalidCredentials
)
