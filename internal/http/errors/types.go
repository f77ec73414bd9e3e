package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError es la forma estándar de los errores que llegan al cliente.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // causa original, solo para logs
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// New crea un nuevo AppError
func New(status int, code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}

// Wrap crea un AppError envolviendo un error existente
func Wrap(err error, status int, code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
		Err:        err,
	}
}

// FromError convierte cualquier error en un AppError. Los errores de
// dominio conocidos se traducen (ver domain.go); el resto es un 500 que
// conserva la causa.
func FromError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	if mapped := fromDomain(err); mapped != nil {
		return mapped
	}
	return ErrInternalServerError.WithCause(err)
}

// WithDetail devuelve una COPIA con el detalle, para no mutar los
// errores predefinidos.
func (e *AppError) WithDetail(detail string) *AppError {
	newErr := *e
	newErr.Detail = detail
	return &newErr
}

// WithCause devuelve una COPIA con la causa.
func (e *AppError) WithCause(err error) *AppError {
	newErr := *e
	newErr.Err = err
	return &newErr
}

// ─── Catálogo ───
// Son valores compartidos: usar WithDetail/WithCause, nunca mutarlos.

// 400
var (
	ErrBadRequest           = New(http.StatusBadRequest, "BAD_REQUEST", "La solicitud contiene sintaxis inválida o parámetros faltantes.")
	ErrInvalidJSON          = New(http.StatusBadRequest, "INVALID_JSON", "El cuerpo de la solicitud no es un JSON válido.")
	ErrValidation           = New(http.StatusBadRequest, "VALIDATION_ERROR", "Uno o más campos son inválidos o faltan.")
	ErrInvalidState         = New(http.StatusBadRequest, "INVALID_STATE", "El recurso no está en un estado válido para esta operación.")
	ErrInvalidParameter     = New(http.StatusBadRequest, "INVALID_PARAMETER", "Uno de los parámetros de la URL o Query String es inválido.")
	ErrPasswordTooWeak      = New(http.StatusBadRequest, "PASSWORD_TOO_WEAK", "La contraseña no cumple con los requisitos de seguridad.")
	ErrBodyTooLarge         = New(http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "El cuerpo de la solicitud excede el tamaño máximo permitido.")
	ErrUnsupportedMediaType = New(http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type debe ser application/json.")
)

// 401 / 403
var (
	ErrUnauthorized       = New(http.StatusUnauthorized, "UNAUTHORIZED", "No autorizado. Se requiere autenticación.")
	ErrInvalidCredentials = New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Las credenciales proporcionadas son inválidas.")
	ErrTokenInvalid       = New(http.StatusUnauthorized, "TOKEN_INVALID", "El token es inválido, expiró o fue revocado.")
	ErrForbidden          = New(http.StatusForbidden, "FORBIDDEN", "No tiene permisos para realizar esta acción.")
)

// 404 / 405 / 409
var (
	ErrNotFound          = New(http.StatusNotFound, "NOT_FOUND", "El recurso solicitado no fue encontrado.")
	ErrRouteNotFound     = New(http.StatusNotFound, "ROUTE_NOT_FOUND", "La ruta solicitada no existe.")
	ErrMethodNotAllowed  = New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "El método HTTP no está permitido para este recurso.")
	ErrConflict          = New(http.StatusConflict, "CONFLICT", "La solicitud entra en conflicto con el estado actual del servidor.")
	ErrEmailAlreadyInUse = New(http.StatusConflict, "EMAIL_ALREADY_IN_USE", "El correo electrónico ya está registrado.")
)

// 429 / 5xx
var (
	ErrRateLimitExceeded   = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Ha excedido el límite de solicitudes. Intente más tarde.")
	ErrInternalServerError = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Ocurrió un error interno en el servidor.")
	ErrServiceUnavailable  = New(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "El servicio no está disponible temporalmente.")
)
