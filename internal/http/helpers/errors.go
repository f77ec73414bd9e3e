package helpers

import (
	"net/http"

	"github.com/dropDatabas3/dealerdesk/internal/http/errors"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
)

// WriteError traduce err a AppError, lo loguea con el logger del request
// (error si es 5xx, debug si no) y escribe la respuesta.
func WriteError(w http.ResponseWriter, r *http.Request, op string, err error) {
	appErr := errors.FromError(err)
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op(op))
	if appErr.HTTPStatus >= 500 {
		log.Error("request error", logger.String("code", appErr.Code), logger.Err(err))
	} else {
		log.Debug("request rejected", logger.String("code", appErr.Code), logger.Err(err))
	}
	errors.WriteError(w, appErr)
}
