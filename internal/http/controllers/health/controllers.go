// Package health contiene los probes de liveness y readiness.
package health

import (
	"net/http"

	"github.com/dropDatabas3/dealerdesk/internal/http/helpers"
	svc "github.com/dropDatabas3/dealerdesk/internal/http/services/health"
)

type Controllers struct {
	s svc.HealthService
}

func NewControllers(s svc.HealthService) *Controllers {
	return &Controllers{s: s}
}

// Live: GET /health/live
func (c *Controllers) Live(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.s.Live(r.Context()))
}

// Ready: GET /health/ready. 503 si el store no responde.
func (c *Controllers) Ready(w http.ResponseWriter, r *http.Request) {
	resp, ok := c.s.Ready(r.Context())
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, status, resp)
}
