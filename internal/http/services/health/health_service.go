// Package health contiene el service para health checks.
package health

import (
	"context"
	"time"

	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/health"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Live(ctx context.Context) dto.HealthResponse
	Ready(ctx context.Context) (dto.HealthResponse, bool)
}

// Deps contiene las dependencias inyectables para el health service.
type Deps struct {
	StoreName  string
	Durable    bool
	Version    string
	StoreCheck func(ctx context.Context) error
	CacheCheck func(ctx context.Context) error // opcional
	Timeout    time.Duration
}

type healthService struct {
	deps Deps
}

func NewHealthService(deps Deps) HealthService {
	if deps.Timeout <= 0 {
		deps.Timeout = 2 * time.Second
	}
	return &healthService{deps: deps}
}

func (s *healthService) base() dto.HealthResponse {
	return dto.HealthResponse{
		Status:     "ok",
		Version:    s.deps.Version,
		Store:      s.deps.StoreName,
		Durable:    s.deps.Durable,
		Components: map[string]string{},
		Timestamp:  time.Now().UTC(),
	}
}

func (s *healthService) Live(ctx context.Context) dto.HealthResponse {
	return s.base()
}

// Ready falla (false) solo si el store no responde. El cache caído
// degrada pero no saca la instancia de servicio.
func (s *healthService) Ready(ctx context.Context) (dto.HealthResponse, bool) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("health"), logger.Op("Ready"))
	resp := s.base()
	ready := true

	check := func(name string, fn func(context.Context) error) error {
		cctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
		defer cancel()
		if err := fn(cctx); err != nil {
			resp.Components[name] = "error"
			log.Warn("health check failed", logger.String("component", name), logger.Err(err))
			return err
		}
		resp.Components[name] = "ok"
		return nil
	}

	if s.deps.StoreCheck != nil {
		if err := check("store", s.deps.StoreCheck); err != nil {
			ready = false
			resp.Status = "unavailable"
		}
	}
	if s.deps.CacheCheck != nil {
		if err := check("cache", s.deps.CacheCheck); err != nil && ready {
			resp.Status = "degraded"
		}
	}
	return resp, ready
}
