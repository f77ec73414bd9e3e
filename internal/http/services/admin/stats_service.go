package admin

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/dealerdesk/internal/cache"
	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/dealerdesk/internal/http/errors"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
)

const statsCacheKey = "admin:stats"

// StatsService calcula los contadores del dashboard.
type StatsService interface {
	Get(ctx context.Context) (*dto.Stats, error)
}

type statsService struct {
	dealers repository.DealerRepository
	leads   repository.LeadRepository
	cache   cache.Client
	ttl     time.Duration
	now     func() time.Time
}

func NewStatsService(d Deps) StatsService {
	return &statsService{dealers: d.Dealers, leads: d.Leads, cache: d.Cache, ttl: d.StatsTTL, now: d.Now}
}

func (s *statsService) Get(ctx context.Context) (*dto.Stats, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("admin.stats"))

	if s.cache != nil {
		var cached dto.Stats
		err := cache.GetJSON(ctx, s.cache, statsCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !cache.IsNotFound(err) {
			log.Warn("stats cache read failed", logger.Err(err))
		}
	}

	var out dto.Stats
	since := s.now().UTC().Add(-30 * 24 * time.Hour)

	// Cuatro conteos independientes en paralelo.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalLeads, err = s.leads.Count(gctx, repository.LeadCountFilter{})
		return err
	})
	g.Go(func() (err error) {
		out.Proto30d, err = s.leads.Count(gctx, repository.LeadCountFilter{Type: repository.LeadPrototype, Since: &since})
		return err
	})
	g.Go(func() (err error) {
		out.ActiveDealers, err = s.dealers.CountByStatus(gctx, repository.DealerActive)
		return err
	})
	g.Go(func() (err error) {
		out.PendingDealers, err = s.dealers.CountByStatus(gctx, repository.DealerPending)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, httperrors.ErrServiceUnavailable.WithCause(err)
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, statsCacheKey, out, s.ttl); err != nil {
			log.Warn("stats cache write failed", logger.Err(err))
		}
	}
	return &out, nil
}
