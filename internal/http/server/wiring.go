// Package server arma el grafo de dependencias HTTP a partir de la config
// y expone el ciclo de vida del http.Server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dropDatabas3/dealerdesk/internal/cache"
	"github.com/dropDatabas3/dealerdesk/internal/config"
	"github.com/dropDatabas3/dealerdesk/internal/http/controllers"
	"github.com/dropDatabas3/dealerdesk/internal/http/router"
	"github.com/dropDatabas3/dealerdesk/internal/http/services"
	jwti "github.com/dropDatabas3/dealerdesk/internal/jwt"
	"github.com/dropDatabas3/dealerdesk/internal/metrics"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
	"github.com/dropDatabas3/dealerdesk/internal/onboarding"
	"github.com/dropDatabas3/dealerdesk/internal/rate"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
	"github.com/dropDatabas3/dealerdesk/internal/session"
	"github.com/dropDatabas3/dealerdesk/internal/store"
)

// App es el resultado del wiring: el handler listo y lo que hay que cerrar.
type App struct {
	Handler http.Handler
	Engine  *onboarding.Engine
	Policy  password.Policy

	closers []func() error
}

// Close libera cache/redis. El store lo cierra quien lo abrió.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build construye cache, limiter, emisores de tokens, motor de onboarding,
// services, controllers y router sobre un store ya abierto.
func Build(ctx context.Context, cfg *config.Config, st store.Store, version string) (*App, error) {
	log := logger.From(ctx).With(logger.Component("wiring"))
	app := &App{}

	// ─── Cache + Rate limiter ───
	var (
		cc      cache.Client
		limiter rate.Limiter
	)
	switch cfg.Cache.Kind {
	case "redis":
		rdb, err := cache.DialRedis(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		ttl := config.Dur(cfg.Cache.Memory.DefaultTTL, 2*time.Minute)
		cc = cache.NewRedis(rdb, cfg.Cache.Redis.Prefix, ttl)
		limiter = rate.NewRedisLimiter(rdb, cfg.Cache.Redis.Prefix+"rl:")
		app.closers = append(app.closers, rdb.Close)
	default:
		cc = cache.NewMemory("", config.Dur(cfg.Cache.Memory.DefaultTTL, 2*time.Minute))
		limiter = rate.NewMemoryLimiter()
	}
	if !cfg.Rate.Enabled {
		limiter = nil
	}
	log.Info("cache ready", zap.String("kind", cfg.Cache.Kind), logger.Bool("rate_limit", limiter != nil))

	// ─── Tokens ───
	tok := jwti.NewIssuer(cfg.JWT.Issuer, cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)
	tok.AccessTTL = config.Dur(cfg.JWT.AccessTTL, jwti.DefaultAccessTTL)
	tok.RefreshTTL = config.Dur(cfg.JWT.RefreshTTL, jwti.DefaultRefreshTTL)
	sess := session.NewIssuer(tok, st.Sessions(), st.Users())

	// ─── Password policy ───
	bl, err := password.LoadBlacklist(cfg.Security.PasswordBlacklistPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("password blacklist: %w", err)
	}
	app.Policy = password.Policy{MinLength: cfg.Security.PasswordMinLength, Blacklist: bl}

	// ─── Onboarding ───
	app.Engine = onboarding.New(onboarding.Deps{
		Users:   st.Users(),
		Dealers: st.Dealers(),
		Leads:   st.Leads(),
		Audit:   st.Audit(),
		Tokens:  sess,
	}, onboarding.Options{AllowUnvettedLogin: cfg.AllowUnvettedLogin()})

	// ─── Metrics ───
	mcfg := metrics.Config{Registry: prometheus.DefaultRegisterer}
	if p, ok := st.(interface{ Pool() *pgxpool.Pool }); ok {
		mcfg.Pool = p.Pool
	}
	metricsHandler, err := metrics.Register(mcfg)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("metrics: %w", err)
	}

	// ─── HTTP ───
	svcs := services.New(services.Deps{
		Store:    st,
		Engine:   app.Engine,
		Sessions: sess,
		Cache:    cc,
		Policy:   app.Policy,
		Version:  version,
	})

	app.Handler = router.New(router.Deps{
		Controllers: controllers.New(svcs),
		Issuer:      tok,
		BasePath:    cfg.Server.BasePath,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
		Limiter:     limiter,
		LoginPolicy: rate.Policy{
			Name:   "login",
			Limit:  cfg.Rate.Login.Limit,
			Window: config.Dur(cfg.Rate.Login.Window, time.Minute),
		},
		ApplyPolicy: rate.Policy{
			Name:   "apply",
			Limit:  cfg.Rate.Apply.Limit,
			Window: config.Dur(cfg.Rate.Apply.Window, 10*time.Minute),
		},
		Metrics: metricsHandler,
	})
	return app, nil
}

// Serve levanta el servidor y hace shutdown ordenado cuando ctx se cancela.
func Serve(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration) error {
	log := logger.From(ctx).With(logger.Component("server"))

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", shutdownTimeout))
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
