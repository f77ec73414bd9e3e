package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dropDatabas3/dealerdesk/internal/bootstrap"
	"github.com/dropDatabas3/dealerdesk/internal/config"
	"github.com/dropDatabas3/dealerdesk/internal/http/server"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
	"github.com/dropDatabas3/dealerdesk/internal/store"
	"github.com/dropDatabas3/dealerdesk/internal/store/migrations"

	// adapters se registran via init()
	_ "github.com/dropDatabas3/dealerdesk/internal/store/adapters/memory"
	_ "github.com/dropDatabas3/dealerdesk/internal/store/adapters/pg"
)

var version = "dev"

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

func main() {
	var (
		flagConfigPath = flag.String("config", "", "ruta a config.yaml (fallback: $CONFIG_PATH o configs/config.yaml)")
		flagEnvFile    = flag.String("env-file", ".env", "ruta a .env (si existe, se carga)")
		flagPrint      = flag.Bool("print-config", false, "imprime config efectiva y termina")
	)
	flag.Parse()

	if *flagEnvFile != "" && fileExists(*flagEnvFile) {
		_ = godotenv.Load(*flagEnvFile)
	}

	cfgPath := *flagConfigPath
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	if cfgPath == "" && fileExists("configs/config.yaml") {
		cfgPath = "configs/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: cfg.App.Name,
		Version:     version,
	})
	log := logger.L()
	defer func() { _ = log.Sync() }()

	if *flagPrint {
		printConfigSummary(cfg)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.ToContext(ctx, log)

	if err := run(ctx, cfg); err != nil {
		log.Fatal("service failed", logger.Err(err))
	}
	log.Info("service stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.From(ctx)

	// ─── Migraciones ───
	if cfg.Storage.Driver == "postgres" && cfg.Storage.Migrate {
		if err := migrations.Up(cfg.Storage.DSN); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		log.Info("migrations applied")
	}

	// ─── Store ───
	st, err := store.Open(ctx, store.AdapterConfig{
		Name:         cfg.Storage.Driver,
		DSN:          cfg.Storage.DSN,
		MaxOpenConns: cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Storage.Postgres.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer st.Close()
	if !st.Durable() {
		log.Warn("store is not durable, data is lost on restart", zap.String("driver", st.Name()))
	}

	// ─── HTTP ───
	app, err := server.Build(ctx, cfg, st, version)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("cleanup failed", logger.Err(err))
		}
	}()

	// ─── Admin bootstrap ───
	_, err = bootstrap.EnsureAdmin(ctx, bootstrap.AdminConfig{
		Users:    st.Users(),
		Email:    cfg.Bootstrap.AdminEmail,
		Password: cfg.Bootstrap.AdminPassword,
		Policy:   app.Policy,
	})
	switch {
	case errors.Is(err, bootstrap.ErrSkipped):
		log.Info("no admin configured; the first registered user becomes admin")
	case err != nil:
		log.Warn("admin bootstrap failed", logger.Err(err))
	}

	return server.Serve(ctx, cfg.Server.Addr, app.Handler, config.Dur(cfg.Server.ShutdownTimeout, 10*time.Second))
}

func printConfigSummary(c *config.Config) {
	dsn := "NOT_SET"
	if c.Storage.DSN != "" {
		dsn = "***masked***"
	}
	fmt.Printf(`CONFIG:
  app.env=%s name=%s
  server.addr=%s base_path=%q cors=%v shutdown=%s

  storage.driver=%s dsn=%s migrate=%t

  cache.kind=%s
  redis.addr=%s db=%d prefix=%s

  jwt.issuer=%s access_ttl=%s refresh_ttl=%s

  rate(enabled=%t, login=%d/%s, apply=%d/%s)

  dealer.allow_unvetted_login=%t
  pwd_policy(min=%d) password_blacklist_path=%s
  log.level=%s
`,
		c.App.Env, c.App.Name,
		c.Server.Addr, c.Server.BasePath, c.Server.CORSAllowedOrigins, c.Server.ShutdownTimeout,
		c.Storage.Driver, dsn, c.Storage.Migrate,
		c.Cache.Kind, c.Cache.Redis.Addr, c.Cache.Redis.DB, c.Cache.Redis.Prefix,
		c.JWT.Issuer, c.JWT.AccessTTL, c.JWT.RefreshTTL,
		c.Rate.Enabled, c.Rate.Login.Limit, c.Rate.Login.Window, c.Rate.Apply.Limit, c.Rate.Apply.Window,
		c.AllowUnvettedLogin(),
		c.Security.PasswordMinLength, c.Security.PasswordBlacklistPath,
		c.Log.Level,
	)
}
