// Package pg implementa el adapter PostgreSQL.
// Usa pgxpool directamente; el esquema lo crean las migraciones de
// internal/store/migrations.
package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/store"
)

func init() {
	store.RegisterAdapter(&postgresAdapter{})
}

// postgresAdapter implementa store.Adapter para PostgreSQL.
type postgresAdapter struct{}

func (a *postgresAdapter) Name() string { return "postgres" }

func (a *postgresAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}

	// Configurar pool
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	} else {
		poolCfg.MinConns = 2
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}

	// Verificar conexión
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping failed: %w", err)
	}

	return &Conn{pool: pool}, nil
}

// Conn es el Store respaldado por un pgxpool.
type Conn struct {
	pool *pgxpool.Pool
}

func (c *Conn) Name() string                   { return "postgres" }
func (c *Conn) Durable() bool                  { return true }
func (c *Conn) Ping(ctx context.Context) error { return c.pool.Ping(ctx) }

func (c *Conn) Close() error {
	c.pool.Close()
	return nil
}

// Pool expone el pool (métricas de conexiones).
func (c *Conn) Pool() *pgxpool.Pool { return c.pool }

// ─── Repositorios ───

func (c *Conn) Users() repository.UserRepository       { return &userRepo{pool: c.pool} }
func (c *Conn) Dealers() repository.DealerRepository   { return &dealerRepo{pool: c.pool} }
func (c *Conn) Leads() repository.LeadRepository       { return &leadRepo{pool: c.pool} }
func (c *Conn) Sessions() repository.SessionRepository { return &sessionRepo{pool: c.pool} }
func (c *Conn) Audit() repository.AuditRepository      { return &auditRepo{pool: c.pool} }

// ─── Helpers ───

const uniqueViolation = "23505"

// mapErr traduce errores de pgx a errores de dominio.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("pg: %s: %w", op, repository.ErrConflict)
	}
	return fmt.Errorf("pg: %s: %w", op, err)
}

func newID() string { return uuid.NewString() }

// setList arma "col = $n" para UPDATE parciales.
type setList struct {
	cols []string
	args []any
}

func (s *setList) add(col string, v any) {
	s.args = append(s.args, v)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (s *setList) empty() bool { return len(s.cols) == 0 }

func (s *setList) sql() string { return strings.Join(s.cols, ", ") }

// whereList arma condiciones AND para listados filtrados.
type whereList struct {
	conds []string
	args  []any
}

// add reemplaza cada "?" del fragmento por el placeholder posicional.
func (w *whereList) add(cond string, vals ...any) {
	for _, v := range vals {
		w.args = append(w.args, v)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *whereList) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(q)) + "%"
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
