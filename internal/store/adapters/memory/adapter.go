// Package memory implementa el adapter en memoria.
//
// Es process-local y no durable: pensado para desarrollo, tests y operación
// degradada. No ofrece garantías de consistencia más allá de la atomicidad
// de cada operación individual.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/store"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

func (a *memoryAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.Store, error) {
	return New(), nil
}

// DB guarda todas las colecciones detrás de un único lock.
type DB struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	users    map[string]*repository.User
	dealers  map[string]*dealerRow
	leads    map[string]*leadRow
	sessions map[string]*repository.Session
	audit    []repository.AuditEvent
}

// Las filas con seq permiten desempatar orden cuando dos timestamps coinciden.
type dealerRow struct {
	repository.Dealer
	seq int64
}

type leadRow struct {
	repository.Lead
	seq int64
}

// New crea un Store vacío.
func New() *DB {
	return &DB{
		now:      func() time.Time { return time.Now().UTC() },
		users:    make(map[string]*repository.User),
		dealers:  make(map[string]*dealerRow),
		leads:    make(map[string]*leadRow),
		sessions: make(map[string]*repository.Session),
	}
}

// SetClock reemplaza el reloj (tests).
func (db *DB) SetClock(now func() time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
}

func (db *DB) Name() string                   { return "memory" }
func (db *DB) Ping(ctx context.Context) error { return nil }
func (db *DB) Close() error                   { return nil }
func (db *DB) Durable() bool                  { return false }

func (db *DB) Users() repository.UserRepository       { return &userRepo{db: db} }
func (db *DB) Dealers() repository.DealerRepository   { return &dealerRepo{db: db} }
func (db *DB) Leads() repository.LeadRepository       { return &leadRepo{db: db} }
func (db *DB) Sessions() repository.SessionRepository { return &sessionRepo{db: db} }
func (db *DB) Audit() repository.AuditRepository      { return &auditRepo{db: db} }

// nextSeq debe llamarse con el lock de escritura tomado.
func (db *DB) nextSeq() int64 {
	db.seq++
	return db.seq
}

func newID() string { return uuid.NewString() }

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneMeta(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
