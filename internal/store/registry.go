// Package store provee el registry de adaptadores de almacenamiento y la
// interfaz Store que consume el resto de la aplicación.
//
// El adapter se elige una sola vez al arrancar (storage.driver) y se inyecta
// en servicios y controllers. Ninguna operación decide en runtime entre
// durable y memoria.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
)

// Store es la capacidad de persistencia completa de la aplicación.
type Store interface {
	// Name retorna el nombre del adapter (ej: "postgres", "memory").
	Name() string

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	// Close libera recursos.
	Close() error

	// Durable indica si los datos sobreviven a un reinicio del proceso.
	Durable() bool

	Users() repository.UserRepository
	Dealers() repository.DealerRepository
	Leads() repository.LeadRepository
	Sessions() repository.SessionRepository
	Audit() repository.AuditRepository
}

// Adapter crea conexiones Store.
type Adapter interface {
	Name() string
	Connect(ctx context.Context, cfg AdapterConfig) (Store, error)
}

// AdapterConfig configuración para conectar a un almacenamiento.
type AdapterConfig struct {
	// Name del adapter: "postgres" | "memory"
	Name string

	// DSN connection string (para DBs)
	DSN string

	// Pool settings (para DBs)
	MaxOpenConns int
	MaxIdleConns int
}

// ─── Registry Global ───

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// RegisterAdapter registra un adapter en el registry global.
// Llamar en init() de cada adapter.
func RegisterAdapter(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := a.Name()
	if _, exists := adapters[name]; exists {
		panic(fmt.Sprintf("store: adapter %q already registered", name))
	}
	adapters[name] = a
}

// GetAdapter obtiene un adapter por nombre.
func GetAdapter(name string) (Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[name]
	return a, ok
}

// ListAdapters retorna los nombres registrados, ordenados.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open abre el Store usando el adapter indicado en la config.
func Open(ctx context.Context, cfg AdapterConfig) (Store, error) {
	name := cfg.Name
	if name == "" {
		name = "memory"
	}
	a, ok := GetAdapter(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (registrados: %v)", ErrUnknownAdapter, name, ListAdapters())
	}
	s, err := a.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store: connect %s: %w", name, err)
	}
	return s, nil
}
