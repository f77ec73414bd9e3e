// Package metrics define los collectors Prometheus del servicio.
// Vive aparte de internal/http para que onboarding pueda registrar
// contadores sin importar la capa HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once    sync.Once
	initErr error

	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        *prometheus.GaugeVec
	corsRejectsTotal    *prometheus.CounterVec

	// Dominio
	reconciliationsTotal *prometheus.CounterVec
	rateLimitedTotal     *prometheus.CounterVec
)

// Config agrupa las dependencias para exponer /metrics.
type Config struct {
	Registry prometheus.Registerer
	// Pool es opcional: solo existe con el adapter postgres.
	Pool func() *pgxpool.Pool
}

// Register crea y registra los collectors (una sola vez) y devuelve el
// handler de /metrics.
func Register(cfg Config) (http.Handler, error) {
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	once.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "path", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		httpInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo por método y ruta",
		}, []string{"method", "path"})

		corsRejectsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cors_rejects_total",
			Help: "Requests CORS rechazadas por origin no permitido",
		}, []string{"origin"})

		reconciliationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dealer_reconciliations_total",
			Help: "Operaciones del flujo de dealers por resultado",
		}, []string{"op", "result"}) // op: apply|accept|login, result: ok|forbidden|invalid|not_found|error

		rateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rate_limited_total",
			Help: "Requests rechazadas por rate limit",
		}, []string{"path"})

		for _, c := range []prometheus.Collector{
			httpRequestsTotal, httpRequestDuration, httpInflight,
			corsRejectsTotal, reconciliationsTotal, rateLimitedTotal,
		} {
			if err := registerCollector(registry, c); err != nil {
				initErr = err
				return
			}
		}
	})
	if initErr != nil {
		return nil, initErr
	}

	if cfg.Pool != nil {
		if err := registerCollector(registry, newPoolCollector(cfg.Pool)); err != nil {
			return nil, err
		}
	}
	return promhttp.Handler(), nil
}

// registerCollector ignora duplicados (tests que arman varios routers).
func registerCollector(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

// ─── Registro desde el código ───

// HTTPStart marca un request en vuelo y devuelve la función que lo cierra
// con el status final.
func HTTPStart(method, path string) func(status int) {
	if httpRequestsTotal == nil {
		return func(int) {}
	}
	method = strings.ToUpper(method)
	label := NormalizePath(path)
	httpInflight.WithLabelValues(method, label).Inc()
	start := time.Now()

	return func(status int) {
		httpInflight.WithLabelValues(method, label).Dec()
		httpRequestDuration.WithLabelValues(method, label).Observe(time.Since(start).Seconds())
		if status == 0 {
			status = http.StatusOK
		}
		httpRequestsTotal.WithLabelValues(method, label, strconv.Itoa(status)).Inc()
	}
}

// Reconciliation cuenta una operación del flujo de dealers.
func Reconciliation(op, result string) {
	if reconciliationsTotal != nil {
		reconciliationsTotal.WithLabelValues(op, result).Inc()
	}
}

func CORSReject(origin string) {
	if corsRejectsTotal != nil {
		corsRejectsTotal.WithLabelValues(origin).Inc()
	}
}

func RateLimited(path string) {
	if rateLimitedTotal != nil {
		rateLimitedTotal.WithLabelValues(NormalizePath(path)).Inc()
	}
}

// ─── Pool collector ───

type poolCollector struct {
	pool func() *pgxpool.Pool

	acquiredDesc *prometheus.Desc
	idleDesc     *prometheus.Desc
	totalDesc    *prometheus.Desc
}

func newPoolCollector(pool func() *pgxpool.Pool) *poolCollector {
	return &poolCollector{
		pool:         pool,
		acquiredDesc: prometheus.NewDesc("pg_pool_acquired", "Conexiones adquiridas", nil, nil),
		idleDesc:     prometheus.NewDesc("pg_pool_idle", "Conexiones inactivas", nil, nil),
		totalDesc:    prometheus.NewDesc("pg_pool_total", "Conexiones totales", nil, nil),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquiredDesc
	ch <- c.idleDesc
	ch <- c.totalDesc
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	p := c.pool()
	if p == nil {
		return
	}
	stat := p.Stat()
	ch <- prometheus.MustNewConstMetric(c.acquiredDesc, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idleDesc, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.totalDesc, prometheus.GaugeValue, float64(stat.TotalConns()))
}
