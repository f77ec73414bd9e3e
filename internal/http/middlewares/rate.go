package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dropDatabas3/dealerdesk/internal/http/errors"
	"github.com/dropDatabas3/dealerdesk/internal/http/helpers"
	"github.com/dropDatabas3/dealerdesk/internal/metrics"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
	"github.com/dropDatabas3/dealerdesk/internal/rate"
)

// RateKeyFunc define cómo generar la clave de rate limiting.
type RateKeyFunc func(r *http.Request) string

// IPOnlyRateKey genera una clave basada solo en IP. No lee el body.
func IPOnlyRateKey(r *http.Request) string {
	return helpers.ClientIP(r)
}

// RateLimitConfig configura el middleware de rate limiting.
type RateLimitConfig struct {
	Limiter rate.Limiter
	Policy  rate.Policy
	KeyFunc RateKeyFunc
}

// WithRateLimit limita por clave bajo una política. Sin limiter o con
// Limit <= 0 no hace nada. Si el limiter falla, el request pasa.
func WithRateLimit(cfg RateLimitConfig) Middleware {
	if cfg.Limiter == nil || cfg.Policy.Limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPOnlyRateKey
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := cfg.Limiter.Allow(r.Context(), cfg.KeyFunc(r), cfg.Policy)
			if err != nil {
				logger.From(r.Context()).Warn("rate limiter error, allowing request",
					logger.Component("rate"), logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Policy.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			if res.WindowTTL > 0 {
				resetAt := time.Now().Add(res.WindowTTL).Unix()
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt, 10))
			}

			if !res.Allowed {
				if res.RetryAfter > 0 {
					secs := int(res.RetryAfter.Round(time.Second).Seconds())
					if secs < 1 {
						secs = 1
					}
					w.Header().Set("Retry-After", strconv.Itoa(secs))
				}
				metrics.RateLimited(r.URL.Path)
				errors.WriteError(w, errors.ErrRateLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
