package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/http/errors"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
)

func normRole(r string) string { return strings.ToLower(strings.TrimSpace(r)) }

// RequireRole deja pasar si el token trae alguno de los roles (sin
// distinguir mayúsculas). Va después de RequireAuth; sin claims es 401.
func RequireRole(roles ...string) Middleware {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[normRole(r)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				errors.WriteError(w, errors.ErrUnauthorized.WithDetail("token invalid or missing"))
				return
			}
			for _, have := range claims.Roles {
				if _, ok := allowed[normRole(have)]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.From(r.Context()).Debug("role check failed",
				logger.UserID(claims.Subject), logger.Roles(claims.Roles))
			errors.WriteError(w, errors.ErrForbidden.WithDetail("insufficient role"))
		})
	}
}
