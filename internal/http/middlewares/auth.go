package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/dealerdesk/internal/http/errors"
	jwti "github.com/dropDatabas3/dealerdesk/internal/jwt"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
)

// RequireAuth valida el Bearer access token e inyecta las claims.
// También agrega user_id al logger del request.
func RequireAuth(issuer *jwti.Issuer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				w.Header().Set("WWW-Authenticate", `Bearer`)
				errors.WriteError(w, errors.ErrUnauthorized.WithDetail("missing bearer token"))
				return
			}

			cl, err := issuer.ParseAccess(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				errors.WriteError(w, errors.ErrTokenInvalid.WithCause(err))
				return
			}

			ctx := WithClaims(r.Context(), cl)
			ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.UserID(cl.Subject)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
