package middlewares

import (
	"context"

	jwti "github.com/dropDatabas3/dealerdesk/internal/jwt"
)

// =================================================================================
// CONTEXT KEYS
// =================================================================================

type ctxKey string

const (
	ctxClaimsKey    ctxKey = "claims"
	ctxRequestIDKey ctxKey = "request_id"
)

// WithClaims inyecta las claims del access token en el contexto.
func WithClaims(ctx context.Context, c *jwti.AccessClaims) context.Context {
	return context.WithValue(ctx, ctxClaimsKey, c)
}

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetClaims obtiene las claims JWT del contexto.
// Retorna nil si el middleware de auth no se aplicó.
func GetClaims(ctx context.Context) *jwti.AccessClaims {
	if c, ok := ctx.Value(ctxClaimsKey).(*jwti.AccessClaims); ok {
		return c
	}
	return nil
}

// GetUserID devuelve el sub del token, o "" si no hay.
func GetUserID(ctx context.Context) string {
	if c := GetClaims(ctx); c != nil {
		return c.Subject
	}
	return ""
}

// GetRequestID obtiene el request ID del contexto.
func GetRequestID(ctx context.Context) string {
	if s, ok := ctx.Value(ctxRequestIDKey).(string); ok {
		return s
	}
	return ""
}
