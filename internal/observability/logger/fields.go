package logger

import (
	"time"

	"go.uber.org/zap"
)

// ─── HTTP ───

func RequestID(v string) zap.Field       { return zap.String("request_id", v) }
func Method(v string) zap.Field          { return zap.String("method", v) }
func Path(v string) zap.Field            { return zap.String("path", v) }
func Status(v int) zap.Field             { return zap.Int("status", v) }
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }
func DurationMs(v int64) zap.Field       { return zap.Int64("duration_ms", v) }
func Bytes(v int) zap.Field              { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field        { return zap.String("client_ip", v) }
func UserAgent(v string) zap.Field       { return zap.String("user_agent", v) }

// ─── Negocio ───

func UserID(v string) zap.Field    { return zap.String("user_id", v) }
func LeadID(v string) zap.Field    { return zap.String("lead_id", v) }
func DealerID(v string) zap.Field  { return zap.String("dealer_id", v) }
func SessionID(v string) zap.Field { return zap.String("session_id", v) }
func Roles(v []string) zap.Field   { return zap.Strings("roles", v) }

// Email registra el email enmascarado (j…@e….com).
func Email(v string) zap.Field { return zap.String("email", MaskEmail(v)) }

// ─── Sistema ───

// Component identifica el módulo (onboarding, session, leads...).
func Component(v string) zap.Field { return zap.String("component", v) }

// Op es la operación en curso (apply, accept, login...).
func Op(v string) zap.Field { return zap.String("op", v) }

// Layer es la capa: handler, service, repository.
func Layer(v string) zap.Field { return zap.String("layer", v) }

func Err(err error) zap.Field { return zap.Error(err) }

// ─── Genéricos ───

func Count(v int) zap.Field             { return zap.Int("count", v) }
func ID(v string) zap.Field             { return zap.String("id", v) }
func String(key, v string) zap.Field    { return zap.String(key, v) }
func Int(key string, v int) zap.Field   { return zap.Int(key, v) }
func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
func Any(key string, v any) zap.Field   { return zap.Any(key, v) }
