// Package jwt emite y valida los tokens de sesión (HS256).
// Access y refresh se firman con secretos distintos: un refresh nunca
// valida como access y viceversa.
package jwt

import (
	"errors"
	"time"

	"github.com/google/uuid"
	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("jwt: missing signing secret")
	ErrInvalidToken  = errors.New("jwt: invalid token")
	ErrInvalidIssuer = errors.New("jwt: invalid issuer")
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 720 * time.Hour
)

// AccessClaims son las claims del access token.
type AccessClaims struct {
	Roles          []string `json:"roles"`
	ImpersonatedBy string   `json:"imp_by,omitempty"`
	jwtv5.RegisteredClaims
}

// RefreshClaims solo llevan las registradas (sub, jti, exp...).
type RefreshClaims struct {
	jwtv5.RegisteredClaims
}

// Issuer firma tokens con secretos simétricos.
type Issuer struct {
	Iss           string        // "iss"
	AccessSecret  []byte        // secreto HS256 para access
	RefreshSecret []byte        // secreto HS256 para refresh
	AccessTTL     time.Duration // ej: 15m
	RefreshTTL    time.Duration // ej: 720h

	now func() time.Time
}

func NewIssuer(iss, accessSecret, refreshSecret string) *Issuer {
	return &Issuer{
		Iss:           iss,
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     DefaultAccessTTL,
		RefreshTTL:    DefaultRefreshTTL,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

func (i *Issuer) clock() time.Time {
	if i.now == nil {
		return time.Now().UTC()
	}
	return i.now().UTC()
}

// IssueAccess emite un access token para sub con sus roles.
// impBy != "" marca el token como impersonado por ese admin.
func (i *Issuer) IssueAccess(sub string, roles []string, impBy string) (string, time.Time, error) {
	if len(i.AccessSecret) == 0 {
		return "", time.Time{}, ErrMissingSecret
	}
	now := i.clock()
	exp := now.Add(i.AccessTTL)
	if roles == nil {
		roles = []string{}
	}

	claims := AccessClaims{
		Roles:          roles,
		ImpersonatedBy: impBy,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   sub,
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.AccessSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// IssueRefresh emite un refresh token. El jti lo hace único aunque se
// emitan dos en el mismo segundo.
func (i *Issuer) IssueRefresh(sub string) (string, time.Time, error) {
	if len(i.RefreshSecret) == 0 {
		return "", time.Time{}, ErrMissingSecret
	}
	now := i.clock()
	exp := now.Add(i.RefreshTTL)

	claims := RefreshClaims{
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   sub,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(i.RefreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
