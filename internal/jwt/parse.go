package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

const leeway = 30 * time.Second

// ParseAccess valida firma HS256, exp/nbf (con tolerancia) e iss.
func (i *Issuer) ParseAccess(token string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := i.parse(token, &claims, i.AccessSecret); err != nil {
		return nil, err
	}
	if i.Iss != "" && claims.Issuer != i.Iss {
		return nil, ErrInvalidIssuer
	}
	return &claims, nil
}

// ParseRefresh valida un refresh token firmado con el secreto de refresh.
func (i *Issuer) ParseRefresh(token string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := i.parse(token, &claims, i.RefreshSecret); err != nil {
		return nil, err
	}
	if i.Iss != "" && claims.Issuer != i.Iss {
		return nil, ErrInvalidIssuer
	}
	return &claims, nil
}

func (i *Issuer) parse(token string, claims jwtv5.Claims, secret []byte) error {
	if len(secret) == 0 {
		return ErrMissingSecret
	}
	tok, err := jwtv5.ParseWithClaims(token, claims,
		func(t *jwtv5.Token) (any, error) { return secret, nil },
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithLeeway(leeway),
		jwtv5.WithTimeFunc(i.clock),
	)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return errors.Join(ErrInvalidToken, err)
		}
		return ErrInvalidToken
	}
	if !tok.Valid {
		return ErrInvalidToken
	}
	return nil
}
