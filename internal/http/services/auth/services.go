// Package auth contiene los services de autenticación por email + password.
package auth

import (
	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
	"github.com/dropDatabas3/dealerdesk/internal/session"
)

// Deps contiene las dependencias para crear los services auth.
type Deps struct {
	Users    repository.UserRepository
	Sessions *session.Issuer
	Policy   password.Policy
}

// Services agrupa todos los services del dominio auth.
type Services struct {
	Register RegisterService
	Login    LoginService
	Session  SessionService
	Me       MeService
}

// NewServices crea el agregador de services auth.
func NewServices(d Deps) Services {
	return Services{
		Register: NewRegisterService(d),
		Login:    NewLoginService(d),
		Session:  NewSessionService(d),
		Me:       NewMeService(d),
	}
}
