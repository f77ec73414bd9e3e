// Package auth contiene los controllers de /auth.
package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/auth"
	"github.com/dropDatabas3/dealerdesk/internal/http/helpers"
	mw "github.com/dropDatabas3/dealerdesk/internal/http/middlewares"
	svc "github.com/dropDatabas3/dealerdesk/internal/http/services/auth"
	"github.com/dropDatabas3/dealerdesk/internal/session"
)

type Controllers struct {
	s svc.Services
}

func NewControllers(s svc.Services) *Controllers {
	return &Controllers{s: s}
}

func metaOf(r *http.Request) session.Meta {
	return session.Meta{UserAgent: r.UserAgent(), IP: helpers.ClientIP(r)}
}

// Register: POST /auth/register
func (c *Controllers) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	resp, err := c.s.Register.Register(r.Context(), req, metaOf(r))
	if err != nil {
		helpers.WriteError(w, r, "auth.Register", err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}

// Login: POST /auth/login
func (c *Controllers) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	resp, err := c.s.Login.Login(r.Context(), req, metaOf(r))
	if err != nil {
		helpers.WriteError(w, r, "auth.Login", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Refresh: POST /auth/refresh
func (c *Controllers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	resp, err := c.s.Session.Refresh(r.Context(), req, metaOf(r))
	if err != nil {
		helpers.WriteError(w, r, "auth.Refresh", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Logout: POST /auth/logout. Siempre 204 salvo falla del store.
func (c *Controllers) Logout(w http.ResponseWriter, r *http.Request) {
	var req dto.LogoutRequest
	if r.ContentLength != 0 && !helpers.ReadJSON(w, r, &req) {
		return
	}
	if err := c.s.Session.Logout(r.Context(), req); err != nil {
		helpers.WriteError(w, r, "auth.Logout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me: GET /auth/me
func (c *Controllers) Me(w http.ResponseWriter, r *http.Request) {
	cl := mw.GetClaims(r.Context())
	resp, err := c.s.Me.Me(r.Context(), cl.Subject, cl.ImpersonatedBy)
	if err != nil {
		helpers.WriteError(w, r, "auth.Me", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}
