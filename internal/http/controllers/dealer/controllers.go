// Package dealer contiene los controllers de /dealer.
package dealer

import (
	"net/http"

	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/dealer"
	"github.com/dropDatabas3/dealerdesk/internal/http/helpers"
	mw "github.com/dropDatabas3/dealerdesk/internal/http/middlewares"
	svc "github.com/dropDatabas3/dealerdesk/internal/http/services/dealer"
	"github.com/dropDatabas3/dealerdesk/internal/session"
)

type Controllers struct {
	s svc.Services
}

func NewControllers(s svc.Services) *Controllers {
	return &Controllers{s: s}
}

// Apply: POST /dealer/apply (público)
func (c *Controllers) Apply(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	resp, err := c.s.Portal.Apply(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, r, "dealer.Apply", err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}

// Login: POST /dealer/login (público). 403 con code pending|suspended.
func (c *Controllers) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	meta := session.Meta{UserAgent: r.UserAgent(), IP: helpers.ClientIP(r)}
	resp, err := c.s.Portal.Login(r.Context(), req, meta)
	if err != nil {
		helpers.WriteError(w, r, "dealer.Login", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// CreateUpload: POST /dealer/uploads
func (c *Controllers) CreateUpload(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	resp, err := c.s.Uploads.Create(r.Context(), mw.GetUserID(r.Context()), req)
	if err != nil {
		helpers.WriteError(w, r, "dealer.CreateUpload", err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, resp)
}

// ListUploads: GET /dealer/uploads
func (c *Controllers) ListUploads(w http.ResponseWriter, r *http.Request) {
	resp, err := c.s.Uploads.List(r.Context(), mw.GetUserID(r.Context()))
	if err != nil {
		helpers.WriteError(w, r, "dealer.ListUploads", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}
