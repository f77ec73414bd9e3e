// Package admin contiene los controllers del back-office.
package admin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	dto "github.com/dropDatabas3/dealerdesk/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/dealerdesk/internal/http/errors"
	"github.com/dropDatabas3/dealerdesk/internal/http/helpers"
	mw "github.com/dropDatabas3/dealerdesk/internal/http/middlewares"
	svc "github.com/dropDatabas3/dealerdesk/internal/http/services/admin"
)

type Controllers struct {
	Leads   *LeadsController
	Dealers *DealersController
	Users   *UsersController
	Admin   *AdminController
}

func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Leads:   &LeadsController{s: s.Leads},
		Dealers: &DealersController{s: s.Dealers},
		Users:   &UsersController{s: s.Users},
		Admin:   &AdminController{stats: s.Stats, events: s.Events, users: s.Users},
	}
}

func queryInt(r *http.Request, key string) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

// ─── Admin (stats, events, impersonate) ───

type AdminController struct {
	stats  svc.StatsService
	events svc.EventService
	users  svc.UserService
}

// Stats: GET /admin/stats
func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	resp, err := c.stats.Get(r.Context())
	if err != nil {
		helpers.WriteError(w, r, "admin.Stats", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Events: GET /admin/events?limit=
func (c *AdminController) Events(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("limit"))
		return
	}
	resp, err := c.events.List(r.Context(), limit)
	if err != nil {
		helpers.WriteError(w, r, "admin.Events", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Impersonate: POST /admin/users/{id}/impersonate
func (c *AdminController) Impersonate(w http.ResponseWriter, r *http.Request) {
	resp, err := c.users.Impersonate(r.Context(), mw.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		helpers.WriteError(w, r, "admin.Impersonate", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// ─── Leads ───

type LeadsController struct {
	s svc.LeadService
}

// List: GET /leads?q=&status=&type=&from=&to=
func (c *LeadsController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, ok := helpers.QueryDate(r, "from", false)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("from"))
		return
	}
	to, ok := helpers.QueryDate(r, "to", true)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("to"))
		return
	}
	resp, err := c.s.List(r.Context(), repository.LeadFilter{
		Query:  strings.TrimSpace(q.Get("q")),
		Status: repository.LeadStatus(q.Get("status")),
		Type:   repository.LeadType(q.Get("type")),
		Tag:    strings.TrimSpace(q.Get("tag")),
		From:   from,
		To:     to,
	})
	if err != nil {
		helpers.WriteError(w, r, "leads.List", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Create: POST /leads
func (c *LeadsController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.LeadCreateRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	lead, err := c.s.Create(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, r, "leads.Create", err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, lead)
}

// Get: GET /leads/{id}
func (c *LeadsController) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := c.s.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		helpers.WriteError(w, r, "leads.Get", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, lead)
}

// Update: PATCH /leads/{id}
func (c *LeadsController) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.LeadUpdateRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	lead, err := c.s.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		helpers.WriteError(w, r, "leads.Update", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, lead)
}

// SetStatus: PATCH /leads/{id}/status
func (c *LeadsController) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.StatusRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	lead, err := c.s.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		helpers.WriteError(w, r, "leads.SetStatus", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, lead)
}

// Delete: DELETE /leads/{id}
func (c *LeadsController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.s.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		helpers.WriteError(w, r, "leads.Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete: POST /leads/bulk-delete
func (c *LeadsController) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkDeleteRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	n, err := c.s.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		helpers.WriteError(w, r, "leads.BulkDelete", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.BulkDeleteResponse{Deleted: n})
}

// AcceptDealer: POST /leads/{id}/accept-dealer
func (c *LeadsController) AcceptDealer(w http.ResponseWriter, r *http.Request) {
	res, err := c.s.AcceptDealer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		helpers.WriteError(w, r, "leads.AcceptDealer", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// ─── Dealers ───

type DealersController struct {
	s svc.DealerService
}

// List: GET /dealers?q=&status=&region=
func (c *DealersController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := c.s.List(r.Context(), repository.DealerFilter{
		Query:  strings.TrimSpace(q.Get("q")),
		Status: repository.DealerStatus(q.Get("status")),
		Region: strings.TrimSpace(q.Get("region")),
	})
	if err != nil {
		helpers.WriteError(w, r, "dealers.List", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Create: POST /dealers
func (c *DealersController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.DealerCreateRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	d, err := c.s.Create(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, r, "dealers.Create", err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, d)
}

// Update: PATCH /dealers/{id}
func (c *DealersController) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.DealerUpdateRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	d, err := c.s.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		helpers.WriteError(w, r, "dealers.Update", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, d)
}

// SetStatus: PATCH /dealers/{id}/status
func (c *DealersController) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.StatusRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	d, err := c.s.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		helpers.WriteError(w, r, "dealers.SetStatus", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, d)
}

// Delete: DELETE /dealers/{id}
func (c *DealersController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.s.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		helpers.WriteError(w, r, "dealers.Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkDelete: POST /dealers/bulk-delete
func (c *DealersController) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkDeleteRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	n, err := c.s.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		helpers.WriteError(w, r, "dealers.BulkDelete", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.BulkDeleteResponse{Deleted: n})
}

// Approve: POST /dealers/{id}/approve
func (c *DealersController) Approve(w http.ResponseWriter, r *http.Request) {
	res, err := c.s.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		helpers.WriteError(w, r, "dealers.Approve", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, res)
}

// Detail: GET /dealers/{id}/detail
func (c *DealersController) Detail(w http.ResponseWriter, r *http.Request) {
	d, err := c.s.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		helpers.WriteError(w, r, "dealers.Detail", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, d)
}

// ─── Users ───

type UsersController struct {
	s svc.UserService
}

// List: GET /users?q=&limit=&cursor=
func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit")
	if !ok {
		httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("limit"))
		return
	}
	q := r.URL.Query()
	resp, err := c.s.List(r.Context(), q.Get("q"), q.Get("cursor"), limit)
	if err != nil {
		helpers.WriteError(w, r, "users.List", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Create: POST /users
func (c *UsersController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.UserCreateRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	u, err := c.s.Create(r.Context(), req)
	if err != nil {
		helpers.WriteError(w, r, "users.Create", err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, u)
}

// Get: GET /users/{id}
func (c *UsersController) Get(w http.ResponseWriter, r *http.Request) {
	u, err := c.s.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		helpers.WriteError(w, r, "users.Get", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, u)
}

// Update: PATCH /users/{id}
func (c *UsersController) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UserUpdateRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	u, err := c.s.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		helpers.WriteError(w, r, "users.Update", err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, u)
}

// Delete: DELETE /users/{id} (soft delete)
func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.s.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		helpers.WriteError(w, r, "users.Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
