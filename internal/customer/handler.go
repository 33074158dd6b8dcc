// internal/customer/handler.go
package customer

import (
	"net/http"
	"time"

	"bookshop/internal/api"
	"bookshop/internal/apperr"
)

type Handler struct {
	service Service
	pages   api.PageLimits
}

func NewHandler(service Service, pages api.PageLimits) *Handler {
	return &Handler{service: service, pages: pages}
}

// HandleCreate handles POST /customers: the caller creates their own
// profile.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, _ := api.PrincipalFrom(r.Context())

	var req struct {
		Phone     string     `json:"phone"`
		BirthDate *time.Time `json:"birth_date"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	c, err := h.service.CreateProfile(r.Context(), p.UserID, req.Phone, req.BirthDate)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, c)
}

// HandleMe handles GET /customers/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, _ := api.PrincipalFrom(r.Context())

	c, err := h.service.GetByUser(r.Context(), p.UserID)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, c)
}

// HandleGet handles GET /customers/{id}: owner or staff.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	c, err := h.service.GetCustomer(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	if !h.ownerOrStaff(r, c) {
		api.Error(w, apperr.New(apperr.CodeForbidden, "not your customer profile"))
		return
	}
	api.JSON(w, http.StatusOK, c)
}

// HandleUpdate handles PUT/PATCH /customers/{id}: owner or staff.
// Membership tier changes are staff-only.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	c, err := h.service.GetCustomer(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	if !h.ownerOrStaff(r, c) {
		api.Error(w, apperr.New(apperr.CodeForbidden, "not your customer profile"))
		return
	}

	var req struct {
		Phone      *string    `json:"phone"`
		BirthDate  *time.Time `json:"birth_date"`
		Membership *string    `json:"membership"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	p, _ := api.PrincipalFrom(r.Context())
	if req.Membership != nil && !p.IsStaff {
		api.Error(w, apperr.New(apperr.CodeForbidden, "membership tier changes require the staff role"))
		return
	}

	updated, err := h.service.UpdateCustomer(r.Context(), id, UpdateParams{
		Phone:      req.Phone,
		BirthDate:  req.BirthDate,
		Membership: req.Membership,
	})
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /customers/{id}: owner or staff.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	c, err := h.service.GetCustomer(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	if !h.ownerOrStaff(r, c) {
		api.Error(w, apperr.New(apperr.CodeForbidden, "not your customer profile"))
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleList handles GET /customers (staff only, enforced by
// middleware).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := api.ParsePage(r, h.pages)
	customers, err := h.service.ListCustomers(r.Context(), page.Limit(), page.Offset())
	if err != nil {
		api.Error(w, err)
		return
	}
	if customers == nil {
		customers = []*Customer{}
	}
	api.JSON(w, http.StatusOK, customers)
}

func (h *Handler) ownerOrStaff(r *http.Request, c *Customer) bool {
	p, ok := api.PrincipalFrom(r.Context())
	if !ok {
		return false
	}
	return p.IsStaff || p.UserID == c.UserID
}
