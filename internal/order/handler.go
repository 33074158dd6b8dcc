// internal/order/handler.go
package order

import (
	"net/http"

	"github.com/google/uuid"

	"bookshop/internal/api"
)

type Handler struct {
	service Service
	pages   api.PageLimits
}

func NewHandler(service Service, pages api.PageLimits) *Handler {
	return &Handler{service: service, pages: pages}
}

// HandlePlace handles POST /orders.
func (h *Handler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	p, _ := api.PrincipalFrom(r.Context())

	var req struct {
		CartID uuid.UUID `json:"cart_id"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	o, err := h.service.PlaceOrder(r.Context(), p.UserID, req.CartID)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, o)
}

// HandleGet handles GET /orders/{id}: owner or staff.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, _ := api.PrincipalFrom(r.Context())
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	o, err := h.service.GetOrder(r.Context(), p.UserID, p.IsStaff, id)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, o)
}

// HandleList handles GET /orders: staff sees every order, everyone
// else their own.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, _ := api.PrincipalFrom(r.Context())
	page := api.ParsePage(r, h.pages)

	orders, err := h.service.ListOrders(r.Context(), p.UserID, p.IsStaff, page.Limit(), page.Offset())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, orders)
}

// HandleUpdatePayment handles PATCH /orders/{id}, staff only.
func (h *Handler) HandleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	var req struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	o, err := h.service.UpdatePaymentStatus(r.Context(), id, req.PaymentStatus)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, o)
}

// HandleDelete handles DELETE /orders/{id}, staff only.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
