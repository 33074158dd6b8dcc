// internal/cart/handler.go
package cart

import (
	"net/http"

	"github.com/google/uuid"

	"bookshop/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// HandleCreate handles POST /carts.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.CreateCart(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, c)
}

// HandleGet handles GET /carts/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	c, err := h.service.GetCart(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, c)
}

// HandleDelete handles DELETE /carts/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := h.service.DeleteCart(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListItems handles GET /carts/{id}/items.
func (h *Handler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	c, err := h.service.GetCart(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, c.Items)
}

// HandleAddItem handles POST /carts/{id}/items.
func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	cartID, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	var req struct {
		BookID   uuid.UUID `json:"book_id"`
		Quantity int       `json:"quantity"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	item, err := h.service.AddItem(r.Context(), cartID, req.BookID, req.Quantity)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, item)
}

// HandleUpdateItem handles PATCH /carts/{id}/items/{item_id}.
func (h *Handler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	cartID, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}
	itemID, err := api.Int64Param(r, "item_id")
	if err != nil {
		api.Error(w, err)
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	item, err := h.service.UpdateItemQuantity(r.Context(), cartID, itemID, req.Quantity)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, item)
}

// HandleRemoveItem handles DELETE /carts/{id}/items/{item_id}.
func (h *Handler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}
	itemID, err := api.Int64Param(r, "item_id")
	if err != nil {
		api.Error(w, err)
		return
	}

	if err := h.service.RemoveItem(r.Context(), cartID, itemID); err != nil {
		api.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
