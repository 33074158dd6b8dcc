// internal/auth/handler.go
package auth

import (
	"net/http"

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

// HandleRegister handles POST /users/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, user)
}

// HandleLogin handles POST /users/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	pair, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, pair)
}

// HandleRefresh handles POST /users/refresh.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	access, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{"access_token": access})
}

// HandleMe handles GET /users/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := api.PrincipalFrom(r.Context())
	if !ok {
		api.Error(w, apperr.New(apperr.CodeUnauthenticated, "authentication required"))
		return
	}

	user, err := h.service.GetUser(r.Context(), p.UserID)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, user)
}

// HandleList handles GET /users (staff only, enforced by middleware).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := api.ParsePage(r, h.pages)
	users, err := h.service.ListUsers(r.Context(), page.Limit(), page.Offset())
	if err != nil {
		api.Error(w, err)
		return
	}
	if users == nil {
		users = []*User{}
	}
	api.JSON(w, http.StatusOK, users)
}
