// internal/catalog/handler.go
package catalog

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookshop/internal/api"
	"bookshop/internal/apperr"
)

func invalidParam(name string) error {
	return apperr.Newf(apperr.CodeInvalid, "invalid %s", name)
}

type Handler struct {
	service Service
	pages   api.PageLimits
}

func NewHandler(service Service, pages api.PageLimits) *Handler {
	return &Handler{service: service, pages: pages}
}

// HandleListCategories handles GET /categories.
func (h *Handler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	page := api.ParsePage(r, h.pages)
	categories, err := h.service.ListCategories(r.Context(), page.Limit(), page.Offset())
	if err != nil {
		api.Error(w, err)
		return
	}
	if categories == nil {
		categories = []*Category{}
	}
	api.JSON(w, http.StatusOK, categories)
}

// HandleCreateCategory handles POST /categories.
func (h *Handler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	c, err := h.service.CreateCategory(r.Context(), req.Name)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, c)
}

// HandleGetCategory handles GET /categories/{id}.
func (h *Handler) HandleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	c, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, c)
}

// HandleUpdateCategory handles PUT/PATCH /categories/{id}.
func (h *Handler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	c, err := h.service.UpdateCategory(r.Context(), id, req.Name)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, c)
}

// HandleDeleteCategory handles DELETE /categories/{id}.
func (h *Handler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type authorRequest struct {
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Biography   *string    `json:"biography"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	DateOfDeath *time.Time `json:"date_of_death"`
	Nationality *string    `json:"nationality"`
	Awards      *string    `json:"awards"`
}

func (req authorRequest) params() AuthorParams {
	return AuthorParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Biography:   req.Biography,
		DateOfBirth: req.DateOfBirth,
		DateOfDeath: req.DateOfDeath,
		Nationality: req.Nationality,
		Awards:      req.Awards,
	}
}

// HandleListAuthors handles GET /authors.
func (h *Handler) HandleListAuthors(w http.ResponseWriter, r *http.Request) {
	page := api.ParsePage(r, h.pages)
	authors, err := h.service.ListAuthors(r.Context(), page.Limit(), page.Offset())
	if err != nil {
		api.Error(w, err)
		return
	}
	if authors == nil {
		authors = []*Author{}
	}
	api.JSON(w, http.StatusOK, authors)
}

// HandleCreateAuthor handles POST /authors.
func (h *Handler) HandleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	a, err := h.service.CreateAuthor(r.Context(), req.params())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, a)
}

// HandleGetAuthor handles GET /authors/{id}.
func (h *Handler) HandleGetAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	a, err := h.service.GetAuthor(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, a)
}

// HandleUpdateAuthor handles PUT/PATCH /authors/{id}.
func (h *Handler) HandleUpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	var req authorRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	a, err := h.service.UpdateAuthor(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, a)
}

// HandleDeleteAuthor handles DELETE /authors/{id}.
func (h *Handler) HandleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := h.service.DeleteAuthor(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type publicationRequest struct {
	Name            *string    `json:"name"`
	Address         *string    `json:"address"`
	Website         *string    `json:"website"`
	Email           *string    `json:"email"`
	PhoneNumber     *string    `json:"phone_number"`
	EstablishedDate *time.Time `json:"established_date"`
	Description     *string    `json:"description"`
}

func (req publicationRequest) params() PublicationParams {
	return PublicationParams{
		Name:            req.Name,
		Address:         req.Address,
		Website:         req.Website,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		EstablishedDate: req.EstablishedDate,
		Description:     req.Description,
	}
}

// HandleListPublications handles GET /publications.
func (h *Handler) HandleListPublications(w http.ResponseWriter, r *http.Request) {
	page := api.ParsePage(r, h.pages)
	publications, err := h.service.ListPublications(r.Context(), page.Limit(), page.Offset())
	if err != nil {
		api.Error(w, err)
		return
	}
	if publications == nil {
		publications = []*Publication{}
	}
	api.JSON(w, http.StatusOK, publications)
}

// HandleCreatePublication handles POST /publications.
func (h *Handler) HandleCreatePublication(w http.ResponseWriter, r *http.Request) {
	var req publicationRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	p, err := h.service.CreatePublication(r.Context(), req.params())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, p)
}

// HandleGetPublication handles GET /publications/{id}.
func (h *Handler) HandleGetPublication(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	p, err := h.service.GetPublication(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, p)
}

// HandleUpdatePublication handles PUT/PATCH /publications/{id}.
func (h *Handler) HandleUpdatePublication(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	var req publicationRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	p, err := h.service.UpdatePublication(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, p)
}

// HandleDeletePublication handles DELETE /publications/{id}.
func (h *Handler) HandleDeletePublication(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := h.service.DeletePublication(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bookRequest struct {
	Title         *string          `json:"title"`
	AuthorID      *uuid.UUID       `json:"author_id"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	PublicationID *uuid.UUID       `json:"publication_id"`
	Price         *decimal.Decimal `json:"price"`
	Stock         *int             `json:"stock"`
	Description   *string          `json:"description"`
}

func (req bookRequest) params() BookParams {
	return BookParams{
		Title:         req.Title,
		AuthorID:      req.AuthorID,
		CategoryID:    req.CategoryID,
		PublicationID: req.PublicationID,
		Price:         req.Price,
		Stock:         req.Stock,
		Description:   req.Description,
	}
}

// HandleListBooks handles GET /books with filter, search, ordering
// and pagination params.
func (h *Handler) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	page := api.ParsePage(r, h.pages)
	filter := BookFilter{
		Search:   r.URL.Query().Get("search"),
		Ordering: r.URL.Query().Get("ordering"),
		Limit:    page.Limit(),
		Offset:   page.Offset(),
	}

	if v := r.URL.Query().Get("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			api.Error(w, invalidParam("category_id"))
			return
		}
		filter.CategoryID = &id
	}
	if v := r.URL.Query().Get("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			api.Error(w, invalidParam("min_price"))
			return
		}
		filter.MinPrice = &d
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			api.Error(w, invalidParam("max_price"))
			return
		}
		filter.MaxPrice = &d
	}

	books, err := h.service.ListBooks(r.Context(), filter)
	if err != nil {
		api.Error(w, err)
		return
	}
	if books == nil {
		books = []*Book{}
	}
	api.JSON(w, http.StatusOK, books)
}

// HandleCreateBook handles POST /books.
func (h *Handler) HandleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	b, err := h.service.CreateBook(r.Context(), req.params())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, b)
}

// HandleGetBook handles GET /books/{id}.
func (h *Handler) HandleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	b, err := h.service.GetBook(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, b)
}

// HandleUpdateBook handles PUT/PATCH /books/{id}.
func (h *Handler) HandleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	var req bookRequest
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	b, err := h.service.UpdateBook(r.Context(), id, req.params())
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, b)
}

// HandleDeleteBook handles DELETE /books/{id}.
func (h *Handler) HandleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}
	if err := h.service.DeleteBook(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleClearStock handles POST /books/clear-stock.
func (h *Handler) HandleClearStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CategoryID *uuid.UUID `json:"category_id"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	updated, err := h.service.ClearStock(r.Context(), req.CategoryID)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

// HandleListReviews handles GET /books/{id}/reviews.
func (h *Handler) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	bookID, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	page := api.ParsePage(r, h.pages)
	reviews, err := h.service.ListReviews(r.Context(), bookID, page.Limit(), page.Offset())
	if err != nil {
		api.Error(w, err)
		return
	}
	if reviews == nil {
		reviews = []*Review{}
	}
	api.JSON(w, http.StatusOK, reviews)
}

// HandleCreateReview handles POST /books/{id}/reviews.
func (h *Handler) HandleCreateReview(w http.ResponseWriter, r *http.Request) {
	bookID, err := api.UUIDParam(r, "id")
	if err != nil {
		api.Error(w, err)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := api.Decode(r, &req); err != nil {
		api.Error(w, err)
		return
	}

	rv, err := h.service.AddReview(r.Context(), bookID, req.Name, req.Description)
	if err != nil {
		api.Error(w, err)
		return
	}
	api.JSON(w, http.StatusCreated, rv)
}
