// internal/catalog/handler_test.go
package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshop/internal/api"
)

// Review creation carries no principal; any client may post one.
func TestHandleCreateReviewAnonymous(t *testing.T) {
	svc := NewService(newFakeStore())
	h := NewHandler(svc, api.PageLimits{Default: 10, Max: 100})

	b, err := svc.CreateBook(context.Background(), testBookParams())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Post("/books/{id}/reviews", h.HandleCreateReview)

	body := `{"name":"guest","description":"loved it"}`
	req := httptest.NewRequest("POST", "/books/"+b.ID.String()+"/reviews", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var rv Review
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rv))
	assert.Equal(t, b.ID, rv.BookID)
	assert.Equal(t, "guest", rv.Name)
	assert.Equal(t, "loved it", rv.Description)
}
