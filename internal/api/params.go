// internal/api/params.go
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bookshop/internal/apperr"
)

// PageLimits is the configured default and maximum page size for
// list endpoints.
type PageLimits struct {
	Default int
	Max     int
}

// Page is a parsed page-number pagination request.
type Page struct {
	Number int
	Size   int
}

// Limit returns the SQL LIMIT for the page.
func (p Page) Limit() int { return p.Size }

// Offset returns the SQL OFFSET for the page.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// ParsePage reads page/page_size query params, clamping the size.
func ParsePage(r *http.Request, limits PageLimits) Page {
	page := Page{Number: 1, Size: limits.Default}

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page.Number = n
		}
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page.Size = n
		}
	}
	if page.Size > limits.Max {
		page.Size = limits.Max
	}
	return page
}

// UUIDParam parses a chi URL parameter as a UUID.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.Newf(apperr.CodeInvalid, "invalid %s", name)
	}
	return id, nil
}

// Int64Param parses a chi URL parameter as an int64.
func Int64Param(r *http.Request, name string) (int64, error) {
	n, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, apperr.Newf(apperr.CodeInvalid, "invalid %s", name)
	}
	return n, nil
}
