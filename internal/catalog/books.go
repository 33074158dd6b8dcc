// internal/catalog/books.go
package catalog

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookshop/internal/apperr"
)

var (
	minPrice = decimal.NewFromInt(1)
	taxRate  = decimal.NewFromFloat(1.10)

	slugStrip = regexp.MustCompile(`[^a-z0-9]+`)
)

// lowStockThreshold marks books whose stock is running out.
const lowStockThreshold = 80

// slugify derives a URL slug from a book title.
func slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// decorate fills the computed read-only book fields.
func decorate(b *Book) *Book {
	b.PriceWithTax = b.Price.Mul(taxRate).Round(2)
	if b.Stock < lowStockThreshold {
		b.InventoryStatus = "LOW"
	} else {
		b.InventoryStatus = "OK"
	}
	return b
}

// CreateBook adds a book to the catalog.
func (s *service) CreateBook(ctx context.Context, params BookParams) (*Book, error) {
	b := &Book{ID: uuid.New(), LastUpdate: time.Now().UTC()}
	applyBookParams(b, params)

	if err := validateBook(b); err != nil {
		return nil, err
	}
	if err := s.store.InsertBook(ctx, b); err != nil {
		return nil, err
	}
	return decorate(b), nil
}

// GetBook retrieves a book by ID.
func (s *service) GetBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	b, err := s.store.BookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return decorate(b), nil
}

// ListBooks returns a filtered, ordered page of books.
func (s *service) ListBooks(ctx context.Context, filter BookFilter) ([]*Book, error) {
	switch filter.Ordering {
	case "", OrderByPriceAsc, OrderByPriceDesc, OrderByLastUpdateAsc, OrderByLastUpdateDesc:
	default:
		return nil, apperr.Newf(apperr.CodeInvalid, "unknown ordering %q", filter.Ordering)
	}

	books, err := s.store.Books(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, b := range books {
		decorate(b)
	}
	return books, nil
}

// UpdateBook applies partial book updates and refreshes the slug when
// the title changes.
func (s *service) UpdateBook(ctx context.Context, id uuid.UUID, params BookParams) (*Book, error) {
	b, err := s.store.BookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyBookParams(b, params)
	if err := validateBook(b); err != nil {
		return nil, err
	}

	b.LastUpdate = time.Now().UTC()
	if err := s.store.UpdateBook(ctx, b); err != nil {
		return nil, err
	}
	return decorate(b), nil
}

// DeleteBook removes a book. Deletion is refused while any order
// item still references it, so placed orders keep their history.
func (s *service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	count, err := s.store.OrderItemCountForBook(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Newf(apperr.CodeConflict, "book is referenced by %d order item(s)", count)
	}
	return s.store.DeleteBook(ctx, id)
}

// ClearStock zeroes the stock of every book, or of one category when
// categoryID is set, returning the number of books affected.
func (s *service) ClearStock(ctx context.Context, categoryID *uuid.UUID) (int64, error) {
	return s.store.ClearStock(ctx, categoryID)
}

// AddReview records a review for a book.
func (s *service) AddReview(ctx context.Context, bookID uuid.UUID, name, description string) (*Review, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(description) == "" {
		return nil, apperr.New(apperr.CodeInvalid, "review name and description are required")
	}
	if _, err := s.store.BookByID(ctx, bookID); err != nil {
		return nil, err
	}

	rv := &Review{
		BookID:      bookID,
		Name:        name,
		Description: description,
		Date:        time.Now().UTC(),
	}
	if err := s.store.InsertReview(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

// ListReviews returns a page of reviews for a book.
func (s *service) ListReviews(ctx context.Context, bookID uuid.UUID, limit, offset int) ([]*Review, error) {
	if _, err := s.store.BookByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.store.ReviewsForBook(ctx, bookID, limit, offset)
}

func applyBookParams(b *Book, params BookParams) {
	if params.Title != nil {
		b.Title = strings.TrimSpace(*params.Title)
		b.Slug = slugify(b.Title)
	}
	if params.AuthorID != nil {
		b.AuthorID = params.AuthorID
	}
	if params.CategoryID != nil {
		b.CategoryID = params.CategoryID
	}
	if params.PublicationID != nil {
		b.PublicationID = params.PublicationID
	}
	if params.Price != nil {
		b.Price = *params.Price
	}
	if params.Stock != nil {
		b.Stock = *params.Stock
	}
	if params.Description != nil {
		b.Description = *params.Description
	}
}

func validateBook(b *Book) error {
	if b.Title == "" {
		return apperr.New(apperr.CodeInvalid, "book title is required")
	}
	if b.Price.LessThan(minPrice) {
		return apperr.New(apperr.CodeInvalid, "book price must be at least 1")
	}
	if b.Stock < 0 {
		return apperr.New(apperr.CodeInvalid, "book stock must not be negative")
	}
	return nil
}
