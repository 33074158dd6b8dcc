// internal/catalog/service.go
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuthorParams carries author fields for create and update. On
// update, nil pointers leave the field unchanged.
type AuthorParams struct {
	FirstName   *string
	LastName    *string
	Biography   *string
	DateOfBirth *time.Time
	DateOfDeath *time.Time
	Nationality *string
	Awards      *string
}

// PublicationParams carries publication fields for create and update.
type PublicationParams struct {
	Name            *string
	Address         *string
	Website         *string
	Email           *string
	PhoneNumber     *string
	EstablishedDate *time.Time
	Description     *string
}

// BookParams carries book fields for create and update.
type BookParams struct {
	Title         *string
	AuthorID      *uuid.UUID
	CategoryID    *uuid.UUID
	PublicationID *uuid.UUID
	Price         *decimal.Decimal
	Stock         *int
	Description   *string
}

// Service defines the interface for the catalog.
type Service interface {
	CreateCategory(ctx context.Context, name string) (*Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, limit, offset int) ([]*Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateAuthor(ctx context.Context, params AuthorParams) (*Author, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (*Author, error)
	ListAuthors(ctx context.Context, limit, offset int) ([]*Author, error)
	UpdateAuthor(ctx context.Context, id uuid.UUID, params AuthorParams) (*Author, error)
	DeleteAuthor(ctx context.Context, id uuid.UUID) error

	CreatePublication(ctx context.Context, params PublicationParams) (*Publication, error)
	GetPublication(ctx context.Context, id uuid.UUID) (*Publication, error)
	ListPublications(ctx context.Context, limit, offset int) ([]*Publication, error)
	UpdatePublication(ctx context.Context, id uuid.UUID, params PublicationParams) (*Publication, error)
	DeletePublication(ctx context.Context, id uuid.UUID) error

	CreateBook(ctx context.Context, params BookParams) (*Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*Book, error)
	ListBooks(ctx context.Context, filter BookFilter) ([]*Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, params BookParams) (*Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	ClearStock(ctx context.Context, categoryID *uuid.UUID) (int64, error)

	AddReview(ctx context.Context, bookID uuid.UUID, name, description string) (*Review, error)
	ListReviews(ctx context.Context, bookID uuid.UUID, limit, offset int) ([]*Review, error)
}

// Store defines the persistence operations the service depends on.
type Store interface {
	InsertCategory(ctx context.Context, c *Category) error
	CategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Categories(ctx context.Context, limit, offset int) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	BookCountForCategory(ctx context.Context, id uuid.UUID) (int, error)

	InsertAuthor(ctx context.Context, a *Author) error
	AuthorByID(ctx context.Context, id uuid.UUID) (*Author, error)
	Authors(ctx context.Context, limit, offset int) ([]*Author, error)
	UpdateAuthor(ctx context.Context, a *Author) error
	DeleteAuthor(ctx context.Context, id uuid.UUID) error

	InsertPublication(ctx context.Context, p *Publication) error
	PublicationByID(ctx context.Context, id uuid.UUID) (*Publication, error)
	Publications(ctx context.Context, limit, offset int) ([]*Publication, error)
	UpdatePublication(ctx context.Context, p *Publication) error
	DeletePublication(ctx context.Context, id uuid.UUID) error

	InsertBook(ctx context.Context, b *Book) error
	BookByID(ctx context.Context, id uuid.UUID) (*Book, error)
	Books(ctx context.Context, filter BookFilter) ([]*Book, error)
	UpdateBook(ctx context.Context, b *Book) error
	DeleteBook(ctx context.Context, id uuid.UUID) error
	OrderItemCountForBook(ctx context.Context, id uuid.UUID) (int, error)
	ClearStock(ctx context.Context, categoryID *uuid.UUID) (int64, error)

	InsertReview(ctx context.Context, rv *Review) error
	ReviewsForBook(ctx context.Context, bookID uuid.UUID, limit, offset int) ([]*Review, error)
}
