// internal/catalog/domain.go
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups books; deletion is blocked while books reference it.
type Category struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	BooksCount int       `json:"books_count"`
}

// Author of one or more books.
type Author struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Biography   string     `json:"biography,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	Nationality string     `json:"nationality,omitempty"`
	Awards      string     `json:"awards,omitempty"`
}

// Publication is a publishing house.
type Publication struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Address         string     `json:"address,omitempty"`
	Website         string     `json:"website,omitempty"`
	Email           string     `json:"email,omitempty"`
	PhoneNumber     string     `json:"phone_number,omitempty"`
	EstablishedDate *time.Time `json:"established_date,omitempty"`
	Description     string     `json:"description,omitempty"`
}

// Book is a catalog entry. PriceWithTax and InventoryStatus are
// computed on read, never stored.
type Book struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	AuthorID        *uuid.UUID      `json:"author_id,omitempty"`
	CategoryID      *uuid.UUID      `json:"category_id,omitempty"`
	PublicationID   *uuid.UUID      `json:"publication_id,omitempty"`
	Price           decimal.Decimal `json:"price"`
	PriceWithTax    decimal.Decimal `json:"price_with_tax"`
	Stock           int             `json:"stock"`
	InventoryStatus string          `json:"inventory_status"`
	Description     string          `json:"description,omitempty"`
	LastUpdate      time.Time       `json:"last_update"`
}

// Review is a customer review attached to a book.
type Review struct {
	ID          int64     `json:"id"`
	BookID      uuid.UUID `json:"book_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// Book list orderings accepted by the books endpoint.
const (
	OrderByPriceAsc       = "price"
	OrderByPriceDesc      = "-price"
	OrderByLastUpdateAsc  = "last_update"
	OrderByLastUpdateDesc = "-last_update"
)

// BookFilter narrows and orders a book listing.
type BookFilter struct {
	CategoryID *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
	Ordering   string
	Limit      int
	Offset     int
}
