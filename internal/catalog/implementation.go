// internal/catalog/implementation.go
package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"bookshop/internal/apperr"
)

// service implements the Service interface.
type service struct {
	store Store
}

// NewService creates a new catalog service instance.
func NewService(store Store) Service {
	return &service{store: store}
}

// CreateCategory creates a new category.
func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.CodeInvalid, "category name is required")
	}

	c := &Category{ID: uuid.New(), Name: name}
	if err := s.store.InsertCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCategory retrieves a category with its book count.
func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.store.CategoryByID(ctx, id)
}

// ListCategories returns a page of categories with book counts.
func (s *service) ListCategories(ctx context.Context, limit, offset int) ([]*Category, error) {
	return s.store.Categories(ctx, limit, offset)
}

// UpdateCategory renames a category.
func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.CodeInvalid, "category name is required")
	}

	c, err := s.store.CategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes a category. Deletion is refused while any
// book still references it.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	count, err := s.store.BookCountForCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Newf(apperr.CodeConflict, "category is referenced by %d book(s)", count)
	}
	return s.store.DeleteCategory(ctx, id)
}

// CreateAuthor creates a new author.
func (s *service) CreateAuthor(ctx context.Context, params AuthorParams) (*Author, error) {
	a := &Author{ID: uuid.New()}
	applyAuthorParams(a, params)
	if a.FirstName == "" || a.LastName == "" {
		return nil, apperr.New(apperr.CodeInvalid, "author first and last name are required")
	}
	if err := s.store.InsertAuthor(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetAuthor retrieves an author by ID.
func (s *service) GetAuthor(ctx context.Context, id uuid.UUID) (*Author, error) {
	return s.store.AuthorByID(ctx, id)
}

// ListAuthors returns a page of authors.
func (s *service) ListAuthors(ctx context.Context, limit, offset int) ([]*Author, error) {
	return s.store.Authors(ctx, limit, offset)
}

// UpdateAuthor applies partial author updates.
func (s *service) UpdateAuthor(ctx context.Context, id uuid.UUID, params AuthorParams) (*Author, error) {
	a, err := s.store.AuthorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyAuthorParams(a, params)
	if a.FirstName == "" || a.LastName == "" {
		return nil, apperr.New(apperr.CodeInvalid, "author first and last name are required")
	}
	if err := s.store.UpdateAuthor(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAuthor removes an author and, by cascade, their books.
func (s *service) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteAuthor(ctx, id)
}

func applyAuthorParams(a *Author, params AuthorParams) {
	if params.FirstName != nil {
		a.FirstName = strings.TrimSpace(*params.FirstName)
	}
	if params.LastName != nil {
		a.LastName = strings.TrimSpace(*params.LastName)
	}
	if params.Biography != nil {
		a.Biography = *params.Biography
	}
	if params.DateOfBirth != nil {
		a.DateOfBirth = params.DateOfBirth
	}
	if params.DateOfDeath != nil {
		a.DateOfDeath = params.DateOfDeath
	}
	if params.Nationality != nil {
		a.Nationality = *params.Nationality
	}
	if params.Awards != nil {
		a.Awards = *params.Awards
	}
}

// CreatePublication creates a new publication.
func (s *service) CreatePublication(ctx context.Context, params PublicationParams) (*Publication, error) {
	p := &Publication{ID: uuid.New()}
	applyPublicationParams(p, params)
	if p.Name == "" {
		return nil, apperr.New(apperr.CodeInvalid, "publication name is required")
	}
	if err := s.store.InsertPublication(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPublication retrieves a publication by ID.
func (s *service) GetPublication(ctx context.Context, id uuid.UUID) (*Publication, error) {
	return s.store.PublicationByID(ctx, id)
}

// ListPublications returns a page of publications.
func (s *service) ListPublications(ctx context.Context, limit, offset int) ([]*Publication, error) {
	return s.store.Publications(ctx, limit, offset)
}

// UpdatePublication applies partial publication updates.
func (s *service) UpdatePublication(ctx context.Context, id uuid.UUID, params PublicationParams) (*Publication, error) {
	p, err := s.store.PublicationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyPublicationParams(p, params)
	if p.Name == "" {
		return nil, apperr.New(apperr.CodeInvalid, "publication name is required")
	}
	if err := s.store.UpdatePublication(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePublication removes a publication; books keep a null ref.
func (s *service) DeletePublication(ctx context.Context, id uuid.UUID) error {
	return s.store.DeletePublication(ctx, id)
}

func applyPublicationParams(p *Publication, params PublicationParams) {
	if params.Name != nil {
		p.Name = strings.TrimSpace(*params.Name)
	}
	if params.Address != nil {
		p.Address = *params.Address
	}
	if params.Website != nil {
		p.Website = *params.Website
	}
	if params.Email != nil {
		p.Email = *params.Email
	}
	if params.PhoneNumber != nil {
		p.PhoneNumber = *params.PhoneNumber
	}
	if params.EstablishedDate != nil {
		p.EstablishedDate = params.EstablishedDate
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
}
