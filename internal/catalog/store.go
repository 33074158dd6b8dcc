// internal/catalog/store.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"bookshop/internal/apperr"
)

// postgresStore implements Store on top of Postgres.
type postgresStore struct {
	db *sql.DB
}

// NewStore creates a Postgres-backed catalog store.
func NewStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) InsertCategory(ctx context.Context, c *Category) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

const categoryQuery = `
	SELECT c.id, c.name, COUNT(b.id)
	FROM categories c
	LEFT JOIN books b ON b.category_id = c.id
`

func (s *postgresStore) CategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	c := &Category{}
	err := s.db.QueryRowContext(ctx, categoryQuery+` WHERE c.id = $1 GROUP BY c.id, c.name`, id).
		Scan(&c.ID, &c.Name, &c.BooksCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.New(apperr.CodeNotFound, "category not found")
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

func (s *postgresStore) Categories(ctx context.Context, limit, offset int) ([]*Category, error) {
	rows, err := s.db.QueryContext(ctx,
		categoryQuery+` GROUP BY c.id, c.name ORDER BY c.name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.BooksCount); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *postgresStore) UpdateCategory(ctx context.Context, c *Category) error {
	res, err := s.db.ExecContext(ctx, `UPDATE categories SET name = $1 WHERE id = $2`, c.Name, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "category not found")
	}
	return nil
}

func (s *postgresStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "category not found")
	}
	return nil
}

func (s *postgresStore) BookCountForCategory(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books WHERE category_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count books for category: %w", err)
	}
	return count, nil
}

func (s *postgresStore) InsertAuthor(ctx context.Context, a *Author) error {
	query := `
		INSERT INTO authors (id, first_name, last_name, biography, date_of_birth, date_of_death, nationality, awards)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.FirstName, a.LastName, a.Biography, a.DateOfBirth, a.DateOfDeath, a.Nationality, a.Awards)
	if err != nil {
		return fmt.Errorf("failed to insert author: %w", err)
	}
	return nil
}

const authorQuery = `
	SELECT id, first_name, last_name, biography, date_of_birth, date_of_death, nationality, awards
	FROM authors
`

func (s *postgresStore) AuthorByID(ctx context.Context, id uuid.UUID) (*Author, error) {
	a := &Author{}
	err := s.db.QueryRowContext(ctx, authorQuery+` WHERE id = $1`, id).Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Biography, &a.DateOfBirth, &a.DateOfDeath, &a.Nationality, &a.Awards)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.New(apperr.CodeNotFound, "author not found")
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return a, nil
}

func (s *postgresStore) Authors(ctx context.Context, limit, offset int) ([]*Author, error) {
	rows, err := s.db.QueryContext(ctx, authorQuery+` ORDER BY last_name, first_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	var authors []*Author
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Biography, &a.DateOfBirth, &a.DateOfDeath, &a.Nationality, &a.Awards); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (s *postgresStore) UpdateAuthor(ctx context.Context, a *Author) error {
	query := `
		UPDATE authors
		SET first_name = $1, last_name = $2, biography = $3, date_of_birth = $4,
		    date_of_death = $5, nationality = $6, awards = $7
		WHERE id = $8
	`
	res, err := s.db.ExecContext(ctx, query,
		a.FirstName, a.LastName, a.Biography, a.DateOfBirth, a.DateOfDeath, a.Nationality, a.Awards, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "author not found")
	}
	return nil
}

func (s *postgresStore) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return apperr.New(apperr.CodeConflict, "author is still referenced")
		}
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "author not found")
	}
	return nil
}

func (s *postgresStore) InsertPublication(ctx context.Context, p *Publication) error {
	query := `
		INSERT INTO publications (id, name, address, website, email, phone_number, established_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Address, p.Website, p.Email, p.PhoneNumber, p.EstablishedDate, p.Description)
	if err != nil {
		return fmt.Errorf("failed to insert publication: %w", err)
	}
	return nil
}

const publicationQuery = `
	SELECT id, name, address, website, email, phone_number, established_date, description
	FROM publications
`

func (s *postgresStore) PublicationByID(ctx context.Context, id uuid.UUID) (*Publication, error) {
	p := &Publication{}
	err := s.db.QueryRowContext(ctx, publicationQuery+` WHERE id = $1`, id).Scan(
		&p.ID, &p.Name, &p.Address, &p.Website, &p.Email, &p.PhoneNumber, &p.EstablishedDate, &p.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.New(apperr.CodeNotFound, "publication not found")
		}
		return nil, fmt.Errorf("failed to get publication: %w", err)
	}
	return p, nil
}

func (s *postgresStore) Publications(ctx context.Context, limit, offset int) ([]*Publication, error) {
	rows, err := s.db.QueryContext(ctx, publicationQuery+` ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list publications: %w", err)
	}
	defer rows.Close()

	var publications []*Publication
	for rows.Next() {
		p := &Publication{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Website, &p.Email, &p.PhoneNumber, &p.EstablishedDate, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan publication: %w", err)
		}
		publications = append(publications, p)
	}
	return publications, rows.Err()
}

func (s *postgresStore) UpdatePublication(ctx context.Context, p *Publication) error {
	query := `
		UPDATE publications
		SET name = $1, address = $2, website = $3, email = $4,
		    phone_number = $5, established_date = $6, description = $7
		WHERE id = $8
	`
	res, err := s.db.ExecContext(ctx, query,
		p.Name, p.Address, p.Website, p.Email, p.PhoneNumber, p.EstablishedDate, p.Description, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update publication: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "publication not found")
	}
	return nil
}

func (s *postgresStore) DeletePublication(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM publications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete publication: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "publication not found")
	}
	return nil
}

func (s *postgresStore) InsertBook(ctx context.Context, b *Book) error {
	query := `
		INSERT INTO books (id, title, slug, author_id, category_id, publication_id, price, stock, description, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		b.ID, b.Title, b.Slug, b.AuthorID, b.CategoryID, b.PublicationID, b.Price, b.Stock, b.Description, b.LastUpdate)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return apperr.New(apperr.CodeNotFound, "referenced author, category or publication not found")
		}
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

const bookQuery = `
	SELECT id, title, slug, author_id, category_id, publication_id, price, stock, description, last_update
	FROM books
`

func scanBook(scanner interface{ Scan(...interface{}) error }) (*Book, error) {
	b := &Book{}
	err := scanner.Scan(
		&b.ID, &b.Title, &b.Slug, &b.AuthorID, &b.CategoryID, &b.PublicationID,
		&b.Price, &b.Stock, &b.Description, &b.LastUpdate)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *postgresStore) BookByID(ctx context.Context, id uuid.UUID) (*Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx, bookQuery+` WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.New(apperr.CodeNotFound, "book not found")
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return b, nil
}

func (s *postgresStore) Books(ctx context.Context, filter BookFilter) ([]*Book, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID != nil {
		where = append(where, "category_id = "+arg(*filter.CategoryID))
	}
	if filter.MinPrice != nil {
		where = append(where, "price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		where = append(where, "price <= "+arg(*filter.MaxPrice))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where = append(where, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", p, p))
	}

	query := bookQuery
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	switch filter.Ordering {
	case OrderByPriceAsc:
		query += " ORDER BY price"
	case OrderByPriceDesc:
		query += " ORDER BY price DESC"
	case OrderByLastUpdateAsc:
		query += " ORDER BY last_update"
	case OrderByLastUpdateDesc:
		query += " ORDER BY last_update DESC"
	default:
		query += " ORDER BY title"
	}
	query += fmt.Sprintf(" LIMIT %s OFFSET %s", arg(filter.Limit), arg(filter.Offset))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (s *postgresStore) UpdateBook(ctx context.Context, b *Book) error {
	query := `
		UPDATE books
		SET title = $1, slug = $2, author_id = $3, category_id = $4, publication_id = $5,
		    price = $6, stock = $7, description = $8, last_update = $9
		WHERE id = $10
	`
	res, err := s.db.ExecContext(ctx, query,
		b.Title, b.Slug, b.AuthorID, b.CategoryID, b.PublicationID, b.Price, b.Stock, b.Description, b.LastUpdate, b.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return apperr.New(apperr.CodeNotFound, "referenced author, category or publication not found")
		}
		return fmt.Errorf("failed to update book: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "book not found")
	}
	return nil
}

func (s *postgresStore) DeleteBook(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		// FK backstop for the application-level order-item guard.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return apperr.New(apperr.CodeConflict, "book is referenced by order items")
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.New(apperr.CodeNotFound, "book not found")
	}
	return nil
}

func (s *postgresStore) OrderItemCountForBook(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM order_items WHERE book_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count order items for book: %w", err)
	}
	return count, nil
}

func (s *postgresStore) ClearStock(ctx context.Context, categoryID *uuid.UUID) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if categoryID != nil {
		res, err = s.db.ExecContext(ctx, `UPDATE books SET stock = 0, last_update = NOW() WHERE category_id = $1`, *categoryID)
	} else {
		res, err = s.db.ExecContext(ctx, `UPDATE books SET stock = 0, last_update = NOW()`)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to clear stock: %w", err)
	}
	return res.RowsAffected()
}

func (s *postgresStore) InsertReview(ctx context.Context, rv *Review) error {
	query := `
		INSERT INTO reviews (book_id, name, description, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, rv.BookID, rv.Name, rv.Description, rv.Date).Scan(&rv.ID)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (s *postgresStore) ReviewsForBook(ctx context.Context, bookID uuid.UUID, limit, offset int) ([]*Review, error) {
	query := `
		SELECT id, book_id, name, description, date
		FROM reviews
		WHERE book_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, bookID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		rv := &Review{}
		if err := rows.Scan(&rv.ID, &rv.BookID, &rv.Name, &rv.Description, &rv.Date); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
