package catalogrepo

import (
	"context"

	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/dbpkg"
)

// BookRepo facilitates book repository layer logic.
type BookRepo struct {
	db dbpkg.SQLInterface
}

// NewBookRepo returns BookRepo.
func NewBookRepo(db dbpkg.SQLInterface) *BookRepo {
	return &BookRepo{db: db}
}

var bookConstraints = map[string]error{
	"books_author_id_fkey": domain.ErrAuthorNotFound,
	"books_genre_id_fkey":  domain.ErrGenreNotFound,
	"books_price_check":    domain.ErrInvalidPrice,
	// Owned or already purchased books cannot be removed.
	"client_books_book_id_fkey": domain.ErrReferenced,
	"entries_book_id_fkey":      domain.ErrReferenced,
}

func scanBook(s scanner) (domain.Book, error) {
	var b domain.Book

	err := s.Scan(
		&b.ID,
		&b.Title,
		&b.Description,
		&b.Price,
		&b.AuthorID,
		&b.GenreID,
		&b.CreatedAt,
	)

	return b, err
}

const bookColumns = `id, title, description, price, author_id, genre_id, created_at`

const getBookQuery = `
SELECT ` + bookColumns + ` FROM books
WHERE id = $1
`

// Get returns the book with the given id.
func (r *BookRepo) Get(ctx context.Context, id int32) (domain.Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx, getBookQuery, id))
	if err != nil {
		return b, mapErr(ctx, err, domain.ErrBookNotFound, bookConstraints)
	}

	return b, nil
}

const listBooksQuery = `
SELECT ` + bookColumns + ` FROM books
ORDER BY id
LIMIT $1 OFFSET $2
`

// List returns the specified number of books ordered by id.
func (r *BookRepo) List(ctx context.Context, limit, offset int32) ([]domain.Book, error) {
	rows, err := r.db.QueryContext(ctx, listBooksQuery, limit, offset)
	if err != nil {
		return nil, mapErr(ctx, err, domain.ErrBookNotFound, bookConstraints)
	}

	return collect(ctx, rows, scanBook)
}

// Count returns the number of books.
func (r *BookRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT count(*) FROM books`)
}

const createBookQuery = `
INSERT INTO
    books (title, description, price, author_id, genre_id)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING ` + bookColumns

// Create creates the book and then returns it.
func (r *BookRepo) Create(ctx context.Context, arg domain.BookParams) (domain.Book, error) {
	row := r.db.QueryRowContext(ctx, createBookQuery,
		arg.Title,
		arg.Description,
		arg.Price,
		arg.AuthorID,
		arg.GenreID,
	)

	b, err := scanBook(row)
	if err != nil {
		return b, mapErr(ctx, err, domain.ErrBookNotFound, bookConstraints)
	}

	return b, nil
}

const updateBookQuery = `
UPDATE books
SET title = $2, description = $3, price = $4, author_id = $5, genre_id = $6
WHERE id = $1
RETURNING ` + bookColumns

// Update replaces the book fields and returns the updated book.
func (r *BookRepo) Update(ctx context.Context, id int32, arg domain.BookParams) (domain.Book, error) {
	row := r.db.QueryRowContext(ctx, updateBookQuery,
		id,
		arg.Title,
		arg.Description,
		arg.Price,
		arg.AuthorID,
		arg.GenreID,
	)

	b, err := scanBook(row)
	if err != nil {
		return b, mapErr(ctx, err, domain.ErrBookNotFound, bookConstraints)
	}

	return b, nil
}

// Delete removes the book with the given id.
func (r *BookRepo) Delete(ctx context.Context, id int32) error {
	return deleteByID(ctx, r.db, `DELETE FROM books WHERE id = $1`, id, domain.ErrBookNotFound, bookConstraints)
}
