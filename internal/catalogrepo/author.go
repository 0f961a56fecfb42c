package catalogrepo

import (
	"context"

	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/dbpkg"
)

// AuthorRepo facilitates author repository layer logic.
type AuthorRepo struct {
	db dbpkg.SQLInterface
}

// NewAuthorRepo returns AuthorRepo.
func NewAuthorRepo(db dbpkg.SQLInterface) *AuthorRepo {
	return &AuthorRepo{db: db}
}

var authorConstraints = map[string]error{
	"books_author_id_fkey": domain.ErrReferenced,
}

func scanAuthor(s scanner) (domain.Author, error) {
	var a domain.Author

	err := s.Scan(
		&a.ID,
		&a.FullName,
		&a.Bio,
		&a.CreatedAt,
	)

	return a, err
}

const authorColumns = `id, full_name, bio, created_at`

// Get returns the author with the given id.
func (r *AuthorRepo) Get(ctx context.Context, id int32) (domain.Author, error) {
	const query = `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return a, mapErr(ctx, err, domain.ErrAuthorNotFound, authorConstraints)
	}

	return a, nil
}

// List returns the specified number of authors ordered by id.
func (r *AuthorRepo) List(ctx context.Context, limit, offset int32) ([]domain.Author, error) {
	const query = `SELECT ` + authorColumns + ` FROM authors ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, mapErr(ctx, err, domain.ErrAuthorNotFound, authorConstraints)
	}

	return collect(ctx, rows, scanAuthor)
}

// Count returns the number of authors.
func (r *AuthorRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT count(*) FROM authors`)
}

// Create creates the author and then returns it.
func (r *AuthorRepo) Create(ctx context.Context, arg domain.AuthorParams) (domain.Author, error) {
	const query = `
INSERT INTO authors (full_name, bio)
VALUES ($1, $2)
RETURNING ` + authorColumns

	a, err := scanAuthor(r.db.QueryRowContext(ctx, query, arg.FullName, arg.Bio))
	if err != nil {
		return a, mapErr(ctx, err, domain.ErrAuthorNotFound, authorConstraints)
	}

	return a, nil
}

// Update replaces the author fields and returns the updated author.
func (r *AuthorRepo) Update(ctx context.Context, id int32, arg domain.AuthorParams) (domain.Author, error) {
	const query = `
UPDATE authors
SET full_name = $2, bio = $3
WHERE id = $1
RETURNING ` + authorColumns

	a, err := scanAuthor(r.db.QueryRowContext(ctx, query, id, arg.FullName, arg.Bio))
	if err != nil {
		return a, mapErr(ctx, err, domain.ErrAuthorNotFound, authorConstraints)
	}

	return a, nil
}

// Delete removes the author with the given id. Authors of existing books cannot be removed.
func (r *AuthorRepo) Delete(ctx context.Context, id int32) error {
	return deleteByID(ctx, r.db, `DELETE FROM authors WHERE id = $1`, id, domain.ErrAuthorNotFound, authorConstraints)
}
