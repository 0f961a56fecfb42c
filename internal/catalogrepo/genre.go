package catalogrepo

import (
	"context"

	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/dbpkg"
)

// GenreRepo facilitates genre repository layer logic.
type GenreRepo struct {
	db dbpkg.SQLInterface
}

// NewGenreRepo returns GenreRepo.
func NewGenreRepo(db dbpkg.SQLInterface) *GenreRepo {
	return &GenreRepo{db: db}
}

var genreConstraints = map[string]error{
	"genres_name_key":     domain.ErrGenreAlreadyExists,
	"books_genre_id_fkey": domain.ErrReferenced,
}

func scanGenre(s scanner) (domain.Genre, error) {
	var g domain.Genre

	err := s.Scan(
		&g.ID,
		&g.Name,
		&g.CreatedAt,
	)

	return g, err
}

const genreColumns = `id, name, created_at`

// Get returns the genre with the given id.
func (r *GenreRepo) Get(ctx context.Context, id int32) (domain.Genre, error) {
	const query = `SELECT ` + genreColumns + ` FROM genres WHERE id = $1`

	g, err := scanGenre(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return g, mapErr(ctx, err, domain.ErrGenreNotFound, genreConstraints)
	}

	return g, nil
}

// List returns the specified number of genres ordered by id.
func (r *GenreRepo) List(ctx context.Context, limit, offset int32) ([]domain.Genre, error) {
	const query = `SELECT ` + genreColumns + ` FROM genres ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, mapErr(ctx, err, domain.ErrGenreNotFound, genreConstraints)
	}

	return collect(ctx, rows, scanGenre)
}

// Count returns the number of genres.
func (r *GenreRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, `SELECT count(*) FROM genres`)
}

// Create creates the genre and then returns it.
func (r *GenreRepo) Create(ctx context.Context, arg domain.GenreParams) (domain.Genre, error) {
	const query = `INSERT INTO genres (name) VALUES ($1) RETURNING ` + genreColumns

	g, err := scanGenre(r.db.QueryRowContext(ctx, query, arg.Name))
	if err != nil {
		return g, mapErr(ctx, err, domain.ErrGenreNotFound, genreConstraints)
	}

	return g, nil
}

// Update renames the genre and returns it.
func (r *GenreRepo) Update(ctx context.Context, id int32, arg domain.GenreParams) (domain.Genre, error) {
	const query = `UPDATE genres SET name = $2 WHERE id = $1 RETURNING ` + genreColumns

	g, err := scanGenre(r.db.QueryRowContext(ctx, query, id, arg.Name))
	if err != nil {
		return g, mapErr(ctx, err, domain.ErrGenreNotFound, genreConstraints)
	}

	return g, nil
}

// Delete removes the genre with the given id. Genres of existing books cannot be removed.
func (r *GenreRepo) Delete(ctx context.Context, id int32) error {
	return deleteByID(ctx, r.db, `DELETE FROM genres WHERE id = $1`, id, domain.ErrGenreNotFound, genreConstraints)
}
