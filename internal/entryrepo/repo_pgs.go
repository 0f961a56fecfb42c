// Package entryrepo stores the wallet history of clients.
package entryrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/dbpkg"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS is the entries table.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns a RepoPGS running its queries on db.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const (
	columns = `id, username, amount, kind, book_id, created_at`

	insertEntry = `
INSERT INTO entries (username, amount, kind, book_id)
VALUES ($1, $2, $3, $4)
RETURNING ` + columns

	selectEntry = `SELECT ` + columns + ` FROM entries WHERE id = $1`

	// id is serial, so it orders entries by creation even within one second.
	listEntries = `
SELECT ` + columns + `
FROM entries
WHERE username = $1
ORDER BY id DESC
LIMIT $2 OFFSET $3`
)

// scan reads one entry from a *sql.Row or *sql.Rows. book_id is NULL for top-ups.
func scan(row interface{ Scan(...any) error }) (domain.Entry, error) {
	var (
		e      domain.Entry
		bookID sql.NullInt32
	)

	if err := row.Scan(&e.ID, &e.Username, &e.Amount, &e.Kind, &bookID, &e.CreatedAt); err != nil {
		return domain.Entry{}, err
	}

	e.BookID = bookID.Int32

	return e, nil
}

// Create records the entry. A zero BookID is stored as NULL.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateEntryParams) (domain.Entry, error) {
	bookID := sql.NullInt32{Int32: arg.BookID, Valid: arg.BookID != 0}

	e, err := scan(r.db.QueryRowContext(ctx, insertEntry, arg.Username, arg.Amount, arg.Kind, bookID))
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("username", arg.Username).
			Str("kind", arg.Kind).
			Msg("insert entry")

		return domain.Entry{}, errorspkg.ErrInternal
	}

	return e, nil
}

// Get returns the entry with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Entry, error) {
	e, err := scan(r.db.QueryRowContext(ctx, selectEntry, id))

	switch {
	case err == nil:
		return e, nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.Entry{}, domain.ErrEntryNotFound
	}

	zerolog.Ctx(ctx).Error().Err(err).Int64("entry", id).Msg("select entry")

	return domain.Entry{}, errorspkg.ErrInternal
}

// List returns a page of the client's entries, newest first. The result is
// never nil.
func (r *RepoPGS) List(ctx context.Context, username string, limit, offset int32) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listEntries, username, limit, offset)
	if err != nil {
		l.Error().Err(err).Str("username", username).Msg("list entries")
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	entries := []domain.Entry{}

	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			l.Error().Err(err).Msg("scan entry")
			return nil, errorspkg.ErrInternal
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Msg("iterate entries")
		return nil, errorspkg.ErrInternal
	}

	return entries, nil
}
