// Package clientrepo manages repository layer of clients.
package clientrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/dbpkg"
	"github.com/go-petr/bookstore/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates client repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns client RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

func scanClient(row *sql.Row) (domain.Client, error) {
	var c domain.Client

	err := row.Scan(
		&c.Username,
		&c.Money,
		&c.CreatedAt,
	)

	return c, err
}

const createQuery = `
INSERT INTO
    clients (username, money)
VALUES
    ($1, $2)
RETURNING username, money, created_at
`

// Create creates the client bound to the given user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, username, money string) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	c, err := scanClient(r.db.QueryRowContext(ctx, createQuery, username, money))
	if err != nil {
		l.Error().Err(err).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "clients_username_fkey":
				return c, domain.ErrUserNotFound
			case "clients_money_check":
				return c, domain.ErrInsufficientFunds
			}
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const getQuery = `
SELECT
	username, money, created_at
FROM clients
WHERE username = $1
`

// Get returns the client of the given user.
func (r *RepoPGS) Get(ctx context.Context, username string) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	c, err := scanClient(r.db.QueryRowContext(ctx, getQuery, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Warn().Str("username", username).Msg("client not found")
			return c, domain.ErrClientNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const getForUpdateQuery = getQuery + `FOR UPDATE`

// GetForUpdate returns the client and locks its row until the surrounding transaction ends.
func (r *RepoPGS) GetForUpdate(ctx context.Context, username string) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	c, err := scanClient(r.db.QueryRowContext(ctx, getForUpdateQuery, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Warn().Str("username", username).Msg("client not found")
			return c, domain.ErrClientNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const addMoneyQuery = `
UPDATE clients
SET money = money + $1
WHERE username = $2
RETURNING username, money, created_at
`

// AddMoney changes the client's money by amount and returns the changed client.
//
// A negative amount that would bring the money below zero fails with ErrInsufficientFunds.
func (r *RepoPGS) AddMoney(ctx context.Context, username, amount string) (domain.Client, error) {
	l := zerolog.Ctx(ctx)

	c, err := scanClient(r.db.QueryRowContext(ctx, addMoneyQuery, amount, username))
	if err != nil {
		l.Error().Err(err).Send()

		if errors.Is(err, sql.ErrNoRows) {
			return c, domain.ErrClientNotFound
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "clients_money_check" {
			return c, domain.ErrInsufficientFunds
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const addBookQuery = `
INSERT INTO
    client_books (username, book_id)
VALUES
    ($1, $2)
ON CONFLICT (username, book_id) DO NOTHING
`

// AddBook adds the book to the client's owned set. Adding an owned book is a no-op.
func (r *RepoPGS) AddBook(ctx context.Context, username string, bookID int32) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, addBookQuery, username, bookID); err != nil {
		l.Error().Err(err).Send()

		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "client_books_username_fkey":
				return domain.ErrClientNotFound
			case "client_books_book_id_fkey":
				return domain.ErrBookNotFound
			}
		}

		return errorspkg.ErrInternal
	}

	return nil
}

const ownsBookQuery = `
SELECT EXISTS (
	SELECT 1 FROM client_books WHERE username = $1 AND book_id = $2
)
`

// OwnsBook reports whether the client owns the book.
func (r *RepoPGS) OwnsBook(ctx context.Context, username string, bookID int32) (bool, error) {
	l := zerolog.Ctx(ctx)

	var owned bool

	if err := r.db.QueryRowContext(ctx, ownsBookQuery, username, bookID).Scan(&owned); err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return owned, nil
}

const listBooksQuery = `
SELECT
	b.id, b.title, b.description, b.price, b.author_id, b.genre_id, b.created_at
FROM client_books cb
JOIN books b ON b.id = cb.book_id
WHERE cb.username = $1
ORDER BY cb.created_at, b.id
`

// ListBooks returns the books owned by the client.
func (r *RepoPGS) ListBooks(ctx context.Context, username string) ([]domain.Book, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listBooksQuery, username)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Book{}

	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Description,
			&b.Price,
			&b.AuthorID,
			&b.GenreID,
			&b.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, b)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
