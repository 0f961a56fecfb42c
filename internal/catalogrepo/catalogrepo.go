// Package catalogrepo manages repository layer of books, authors and genres.
package catalogrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

type scanner interface {
	Scan(dest ...any) error
}

// collect scans every row with scan and closes rows.
func collect[T any](ctx context.Context, rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	l := zerolog.Ctx(ctx)

	defer rows.Close()

	items := []T{}

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, item)
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

// mapErr converts a query error into a domain error.
//
// constraints maps violated constraint names to the error returned for them.
func mapErr(ctx context.Context, err error, notFound error, constraints map[string]error) error {
	l := zerolog.Ctx(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		l.Info().Err(err).Send()
		return notFound
	}

	l.Error().Err(err).Send()

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if mapped, ok := constraints[pqErr.Constraint]; ok {
			return mapped
		}
	}

	return errorspkg.ErrInternal
}

func count(ctx context.Context, db interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, query string) (int64, error) {
	var n int64

	if err := db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return n, nil
}

func deleteByID(ctx context.Context, db interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}, query string, id int32, notFound error, constraints map[string]error) error {
	res, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return mapErr(ctx, err, notFound, constraints)
	}

	n, err := res.RowsAffected()
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return notFound
	}

	return nil
}
