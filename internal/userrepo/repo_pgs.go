// Package userrepo stores users in PostgreSQL.
package userrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/bookstore/internal/clientrepo"
	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/dbpkg"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/go-petr/bookstore/pkg/moneypkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS is the users table. Only a RepoPGS built by NewRepoPGS can open
// transactions.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns a RepoPGS bound to db, usually an open *sql.Tx.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

// NewRepoPGS returns a RepoPGS that can also run CreateWithClient.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{db: db, conn: db}
}

const (
	columns = `username, hashed_password, full_name, email, is_superuser, password_changed_at, created_at`

	insertUser = `
INSERT INTO users (username, hashed_password, full_name, email, is_superuser)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + columns

	selectUser = `SELECT ` + columns + ` FROM users WHERE username = $1`
)

// duplicates maps unique constraints of users to their domain errors.
var duplicates = map[string]error{
	"users_pkey":      domain.ErrUsernameAlreadyExists,
	"users_email_key": domain.ErrEmailALreadyExists,
}

var errNoConn = errors.New("userrepo: transaction needs a *sql.DB")

func scan(row *sql.Row) (u domain.User, err error) {
	err = row.Scan(&u.Username, &u.HashedPassword, &u.FullName, &u.Email, &u.IsSuperuser, &u.PasswordChangedAt, &u.CreatedAt)
	return u, err
}

// Create inserts the user alone. Registration goes through CreateWithClient.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	u, err := scan(r.db.QueryRowContext(ctx, insertUser,
		arg.Username, arg.HashedPassword, arg.FullName, arg.Email, arg.IsSuperuser))
	if err == nil {
		return u, nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		if dup, ok := duplicates[pqErr.Constraint]; ok {
			return domain.User{}, dup
		}
	}

	zerolog.Ctx(ctx).Error().Err(err).Str("username", arg.Username).Msg("insert user")

	return domain.User{}, errorspkg.ErrInternal
}

// CreateWithClient inserts the user and its zero balance client in one
// transaction, so no user exists without a wallet.
func (r *RepoPGS) CreateWithClient(ctx context.Context, arg domain.CreateUserParams) (domain.RegisterTxResult, error) {
	l := zerolog.Ctx(ctx)

	if r.conn == nil {
		l.Error().Err(errNoConn).Send()
		return domain.RegisterTxResult{}, errorspkg.ErrInternal
	}

	var res domain.RegisterTxResult

	err := dbpkg.ExecTx(ctx, r.conn, func(tx *sql.Tx) (err error) {
		if res.User, err = NewTxRepoPGS(tx).Create(ctx, arg); err != nil {
			return err
		}

		res.Client, err = clientrepo.NewRepoPGS(tx).Create(ctx, arg.Username, moneypkg.Zero)

		return err
	})

	switch {
	case err == nil:
		return res, nil
	case errors.Is(err, domain.ErrUsernameAlreadyExists), errors.Is(err, domain.ErrEmailALreadyExists):
		return domain.RegisterTxResult{}, err
	}

	l.Error().Err(err).Str("username", arg.Username).Msg("register user")

	return domain.RegisterTxResult{}, errorspkg.ErrInternal
}

// Get returns the user with the given username.
func (r *RepoPGS) Get(ctx context.Context, username string) (domain.User, error) {
	u, err := scan(r.db.QueryRowContext(ctx, selectUser, username))

	switch {
	case err == nil:
		return u, nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.User{}, domain.ErrUserNotFound
	}

	zerolog.Ctx(ctx).Error().Err(err).Str("username", username).Msg("select user")

	return domain.User{}, errorspkg.ErrInternal
}
