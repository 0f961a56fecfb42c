// Package sessionrepo stores refresh token sessions in PostgreSQL.
package sessionrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/dbpkg"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS is the sessions table.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns a RepoPGS running its queries on db.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const (
	columns = `id, username, refresh_token, user_agent, client_ip, is_blocked, expires_at, created_at`

	insertSession = `
INSERT INTO sessions (id, username, refresh_token, user_agent, client_ip, is_blocked, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + columns

	selectSession = `SELECT ` + columns + ` FROM sessions WHERE id = $1`
)

// usernameFK guards sessions of unknown users.
const usernameFK = "sessions_username_fkey"

func scan(row *sql.Row) (s domain.Session, err error) {
	err = row.Scan(&s.ID, &s.Username, &s.RefreshToken, &s.UserAgent, &s.ClientIP, &s.IsBlocked, &s.ExpiresAt, &s.CreatedAt)
	return s, err
}

// Create stores the session. ErrUserNotFound is returned for an unknown username.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
	s, err := scan(r.db.QueryRowContext(ctx, insertSession,
		arg.ID, arg.Username, arg.RefreshToken, arg.UserAgent, arg.ClientIP, arg.IsBlocked, arg.ExpiresAt))
	if err == nil {
		return s, nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint == usernameFK {
		return domain.Session{}, domain.ErrUserNotFound
	}

	zerolog.Ctx(ctx).Error().Err(err).Str("username", arg.Username).Msg("insert session")

	return domain.Session{}, errorspkg.ErrInternal
}

// Get returns the session with the given id.
func (r *RepoPGS) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	s, err := scan(r.db.QueryRowContext(ctx, selectSession, id))

	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.Session{}, domain.ErrSessionNotFound
	}

	zerolog.Ctx(ctx).Error().Err(err).Stringer("session", id).Msg("select session")

	return domain.Session{}, errorspkg.ErrInternal
}
