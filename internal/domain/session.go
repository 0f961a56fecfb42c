package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Refresh session errors.
var (
	ErrSessionNotFound        = errors.New("session not found")
	ErrBlockedSession         = errors.New("blocked session")
	ErrInvalidUser            = errors.New("incorrect session user")
	ErrMismatchedRefreshToken = errors.New("mismatched session token")
	ErrExpiredSession         = errors.New("expired session")
)

// Session is a stored refresh token. Access tokens are only renewed
// against a session that passes Check.
type Session struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	RefreshToken string    `json:"refresh_token"`
	UserAgent    string    `json:"user_agent"`
	ClientIP     string    `json:"client_ip"`
	IsBlocked    bool      `json:"is_blocked"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Check reports why the session cannot renew an access token for the
// given user and refresh token at moment now, or nil if it can.
func (s Session) Check(username, refreshToken string, now time.Time) error {
	switch {
	case s.IsBlocked:
		return ErrBlockedSession
	case s.Username != username:
		return ErrInvalidUser
	case s.RefreshToken != refreshToken:
		return ErrMismatchedRefreshToken
	case now.After(s.ExpiresAt):
		return ErrExpiredSession
	}

	return nil
}

// CreateSessionParams is the input of a login. The token fields are filled
// by the session service before the row is stored.
type CreateSessionParams struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	RefreshToken string    `json:"refresh_token"`
	UserAgent    string    `json:"user_agent"`
	ClientIP     string    `json:"client_ip"`
	IsBlocked    bool      `json:"is_blocked"`
	ExpiresAt    time.Time `json:"expires_at"`
	// IsSuperuser goes into the issued tokens only.
	IsSuperuser bool `json:"-"`
}
