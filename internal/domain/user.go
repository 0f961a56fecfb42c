// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

// User errors. Their texts are shown to API clients as is.
var (
	ErrUsernameAlreadyExists = errors.New("Username already exists")
	ErrEmailALreadyExists    = errors.New("Email already exists")
	ErrUserNotFound          = errors.New("User not found")
	ErrWrongPassword         = errors.New("Wrong password")
)

// User is a registered account. Superusers may edit the catalog.
type User struct {
	Username          string    `json:"username"`
	HashedPassword    string    `json:"hashed_password"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	IsSuperuser       bool      `json:"is_superuser"`
	PasswordChangedAt time.Time `json:"password_changed_at,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	IsSuperuser    bool   `json:"is_superuser"`
}

// UserWihtoutPassword is User data excluding password data.
type UserWihtoutPassword struct {
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

// WithoutPassword strips the password hash and its change time.
func (u User) WithoutPassword() UserWihtoutPassword {
	return UserWihtoutPassword{
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
	}
}

// RegisterTxResult is the result of the registration transaction.
type RegisterTxResult struct {
	User   User   `json:"user"`
	Client Client `json:"client"`
}
