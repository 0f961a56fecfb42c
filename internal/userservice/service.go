// Package userservice registers users and verifies their credentials.
package userservice

import (
	"context"

	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/go-petr/bookstore/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo stores users. CreateWithClient opens the user's wallet in the same
// transaction.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	CreateWithClient(ctx context.Context, arg domain.CreateUserParams) (domain.RegisterTxResult, error)
	Get(ctx context.Context, username string) (domain.User, error)
}

// Service implements registration and login checks.
type Service struct {
	repo Repo
}

// New returns a Service backed by repo.
func New(repo Repo) *Service {
	return &Service{repo: repo}
}

// Create registers a regular user together with an empty client wallet.
func (s *Service) Create(ctx context.Context, username, password, fullname, email string) (domain.UserWihtoutPassword, error) {
	return s.register(ctx, domain.CreateUserParams{
		Username: username,
		FullName: fullname,
		Email:    email,
	}, password)
}

// CreateSuperuser registers a user allowed to modify the catalog.
func (s *Service) CreateSuperuser(ctx context.Context, username, password, fullname, email string) (domain.UserWihtoutPassword, error) {
	return s.register(ctx, domain.CreateUserParams{
		Username:    username,
		FullName:    fullname,
		Email:       email,
		IsSuperuser: true,
	}, password)
}

func (s *Service) register(ctx context.Context, arg domain.CreateUserParams, password string) (domain.UserWihtoutPassword, error) {
	l := zerolog.Ctx(ctx)

	hashed, err := passpkg.Hash(password)
	if err != nil {
		l.Error().Err(err).Str("username", arg.Username).Msg("cannot hash password")
		return domain.UserWihtoutPassword{}, errorspkg.ErrInternal
	}

	arg.HashedPassword = hashed

	res, err := s.repo.CreateWithClient(ctx, arg)
	if err != nil {
		return domain.UserWihtoutPassword{}, err
	}

	l.Info().Str("username", res.User.Username).Bool("superuser", res.User.IsSuperuser).Msg("user registered")

	return res.User.WithoutPassword(), nil
}

// CheckPassword returns the user when password matches the stored hash.
func (s *Service) CheckPassword(ctx context.Context, username, password string) (domain.UserWihtoutPassword, error) {
	u, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.UserWihtoutPassword{}, err
	}

	if err := passpkg.Check(password, u.HashedPassword); err != nil {
		zerolog.Ctx(ctx).Info().Str("username", username).Msg("wrong password")
		return domain.UserWihtoutPassword{}, domain.ErrWrongPassword
	}

	return u.WithoutPassword(), nil
}
