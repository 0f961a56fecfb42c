package sessionservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/configpkg"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/go-petr/bookstore/pkg/randompkg"
	"github.com/go-petr/bookstore/pkg/tokenpkg"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var testConfig = configpkg.Config{
	AccessTokenDuration:  time.Minute,
	RefreshTokenDuration: time.Hour,
}

func newService(t *testing.T) (*Service, *MockRepo, tokenpkg.Maker) {
	t.Helper()

	maker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	repo := NewMockRepo(gomock.NewController(t))

	s, err := New(repo, testConfig, maker)
	require.NoError(t, err)

	return s, repo, maker
}

func TestCreate(t *testing.T) {
	t.Parallel()

	for _, superuser := range []bool{false, true} {
		superuser := superuser

		t.Run(map[bool]string{false: "User", true: "Superuser"}[superuser], func(t *testing.T) {
			t.Parallel()

			s, repo, maker := newService(t)
			username := randompkg.Owner()

			var stored domain.CreateSessionParams

			repo.EXPECT().
				Create(gomock.Any(), gomock.AssignableToTypeOf(domain.CreateSessionParams{})).
				DoAndReturn(func(_ context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
					stored = arg
					return domain.Session{
						ID:           arg.ID,
						Username:     arg.Username,
						RefreshToken: arg.RefreshToken,
						ExpiresAt:    arg.ExpiresAt,
					}, nil
				})

			access, accessExpiresAt, sess, err := s.Create(context.Background(), domain.CreateSessionParams{
				Username:    username,
				UserAgent:   "curl",
				IsSuperuser: superuser,
			})
			require.NoError(t, err)
			require.WithinDuration(t, time.Now().Add(testConfig.AccessTokenDuration), accessExpiresAt, time.Second)

			// The stored session is keyed by the refresh token id.
			refreshPayload, err := maker.VerifyToken(stored.RefreshToken)
			require.NoError(t, err)
			require.Equal(t, refreshPayload.ID, stored.ID)
			require.Equal(t, "curl", stored.UserAgent)
			require.WithinDuration(t, time.Now().Add(testConfig.RefreshTokenDuration), stored.ExpiresAt, time.Second)
			require.Equal(t, stored.RefreshToken, sess.RefreshToken)

			accessPayload, err := maker.VerifyToken(access)
			require.NoError(t, err)

			want := &tokenpkg.Payload{Username: username, IsSuperuser: superuser}
			ignore := cmpopts.IgnoreFields(tokenpkg.Payload{}, "ID", "IssuedAt", "ExpiredAt")
			if diff := cmp.Diff(want, accessPayload, ignore); diff != "" {
				t.Errorf("access token payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCreateRepoError(t *testing.T) {
	t.Parallel()

	s, repo, _ := newService(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.Session{}, domain.ErrUserNotFound)

	access, _, _, err := s.Create(context.Background(), domain.CreateSessionParams{Username: "ghost"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.Empty(t, access)
}

func TestRenewAccessToken(t *testing.T) {
	t.Parallel()

	username := randompkg.Owner()

	testCases := []struct {
		name string
		// token returns the refresh token to present and the stub for the
		// stored session, nil when the repo must not be reached.
		token   func(t *testing.T, maker tokenpkg.Maker) (string, func(repo *MockRepo))
		wantErr error
	}{
		{
			name: "OK",
			token: func(t *testing.T, maker tokenpkg.Maker) (string, func(repo *MockRepo)) {
				token, p, err := maker.CreateToken(username, true, time.Hour)
				require.NoError(t, err)

				return token, func(repo *MockRepo) {
					repo.EXPECT().Get(gomock.Any(), p.ID).
						Return(domain.Session{ID: p.ID, Username: username, RefreshToken: token, ExpiresAt: p.ExpiredAt}, nil)
				}
			},
		},
		{
			name: "ExpiredToken",
			token: func(t *testing.T, maker tokenpkg.Maker) (string, func(repo *MockRepo)) {
				token, _, err := maker.CreateToken(username, false, -time.Second)
				require.NoError(t, err)
				return token, nil
			},
			wantErr: tokenpkg.ErrExpiredToken,
		},
		{
			name: "InvalidToken",
			token: func(t *testing.T, _ tokenpkg.Maker) (string, func(repo *MockRepo)) {
				return "invalid", nil
			},
			wantErr: tokenpkg.ErrInvalidToken,
		},
		{
			name: "SessionNotFound",
			token: func(t *testing.T, maker tokenpkg.Maker) (string, func(repo *MockRepo)) {
				token, p, err := maker.CreateToken(username, false, time.Hour)
				require.NoError(t, err)

				return token, func(repo *MockRepo) {
					repo.EXPECT().Get(gomock.Any(), p.ID).Return(domain.Session{}, domain.ErrSessionNotFound)
				}
			},
			wantErr: domain.ErrSessionNotFound,
		},
		{
			name: "RejectedSession",
			token: func(t *testing.T, maker tokenpkg.Maker) (string, func(repo *MockRepo)) {
				token, p, err := maker.CreateToken(username, false, time.Hour)
				require.NoError(t, err)

				return token, func(repo *MockRepo) {
					repo.EXPECT().Get(gomock.Any(), p.ID).
						Return(domain.Session{ID: p.ID, Username: username, RefreshToken: token, IsBlocked: true}, nil)
				}
			},
			wantErr: domain.ErrBlockedSession,
		},
		{
			name: "RepoFailure",
			token: func(t *testing.T, maker tokenpkg.Maker) (string, func(repo *MockRepo)) {
				token, p, err := maker.CreateToken(username, false, time.Hour)
				require.NoError(t, err)

				return token, func(repo *MockRepo) {
					repo.EXPECT().Get(gomock.Any(), p.ID).Return(domain.Session{}, errorspkg.ErrInternal)
				}
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, repo, maker := newService(t)

			token, stub := tc.token(t, maker)
			if stub != nil {
				stub(repo)
			}

			access, expiresAt, err := s.RenewAccessToken(context.Background(), token)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("RenewAccessToken(ctx, token) returned error %v, want %v", err, tc.wantErr)
			}

			if tc.wantErr != nil {
				require.Empty(t, access)
				return
			}

			require.WithinDuration(t, time.Now().Add(testConfig.AccessTokenDuration), expiresAt, time.Second)

			// The renewed token keeps the superuser claim of the refresh token.
			p, err := maker.VerifyToken(access)
			require.NoError(t, err)
			require.True(t, p.IsSuperuser)
			require.Equal(t, username, p.Username)
		})
	}
}
