// Package sessiondelivery serves access token renewal.
package sessiondelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/go-petr/bookstore/pkg/tokenpkg"
	"github.com/go-petr/bookstore/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Service renews access tokens.
//
//go:generate mockgen -source http.go -destination http_mock.go -package sessiondelivery
type Service interface {
	RenewAccessToken(ctx context.Context, refreshToken string) (string, time.Time, error)
}

// Handler serves POST /sessions.
type Handler struct {
	service Service
}

// NewHandler returns session handler.
func NewHandler(ss Service) *Handler {
	return &Handler{
		service: ss,
	}
}

type renewAccessTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// unauthorized lists the renewal failures that mean the refresh token can
// not be trusted.
var unauthorized = []error{
	tokenpkg.ErrInvalidToken,
	tokenpkg.ErrExpiredToken,
	domain.ErrBlockedSession,
	domain.ErrInvalidUser,
	domain.ErrMismatchedRefreshToken,
	domain.ErrExpiredSession,
}

func statusOf(err error) int {
	if errors.Is(err, domain.ErrSessionNotFound) {
		return http.StatusNotFound
	}

	for _, target := range unauthorized {
		if errors.Is(err, target) {
			return http.StatusUnauthorized
		}
	}

	return http.StatusInternalServerError
}

// RenewAccessToken exchanges a refresh token for a new access token.
func (h *Handler) RenewAccessToken(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req renewAccessTokenRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	accessToken, expiresAt, err := h.service.RenewAccessToken(ctx, req.RefreshToken)
	if err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		l.Info().Err(err).Int("status", status).Msg("renewal rejected")
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt.Format(time.RFC3339),
	})
}
