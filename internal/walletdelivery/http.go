// Package walletdelivery manages delivery layer of the client profile and wallet.
package walletdelivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/internal/middleware"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/go-petr/bookstore/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by wallet delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package walletdelivery
type Service interface {
	TopUp(ctx context.Context, username, amount string) (domain.TopUpTxResult, error)
	Profile(ctx context.Context, username string) (domain.Profile, error)
}

// Handler facilitates wallet delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns wallet handler.
func NewHandler(ws Service) *Handler {
	return &Handler{service: ws}
}

type topUpRequest struct {
	Amount string `json:"amount" binding:"required,money"`
}

type topUpData struct {
	Client domain.Client `json:"client"`
	Entry  domain.Entry  `json:"entry"`
}

// TopUpMessage is the confirmation shown after a successful top-up.
func TopUpMessage(amount string) string {
	return fmt.Sprintf("Successfully added %s to your balance", amount)
}

// Profile handles http request to show the client's wallet, books and entries.
func (h *Handler) Profile(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	p := middleware.Principal(gctx)
	if !p.Authenticated {
		gctx.JSON(http.StatusUnauthorized, web.Error(errorspkg.ErrUnauthenticated))
		return
	}

	profile, err := h.service.Profile(ctx, p.Username)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			l.Error().Err(err).Str("username", p.Username).Msg("authenticated user has no client")
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: profile})
}

// TopUp handles http request to add money to the client's wallet.
func (h *Handler) TopUp(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	p := middleware.Principal(gctx)
	if !p.Authenticated {
		gctx.JSON(http.StatusUnauthorized, web.Error(errorspkg.ErrUnauthenticated))
		return
	}

	var req topUpRequest
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

	result, err := h.service.TopUp(ctx, p.Username, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNonPositiveAmount), errors.Is(err, domain.ErrInvalidAmount):
			gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrNonPositiveAmount))
			return
		case errors.Is(err, domain.ErrClientNotFound):
			l.Error().Err(err).Str("username", p.Username).Msg("authenticated user has no client")
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		Message: TopUpMessage(req.Amount),
		Data:    topUpData{Client: result.Client, Entry: result.Entry},
	})
}
