// Package purchasedelivery manages delivery layer of book purchases.
package purchasedelivery

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/internal/middleware"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/go-petr/bookstore/pkg/web"
	"github.com/rs/zerolog"
)

// BooksPath is where requests for unknown books are sent back to.
const BooksPath = "/books"

// PurchasedMessage confirms a successful purchase.
const PurchasedMessage = "book purchased"

// Service provides service layer interface needed by purchase delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package purchasedelivery
type Service interface {
	Preview(ctx context.Context, username string, bookID int32) (domain.PurchaseView, error)
	Buy(ctx context.Context, username string, bookID int32) (domain.PurchaseView, error)
}

// Handler facilitates purchase delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns purchase handler.
func NewHandler(ps Service) *Handler {
	return &Handler{service: ps}
}

func bookID(gctx *gin.Context) (int32, bool) {
	id, err := strconv.ParseInt(gctx.Query("id"), 10, 32)
	if err != nil || id < 1 {
		return 0, false
	}

	return int32(id), true
}

// Buy renders the purchase page on GET and buys the book on POST.
func (h *Handler) Buy(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	p := middleware.Principal(gctx)
	if !p.Authenticated {
		gctx.JSON(http.StatusUnauthorized, web.Error(errorspkg.ErrUnauthenticated))
		return
	}

	id, ok := bookID(gctx)
	if !ok {
		l.Info().Str("id", gctx.Query("id")).Msg("invalid book id")
		gctx.Redirect(http.StatusFound, BooksPath)

		return
	}

	var (
		view domain.PurchaseView
		err  error
	)

	if gctx.Request.Method == http.MethodPost {
		view, err = h.service.Buy(ctx, p.Username, id)
	} else {
		view, err = h.service.Preview(ctx, p.Username, id)
	}

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrBookNotFound):
		gctx.Redirect(http.StatusFound, BooksPath)
		return
	case errors.Is(err, domain.ErrInsufficientFunds):
		gctx.JSON(http.StatusBadRequest, web.Response{Data: view, Error: err.Error()})
		return
	default:
		if errors.Is(err, domain.ErrClientNotFound) {
			l.Error().Err(err).Str("username", p.Username).Msg("authenticated user has no client")
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{Data: view}
	if gctx.Request.Method == http.MethodPost {
		res.Message = PurchasedMessage
	}

	gctx.JSON(http.StatusOK, res)
}
