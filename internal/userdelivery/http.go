// Package userdelivery manages delivery layer of users.
package userdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/go-petr/bookstore/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Service registers users and checks their credentials.
//
//go:generate mockgen -source http.go -destination http_mock.go -package userdelivery
type Service interface {
	Create(ctx context.Context, username, password, fullname, email string) (domain.UserWihtoutPassword, error)
	CheckPassword(ctx context.Context, username, password string) (domain.UserWihtoutPassword, error)
}

// SessionMaker opens refresh token sessions.
type SessionMaker interface {
	Create(ctx context.Context, arg domain.CreateSessionParams) (string, time.Time, domain.Session, error)
}

// Handler serves registration and login.
type Handler struct {
	service      Service
	sessionMaker SessionMaker
}

// NewHandler returns user handler.
func NewHandler(us Service, sm SessionMaker) *Handler {
	return &Handler{
		service:      us,
		sessionMaker: sm,
	}
}

type createRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=6"`
}

// bindJSON decodes the request body into req and writes a 400 when it is
// malformed or fails validation.
func bindJSON(gctx *gin.Context, req any) bool {
	err := gctx.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
	} else {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	}

	return false
}

// writeError maps user service errors to responses. Unknown errors are hidden
// behind errorspkg.ErrInternal.
func writeError(gctx *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrUsernameAlreadyExists), errors.Is(err, domain.ErrEmailALreadyExists):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrWrongPassword):
		status = http.StatusUnauthorized
	default:
		err = errorspkg.ErrInternal
	}

	gctx.JSON(status, web.Error(err))
}

// Create registers a user with an empty wallet and logs them in.
func (h *Handler) Create(gctx *gin.Context) {
	var req createRequest
	if !bindJSON(gctx, &req) {
		return
	}

	u, err := h.service.Create(gctx.Request.Context(), req.Username, req.Password, req.FullName, req.Email)
	if err != nil {
		writeError(gctx, err)
		return
	}

	h.startSession(gctx, req.Username, u)
}

// Login checks the credentials and opens a new session.
func (h *Handler) Login(gctx *gin.Context) {
	var req loginRequest
	if !bindJSON(gctx, &req) {
		return
	}

	u, err := h.service.CheckPassword(gctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(gctx, err)
		return
	}

	h.startSession(gctx, req.Username, u)
}

type userData struct {
	User domain.UserWihtoutPassword `json:"user,omitempty"`
}

// startSession issues the token pair for username and writes it together with u.
func (h *Handler) startSession(gctx *gin.Context, username string, u domain.UserWihtoutPassword) {
	ctx := gctx.Request.Context()

	accessToken, accessExpiresAt, session, err := h.sessionMaker.Create(ctx, domain.CreateSessionParams{
		Username:    username,
		UserAgent:   gctx.Request.UserAgent(),
		ClientIP:    gctx.ClientIP(),
		IsSuperuser: u.IsSuperuser,
	})
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("username", username).Msg("cannot open session")
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiresAt.Format(time.RFC3339),
		RefreshToken:          session.RefreshToken,
		RefreshTokenExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		Data:                  userData{User: u},
	})
}
