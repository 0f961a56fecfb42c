// Package middleware provides gin middlewares shared by all routes.
package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/bookstore/internal/permission"
	"github.com/go-petr/bookstore/pkg/tokenpkg"
	"github.com/go-petr/bookstore/pkg/web"
)

// Authorization header name and the only accepted scheme.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
)

const payloadKey = "authorization_payload"

var (
	// ErrAuthHeaderNotFound indicates a request without the authorization header.
	ErrAuthHeaderNotFound = errors.New("authorization header is not provided")
	// ErrBadAuthHeaderFormat indicates an authorization header that is not "<type> <token>".
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	// ErrUnsupportedAuthType indicates an authorization type other than bearer.
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
)

// AddAuthorization creates a token and sets it as the request authorization header.
func AddAuthorization(
	request *http.Request,
	tokenMaker tokenpkg.Maker,
	authType string,
	username string,
	isSuperuser bool,
	duration time.Duration,
) error {
	token, _, err := tokenMaker.CreateToken(username, isSuperuser, duration)
	if err != nil {
		return err
	}

	request.Header.Set(AuthHeaderKey, authType+" "+token)

	return nil
}

func verifyHeader(tokenMaker tokenpkg.Maker, header string) (*tokenpkg.Payload, error) {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return nil, ErrBadAuthHeaderFormat
	}

	authType := strings.ToLower(fields[0])
	if authType != AuthTypeBearer {
		return nil, ErrUnsupportedAuthType
	}

	return tokenMaker.VerifyToken(fields[1])
}

// Identify resolves the request principal without requiring one.
//
// Requests without the authorization header continue anonymously, the decision
// whether that is acceptable is left to Authorize. A present but invalid header
// is rejected right away.
func Identify(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			gctx.Next()
			return
		}

		payload, err := verifyHeader(tokenMaker, authHeader)
		if err != nil {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.Set(payloadKey, payload)
		gctx.Next()
	}
}

// Principal returns the identity attached to the request by Identify.
func Principal(gctx *gin.Context) permission.Principal {
	v, ok := gctx.Get(payloadKey)
	if !ok {
		return permission.Anonymous
	}

	payload, ok := v.(*tokenpkg.Payload)
	if !ok || payload == nil {
		return permission.Anonymous
	}

	return permission.Principal{
		Username:      payload.Username,
		Authenticated: true,
		Superuser:     payload.IsSuperuser,
	}
}
