package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/bookstore/internal/permission"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/go-petr/bookstore/pkg/metricspkg"
	"github.com/go-petr/bookstore/pkg/web"
	"github.com/rs/zerolog"
)

// Authorize enforces the permission rule on every request of the route group.
//
// Anonymous principals are answered with 401, authenticated ones with 403.
// m may be nil.
func Authorize(rule permission.Rule, m *metricspkg.Collector) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		p := Principal(gctx)
		method := gctx.Request.Method

		if rule(method, p) {
			gctx.Next()
			return
		}

		l := zerolog.Ctx(gctx.Request.Context())

		if !p.Authenticated {
			l.Info().Str("method", method).Str("path", gctx.Request.URL.Path).Msg("unauthenticated request denied")

			if m != nil {
				m.IncPermissionDenied(method, "unauthenticated")
			}

			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(errorspkg.ErrUnauthenticated))

			return
		}

		l.Info().
			Str("method", method).
			Str("path", gctx.Request.URL.Path).
			Str("username", p.Username).
			Bool("superuser", p.Superuser).
			Msg("request forbidden")

		if m != nil {
			m.IncPermissionDenied(method, "forbidden")
		}

		gctx.AbortWithStatusJSON(http.StatusForbidden, web.Error(errorspkg.ErrForbidden))
	}
}
