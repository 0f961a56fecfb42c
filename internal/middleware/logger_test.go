package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/bookstore/pkg/configpkg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCreateLogger(t *testing.T) {
	l := CreateLogger(configpkg.Config{Environement: "production"})
	require.Equal(t, zerolog.InfoLevel, l.GetLevel())

	l = CreateLogger(configpkg.Config{Environement: "development"})
	require.Equal(t, zerolog.TraceLevel, l.GetLevel())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := zerolog.New(&buf)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()
	server.Use(RequestLogger(logger))

	var ctxLogged bool

	server.GET("/books", func(ctx *gin.Context) {
		l := zerolog.Ctx(ctx.Request.Context())
		ctxLogged = l.GetLevel() != zerolog.Disabled
		ctx.Status(http.StatusOK)
	})
	server.GET("/panic", func(ctx *gin.Context) {
		panic("boom")
	})

	t.Run("OK", func(t *testing.T) {
		buf.Reset()

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/books", nil)
		request.Header.Set(RequestIDHeader, "req-1")

		server.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, "req-1", recorder.Header().Get(RequestIDHeader))
		require.True(t, ctxLogged)

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		require.Equal(t, "req-1", line["request_id"])
		require.Equal(t, "/books", line["path"])
		require.EqualValues(t, http.StatusOK, line["status_code"])
	})

	t.Run("GeneratedRequestID", func(t *testing.T) {
		buf.Reset()

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/books", nil)

		server.ServeHTTP(recorder, request)

		require.NotEmpty(t, recorder.Header().Get(RequestIDHeader))
	})

	t.Run("Panic", func(t *testing.T) {
		buf.Reset()

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/panic", nil)

		server.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusInternalServerError, recorder.Code)
		require.Contains(t, buf.String(), "boom")
	})
}
