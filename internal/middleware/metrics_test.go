package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/bookstore/pkg/metricspkg"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := metricspkg.New()

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()
	server.Use(Metrics(m))
	server.GET("/books", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		server.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books", nil))
	}

	server.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	n, err := testutil.GatherAndCount(m.Registry(), "http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	server := gin.New()
	server.Use(CORS([]string{"http://localhost:3000"}))
	server.GET("/books", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodOptions, "/books", nil)
	request.Header.Set("Origin", "http://localhost:3000")
	request.Header.Set("Access-Control-Request-Method", http.MethodGet)

	server.ServeHTTP(recorder, request)

	require.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
}
