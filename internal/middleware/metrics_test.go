package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"catalog-service/pkg/config"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

func TestMetricsMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(MetricsMiddleware)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/api/stats", ok)
	e.GET("/metrics", ok)

	t.Run("routed_requests_counted", func(t *testing.T) {
		counter := prometheus.HttpRequestsTotal.WithLabelValues(http.MethodGet, "/api/stats", "200")
		before := testutil.ToFloat64(counter)

		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stats", nil))

		assert.Equal(t, before+1, testutil.ToFloat64(counter))
	})

	t.Run("scrape_endpoint_not_counted", func(t *testing.T) {
		counter := prometheus.HttpRequestsTotal.WithLabelValues(http.MethodGet, "/metrics", "200")
		before := testutil.ToFloat64(counter)

		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, before, testutil.ToFloat64(counter))
	})
}
