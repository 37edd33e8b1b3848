package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging_PropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(Logging(base))
	r.GET("/v1/orders/:id", func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"code": "ORDER_NOT_FOUND"}) })

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/o-1", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))
	out := buf.String()
	assert.Contains(t, out, `"req_id":"req-42"`)
	assert.Contains(t, out, `"status":404`)
	assert.Contains(t, out, `"path":"/v1/orders/:id"`)
	assert.Contains(t, out, `"level":"WARN"`)
}

func TestLogging_GeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	base := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	r := gin.New()
	r.Use(Logging(base))
	r.GET("/v1/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestRequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestTimeout(2 * time.Second))
	var deadline time.Time
	var ok bool
	r.GET("/x", func(c *gin.Context) {
		deadline, ok = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.True(t, ok, "expected a deadline on the request context")
	assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(MetricsMiddleware())
	r.GET("/v1/orders/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/orders/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	c, err := httpRequests.GetMetricWithLabelValues(http.MethodGet, "/v1/orders/:id", "200")
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	assert.GreaterOrEqual(t, m.GetCounter().GetValue(), 2.0)
}
