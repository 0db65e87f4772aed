package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordersOnNilRegistry(t *testing.T) {
	var m *Registry
	assert.NotPanics(t, func() {
		m.RecordDecision("Clear")
		m.RecordCommitConflict()
		m.RecordCacheLookup(true)
		m.RecordNotifyFailure()
		m.ObserveHTTPRequest(http.MethodGet, "/", 200, 0)
	})

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRecordDecision(t *testing.T) {
	m := New()
	m.RecordDecision("Clear")
	m.RecordDecision("Clear")
	m.RecordDecision("ConflictNoAlternative")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.decisions.WithLabelValues("Clear")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues("ConflictNoAlternative")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(Middleware(m))
	r.GET("/restaurants/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/restaurants/7", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/restaurants/:id", "200")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "http_requests_total"))
}
