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

func TestRecordApplicationTransition(t *testing.T) {
	before := testutil.ToFloat64(applicationTransitions.WithLabelValues(TransitionAccept))

	RecordApplicationTransition(TransitionAccept)
	RecordApplicationTransition(TransitionAccept)

	after := testutil.ToFloat64(applicationTransitions.WithLabelValues(TransitionAccept))
	assert.Equal(t, before+2, after)
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/jobs/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/jobs/17", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `path="/api/jobs/:id"`), "expected templated path label")
	assert.False(t, strings.Contains(body, `path="/api/jobs/17"`))
}
