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

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.PostCreated()
	m.PostCreated()
	m.CommentCreated()
	m.Login(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.created.WithLabelValues("post")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.created.WithLabelValues("comment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logins.WithLabelValues("failed")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.PostCreated()
	m.Login(true)
	m.RegisterSizes(Sizes{})

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	posts := 3
	m.RegisterSizes(Sizes{Posts: func() int { return posts }})

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/posts", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `minifeed_api_http_requests_total{method="GET",route="/posts",status="200"} 1`), body)
	assert.True(t, strings.Contains(body, "minifeed_store_posts 3"), body)
}
