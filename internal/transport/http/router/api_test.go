package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	mdw "synergym-api/internal/transport/http/middleware"
)

type orderedModule struct {
	name     string
	priority int
	mounted  *[]string
}

func (m orderedModule) MountAPI(g *gin.RouterGroup) {
	*m.mounted = append(*m.mounted, m.name)
	g.GET("/"+m.name, func(c *gin.Context) { c.String(http.StatusOK, m.name) })
}

func (m orderedModule) Priority() int { return m.priority }

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRegistry_MountsByPriority(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var mounted []string
	reg := NewRegistry(
		orderedModule{name: "likes", priority: 100, mounted: &mounted},
		orderedModule{name: "exercises", priority: 10, mounted: &mounted},
		nil,
	)
	reg.Register(orderedModule{name: "users", priority: 20, mounted: &mounted})

	r := NewAPIEngine(zap.NewNop(), Limits{}, nil, reg)
	assert.Equal(t, []string{"exercises", "users", "likes"}, mounted)

	w := get(r, "/api/v1/users")
	assert.Equal(t, "users", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(mdw.KeyRequestID))
}

func TestNewAPIEngine_HealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	healthy := true
	r := NewAPIEngine(zap.NewNop(), Limits{RatePerSec: 1000, RateBurst: 1000, MaxConcurrent: 8, MaxBodyBytes: 1 << 10}, func(*gin.Context) error {
		if !healthy {
			return errors.New("db: connection refused")
		}
		return nil
	}, NewRegistry())

	w := get(r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":1}`, w.Body.String())

	healthy = false
	w = get(r, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = get(r, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "http_requests_total"))
}
