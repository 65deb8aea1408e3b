package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"synergym-api/internal/core/server"
	mdw "synergym-api/internal/transport/http/middleware"
)

// Limits 中间件参数，0 值表示关闭对应限制
type Limits struct {
	RequestTimeout time.Duration
	MaxConcurrent  int64
	RatePerSec     float64
	RateBurst      int
	MaxBodyBytes   int64
}

// Readiness 健康检查依赖（DB/Redis ping），可为空
type Readiness func(*gin.Context) error

func NewAPIEngine(l *zap.Logger, lim Limits, ready Readiness, reg *Registry) *gin.Engine {
	r := server.NewRouter(l)

	// 中间件
	r.Use(mdw.RequestID(), mdw.Recovery(l))
	if lim.RatePerSec > 0 {
		r.Use(mdw.RateLimitPerIP(rate.Limit(lim.RatePerSec), max(1, lim.RateBurst)))
	}
	if lim.MaxConcurrent > 0 {
		r.Use(mdw.ConcurrencyLimit(lim.MaxConcurrent))
	}
	if lim.MaxBodyBytes > 0 {
		r.Use(mdw.MaxBodyBytes(lim.MaxBodyBytes))
	}
	if lim.RequestTimeout > 0 {
		r.Use(mdw.Timeout(lim.RequestTimeout))
	}
	r.Use(mdw.Metrics(), mdw.AccessLog(l))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		if ready != nil {
			if err := ready(c); err != nil {
				l.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0, "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	r.GET("/metrics", mdw.MetricsHandler())

	// 前缀
	api := r.Group("/api/v1")
	if reg != nil {
		reg.MountAllAPI(api)
	}
	return r
}
