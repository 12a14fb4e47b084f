package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"wtwr-api/internal/core/server"
	mdw "wtwr-api/internal/transport/http/middleware"
)

type Limits struct {
	RPS           float64
	Burst         int
	PerIP         bool
	MaxConcurrent int64
	MaxBodyBytes  int64
	Timeout       time.Duration
}

func DefaultLimits() Limits {
	return Limits{RPS: 200, Burst: 400, MaxConcurrent: 300, MaxBodyBytes: 16 << 20, Timeout: 10 * time.Second}
}

type Deps struct {
	Log     *zap.Logger
	Mode    string
	Caller  gin.HandlerFunc // 写入 userId
	Limits  Limits
	Modules []APIModule
}

// 未配置（零值）的项取默认值
func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.RPS <= 0 {
		l.RPS = def.RPS
	}
	if l.Burst <= 0 {
		l.Burst = def.Burst
	}
	if l.MaxConcurrent <= 0 {
		l.MaxConcurrent = def.MaxConcurrent
	}
	if l.MaxBodyBytes <= 0 {
		l.MaxBodyBytes = def.MaxBodyBytes
	}
	if l.Timeout <= 0 {
		l.Timeout = def.Timeout
	}
	return l
}

// NewAPIEngine 组装中间件链、健康检查、指标与各资源路由
func NewAPIEngine(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	lim := d.Limits.withDefaults()
	limiter := mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst)
	if lim.PerIP {
		limiter = mdw.RateLimitPerIP(rate.Limit(lim.RPS), lim.Burst)
	}

	r := server.NewRouter(d.Log, server.Options{
		Mode:          d.Mode,
		ExposeHeaders: []string{mdw.KeyRequestID},
	})

	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(d.Log),
		mdw.Metrics(),
		limiter,
		mdw.ConcurrencyLimit(lim.MaxConcurrent),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
		mdw.Timeout(lim.Timeout),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", mdw.Handler())

	api := r.Group("")
	if d.Caller != nil {
		api.Use(d.Caller)
	}
	var reg Registry
	reg.Register(d.Modules...)
	reg.Mount(api)
	return r
}
