package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "wtwr-api/internal/transport/http/response"
)

type Options struct {
	Mode          string   // gin 模式：debug / release / test
	AllowOrigins  []string // 为空则允许全部
	ExposeHeaders []string
}

// NewRouter 基础引擎：panic 恢复（zap 记录）+ CORS；未匹配路由与方法统一 404
func NewRouter(l *zap.Logger, o Options) *gin.Engine {
	if o.Mode != "" {
		gin.SetMode(o.Mode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(ginzap.CustomRecoveryWithZap(l, true, func(c *gin.Context, _ any) {
		resp.Abort(c, http.StatusInternalServerError)
	}))
	r.Use(cors.New(corsConfig(o)))

	notFound := func(c *gin.Context) { resp.Abort(c, http.StatusNotFound) }
	r.NoRoute(notFound)
	r.NoMethod(notFound)
	return r
}

func corsConfig(o Options) cors.Config {
	cfg := cors.DefaultConfig()
	if len(o.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = o.AllowOrigins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.AllowHeaders = append(cfg.AllowHeaders, o.ExposeHeaders...)
	cfg.ExposeHeaders = o.ExposeHeaders
	return cfg
}

func StartHTTP(srv *http.Server, l *zap.Logger) error {
	l.Info("http starting", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    rt,
		WriteTimeout:   wt,
		IdleTimeout:    it,
		MaxHeaderBytes: 1 << 20, // 1MB
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
