package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	indicatorhandler "fred_dashboard/internal/feature/indicators/transport/handler"
	"fred_dashboard/internal/platform/http/handler"
	"fred_dashboard/internal/platform/middleware"
)

// Options は認証不要の公開ルート以外の設定です。
type Options struct {
	AllowOrigins []string
	Health       handler.HealthStatus
}

func NewRouter(indicators *indicatorhandler.IndicatorHandler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	// 導通確認用
	health := handler.NewHealth(opts.Health)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ダッシュボード画面
	r.GET("/", indicators.Dashboard)

	// JSON API
	api := r.Group("/api")
	api.Use(cors.New(corsConfig(opts.AllowOrigins)))
	{
		api.GET("/indicators", indicators.ListIndicators)
		api.GET("/indicators/:key/series", indicators.GetSeries)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
