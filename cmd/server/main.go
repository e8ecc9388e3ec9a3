package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"fred_dashboard/internal/app/di"
	"fred_dashboard/internal/app/router"
	indicatorhandler "fred_dashboard/internal/feature/indicators/transport/handler"
	"fred_dashboard/internal/platform/config"
	"fred_dashboard/internal/platform/http/handler"
	"fred_dashboard/internal/platform/logger"
	infraredis "fred_dashboard/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .envを読み込む
	envErr := godotenv.Load(".env")

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	_, closeLog, err := logger.Init(logger.Options{Dir: cfg.Log.Dir, Level: cfg.Log.Level})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = closeLog() }()

	if envErr != nil {
		slog.Info(".env not found; using system environment variables")
	}
	// APIキー未設定でも起動し、画面に設定エラーを表示する
	if err := cfg.CredentialError(); err != nil {
		slog.Error("FRED API key not configured", "error", err)
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(context.Background(), cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running with in-memory cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Usecase
	indicatorUC, cacheBackend := di.NewIndicatorUsecase(cfg, rdb)

	// Handler
	indicatorH, err := indicatorhandler.NewIndicatorHandler(indicatorUC)
	if err != nil {
		slog.Error("failed to create handler", "error", err)
		os.Exit(1)
	}

	// ルータ生成
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	r := router.NewRouter(indicatorH, router.Options{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		Health: handler.HealthStatus{
			FredConfigured: cfg.CredentialError() == nil,
			Cache:          cacheBackend,
		},
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "addr", cfg.Server.Addr, "cache", cacheBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
