// Package redis はキャッシュ用のRedisクライアントを生成します。
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 3 * time.Second

// Options はRedis接続設定です。Hostが空の場合Redisは無効です。
type Options struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled reports whether a Redis host is configured.
func (o Options) Enabled() bool {
	return o.Host != ""
}

// Addr returns host:port, defaulting the port to 6379.
func (o Options) Addr() string {
	port := o.Port
	if port == "" {
		port = "6379"
	}
	return net.JoinHostPort(o.Host, port)
}

// NewRedisClient は接続を確認したうえでクライアントを返します。
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	if !opts.Enabled() {
		return nil, fmt.Errorf("redis host not configured")
	}
	addr := opts.Addr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
