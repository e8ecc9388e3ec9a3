package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiterは、intervalあたりlimit回までにAPI呼び出しを制限します。
// バーストはlimitまで許可し、それを超えるとトークンが補充されるまで待機します。
type RateLimiter struct {
	limiter *rate.Limiter
	limit   int
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
// limitが0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	every := interval / time.Duration(limit)
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Every(every), limit),
		limit:   limit,
	}
}

// Waitはトークンが得られるまで待機します。ctxがキャンセルされた場合はエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limiter.Tokens() < 1 {
		slog.Debug("rate limit reached, waiting", "limit", rl.limit)
	}
	return rl.limiter.Wait(ctx)
}
