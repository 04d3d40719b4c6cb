package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter は外部API呼び出しの頻度を制限します。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は interval ごとに limit 回までの呼び出しを許す固定ウィンドウ方式のリミッターです。
// 複数のリクエストハンドラーから同時に呼び出されても安全です。
type RateLimiter struct {
	mu          sync.Mutex
	limit       int           // interval あたりの上限
	interval    time.Duration // どの単位でリセットするか
	count       int
	windowStart time.Time
	now         func() time.Time
	after       func(time.Duration) <-chan time.Time
}

// NewRateLimiter は新しいRateLimiterを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:       limit,
		interval:    interval,
		windowStart: time.Now(),
		now:         time.Now,
		after:       time.After,
	}
}

// Wait は上限に達していれば次のウィンドウまで待機します。
// 待機中は他の呼び出し元もロックで待たされます。ctx が先に終われば ctx.Err() を返し、枠は消費しません。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.windowStart) >= rl.interval {
		rl.count = 0
		rl.windowStart = now
	}

	if rl.count >= rl.limit {
		wait := rl.interval - now.Sub(rl.windowStart)
		if wait > 0 {
			slog.Warn("rate limit reached", "limit", rl.limit, "wait", wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-rl.after(wait):
			}
		}
		rl.count = 0
		rl.windowStart = rl.now()
	}

	rl.count++
	return nil
}

type unlimited struct{}

func (unlimited) Wait(context.Context) error { return nil }

// Unlimited は待機しないリミッターを返します。
func Unlimited() Limiter { return unlimited{} }
