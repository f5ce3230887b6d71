// Package ratelimiter は外部API呼び出しの頻度を制限します。
package ratelimiter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter は1分あたりの呼び出し回数を制限します。複数のゴルーチンから安全に使用できます。
type RateLimiter struct {
	name    string
	limiter *rate.Limiter
}

// NewPerMinute はperMinute回/分の RateLimiter を生成します。
// perMinute が0以下の場合は無制限になります（テスト用）。
func NewPerMinute(name string, perMinute int) *RateLimiter {
	if perMinute <= 0 {
		return &RateLimiter{name: name, limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &RateLimiter{
		name:    name,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

// Wait は呼び出しが許可されるまで待機します。待機中にctxがキャンセルされた場合はエラーを返します。
// 許可される時刻がctxの期限より後になる場合は待たずに context.DeadlineExceeded を返し、予約を取り消します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r := rl.limiter.Reserve()
	if !r.OK() {
		return fmt.Errorf("ratelimiter %s: reservation rejected", rl.name)
	}
	delay := r.Delay()
	if delay == 0 {
		return nil
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < delay {
		r.Cancel()
		return fmt.Errorf("ratelimiter %s: wait %s exceeds deadline: %w", rl.name, delay, context.DeadlineExceeded)
	}

	slog.Debug("rate limit reached, waiting", "limiter", rl.name, "delay", delay)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
