// Package usecase implements fetching recent closing prices per symbol.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"stock_dashboard/internal/feature/pricehistory/domain/entity"
	"stock_dashboard/internal/platform/cache"
)

const (
	// LookbackDays is the calendar window requested from the provider.
	LookbackDays = 40
	// MaxSessions is how many of the most recent sessions a chart keeps.
	MaxSessions = 30
)

// PriceSource returns daily closes for symbol within [from, to], in any order.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider.
type PriceSource interface {
	GetDailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]entity.PricePoint, error)
}

// RateLimiter throttles provider calls.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// PriceHistoryUsecase fetches and caches per-symbol charts.
type PriceHistoryUsecase struct {
	source  PriceSource
	limiter RateLimiter
	charts  *cache.Cache[entity.Chart]
	now     func() time.Time
}

// NewPriceHistoryUsecase creates a PriceHistoryUsecase. limiter may be nil.
func NewPriceHistoryUsecase(source PriceSource, limiter RateLimiter, charts *cache.Cache[entity.Chart]) *PriceHistoryUsecase {
	return &PriceHistoryUsecase{source: source, limiter: limiter, charts: charts, now: time.Now}
}

// FetchRecent returns the last MaxSessions daily closes of code, oldest first.
// It never fails: provider errors, an empty code and an empty series all give an
// Absent chart, which is cached like a real one. A request that is canceled or
// runs out of time, including while waiting for the rate limiter, is not
// cached, so the next render tries again.
func (u *PriceHistoryUsecase) FetchRecent(ctx context.Context, code string) entity.Chart {
	code = strings.TrimSpace(code)
	if code == "" {
		return entity.Absent(code)
	}

	chart, err := u.charts.GetOrCompute(ctx, code, func(ctx context.Context) (entity.Chart, error) {
		return u.fetch(ctx, code)
	})
	if err != nil {
		slog.Warn("price history unavailable", "symbol", code, "error", err)
		return entity.Absent(code)
	}
	return chart
}

// Clear drops every cached chart.
func (u *PriceHistoryUsecase) Clear(ctx context.Context) error {
	return u.charts.Clear(ctx)
}

func (u *PriceHistoryUsecase) fetch(ctx context.Context, code string) (entity.Chart, error) {
	if u.limiter != nil {
		if err := u.limiter.Wait(ctx); err != nil {
			return entity.Chart{}, err
		}
	}

	to := u.now()
	from := to.AddDate(0, 0, -LookbackDays)
	points, err := u.source.GetDailyCloses(ctx, code, from, to)
	if err != nil {
		if isCanceled(ctx, err) {
			return entity.Chart{}, err
		}
		slog.Warn("failed to fetch price history", "symbol", code, "error", err)
		return entity.Absent(code), nil
	}
	if len(points) == 0 {
		slog.Warn("no price history", "symbol", code, "from", from.Format(time.DateOnly), "to", to.Format(time.DateOnly))
		return entity.Absent(code), nil
	}

	return entity.Chart{Symbol: code, Available: true, Points: lastSessions(points, MaxSessions)}, nil
}

// lastSessions sorts a copy of points oldest first and keeps the last n.
func lastSessions(points []entity.PricePoint, n int) []entity.PricePoint {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b entity.PricePoint) int {
		return a.Date.Compare(b.Date)
	})
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

func isCanceled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}
