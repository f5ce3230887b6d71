package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_dashboard/internal/feature/pricehistory/domain/entity"
	"stock_dashboard/internal/platform/cache"
)

// mockPriceSource はPriceSourceインターフェースのモック実装です。
type mockPriceSource struct {
	GetDailyClosesFunc func(ctx context.Context, symbol string, from, to time.Time) ([]entity.PricePoint, error)
	calls              atomic.Int32
}

func (m *mockPriceSource) GetDailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]entity.PricePoint, error) {
	m.calls.Add(1)
	return m.GetDailyClosesFunc(ctx, symbol, from, to)
}

// mockLimiter は呼び出し回数を数えるRateLimiterです。
type mockLimiter struct {
	err   error
	calls atomic.Int32
}

func (m *mockLimiter) Wait(context.Context) error {
	m.calls.Add(1)
	return m.err
}

var today = time.Date(2024, 5, 31, 16, 0, 0, 0, time.UTC)

func newTestUsecase(source PriceSource, limiter RateLimiter) (*PriceHistoryUsecase, *time.Time) {
	now := today
	charts := cache.New[entity.Chart]("chart", cache.NewMemory(func() time.Time { return now }), cache.ChartTTL)
	u := NewPriceHistoryUsecase(source, limiter, charts)
	u.now = func() time.Time { return now }
	return u, &now
}

// sessions はstartから1日刻みでn件の終値を生成します。
func sessions(start time.Time, n int) []entity.PricePoint {
	out := make([]entity.PricePoint, n)
	for i := range n {
		out[i] = entity.PricePoint{Date: start.AddDate(0, 0, i), Close: float64(1000 + i)}
	}
	return out
}

// TestFetchRecent_Window は取得期間が40日で、直近30件が古い順に返ることを検証します。
func TestFetchRecent_Window(t *testing.T) {
	t.Parallel()

	points := sessions(time.Date(2024, 4, 22, 0, 0, 0, 0, time.UTC), 35)
	// reverse so the usecase has to sort
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}

	source := &mockPriceSource{GetDailyClosesFunc: func(_ context.Context, symbol string, from, to time.Time) ([]entity.PricePoint, error) {
		assert.Equal(t, "005930", symbol)
		assert.Equal(t, today, to)
		assert.Equal(t, today.AddDate(0, 0, -40), from)
		return points, nil
	}}
	u, _ := newTestUsecase(source, nil)

	chart := u.FetchRecent(context.Background(), "005930")

	require.True(t, chart.Available)
	assert.Equal(t, "005930", chart.Symbol)
	require.Len(t, chart.Points, MaxSessions)
	assert.Equal(t, 1005.0, chart.Points[0].Close)
	assert.Equal(t, 1034.0, chart.Points[MaxSessions-1].Close)
	for i := 1; i < len(chart.Points); i++ {
		assert.True(t, chart.Points[i-1].Date.Before(chart.Points[i].Date))
	}
}

// TestFetchRecent_FewerSessions は30件未満の場合に全件が返ることを検証します。
func TestFetchRecent_FewerSessions(t *testing.T) {
	t.Parallel()

	source := &mockPriceSource{GetDailyClosesFunc: func(context.Context, string, time.Time, time.Time) ([]entity.PricePoint, error) {
		return sessions(today.AddDate(0, 0, -3), 3), nil
	}}
	u, _ := newTestUsecase(source, nil)

	chart := u.FetchRecent(context.Background(), "000660")
	assert.True(t, chart.Available)
	assert.Len(t, chart.Points, 3)
}

// TestFetchRecent_Absent はデータが得られない各ケースでAbsentになることを検証します。
func TestFetchRecent_Absent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		code          string
		fetch         func(context.Context, string, time.Time, time.Time) ([]entity.PricePoint, error)
		expectedCalls int32
	}{
		{
			name: "provider error",
			code: "123456",
			fetch: func(context.Context, string, time.Time, time.Time) ([]entity.PricePoint, error) {
				return nil, errors.New("twelvedata: symbol not found")
			},
			expectedCalls: 1,
		},
		{
			name: "empty series",
			code: "123456",
			fetch: func(context.Context, string, time.Time, time.Time) ([]entity.PricePoint, error) {
				return []entity.PricePoint{}, nil
			},
			expectedCalls: 1,
		},
		{
			name:          "empty code",
			code:          "  ",
			expectedCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			source := &mockPriceSource{GetDailyClosesFunc: tt.fetch}
			u, _ := newTestUsecase(source, nil)

			chart := u.FetchRecent(context.Background(), tt.code)

			assert.False(t, chart.Available)
			assert.NotNil(t, chart.Points)
			assert.Empty(t, chart.Points)
			assert.Equal(t, tt.expectedCalls, source.calls.Load())
		})
	}
}

// TestFetchRecent_Cached は1時間以内の再取得がキャッシュから返ることを検証します。
func TestFetchRecent_Cached(t *testing.T) {
	t.Parallel()

	source := &mockPriceSource{GetDailyClosesFunc: func(context.Context, string, time.Time, time.Time) ([]entity.PricePoint, error) {
		return sessions(today.AddDate(0, 0, -5), 5), nil
	}}
	limiter := &mockLimiter{}
	u, now := newTestUsecase(source, limiter)
	ctx := context.Background()

	first := u.FetchRecent(ctx, "005930")
	*now = now.Add(59 * time.Minute)
	second := u.FetchRecent(ctx, "005930")

	assert.Equal(t, int32(1), source.calls.Load())
	assert.Equal(t, int32(1), limiter.calls.Load())
	assert.Equal(t, len(first.Points), len(second.Points))

	*now = now.Add(time.Minute)
	u.FetchRecent(ctx, "005930")
	assert.Equal(t, int32(2), source.calls.Load())

	u.FetchRecent(ctx, "000660")
	assert.Equal(t, int32(3), source.calls.Load(), "symbols are cached independently")
}

// TestFetchRecent_AbsentIsCached はAbsentの結果もキャッシュされることを検証します。
func TestFetchRecent_AbsentIsCached(t *testing.T) {
	t.Parallel()

	source := &mockPriceSource{GetDailyClosesFunc: func(context.Context, string, time.Time, time.Time) ([]entity.PricePoint, error) {
		return nil, errors.New("boom")
	}}
	u, _ := newTestUsecase(source, nil)
	ctx := context.Background()

	u.FetchRecent(ctx, "999999")
	u.FetchRecent(ctx, "999999")

	assert.Equal(t, int32(1), source.calls.Load())
}

// TestFetchRecent_CanceledNotCached はキャンセルされた取得がキャッシュされないことを検証します。
func TestFetchRecent_CanceledNotCached(t *testing.T) {
	t.Parallel()

	source := &mockPriceSource{GetDailyClosesFunc: func(context.Context, string, time.Time, time.Time) ([]entity.PricePoint, error) {
		return sessions(today.AddDate(0, 0, -2), 2), nil
	}}
	limiter := &mockLimiter{err: context.Canceled}
	u, _ := newTestUsecase(source, limiter)

	chart := u.FetchRecent(context.Background(), "005930")
	assert.False(t, chart.Available)
	assert.Equal(t, int32(0), source.calls.Load())

	limiter.err = nil
	chart = u.FetchRecent(context.Background(), "005930")
	assert.True(t, chart.Available)
	assert.Equal(t, int32(1), source.calls.Load())
}

// TestClear はClear後に再取得されることを検証します。
func TestClear(t *testing.T) {
	t.Parallel()

	source := &mockPriceSource{GetDailyClosesFunc: func(context.Context, string, time.Time, time.Time) ([]entity.PricePoint, error) {
		return sessions(today.AddDate(0, 0, -2), 2), nil
	}}
	u, _ := newTestUsecase(source, nil)
	ctx := context.Background()

	u.FetchRecent(ctx, "005930")
	require.NoError(t, u.Clear(ctx))
	u.FetchRecent(ctx, "005930")

	assert.Equal(t, int32(2), source.calls.Load())
}
