// Package usecase assembles the dashboard from the candidate snapshot and the
// per-symbol charts.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	candidates "stock_dashboard/internal/feature/candidates/domain/entity"
	"stock_dashboard/internal/feature/dashboard/domain/entity"
	pricehistory "stock_dashboard/internal/feature/pricehistory/domain/entity"
)

const (
	// DefaultWorkers bounds concurrent chart fetches when none is configured.
	DefaultWorkers = 4
	// DefaultChartTimeout bounds the chart phase of one Build when none is configured.
	DefaultChartTimeout = 10 * time.Second
)

// SnapshotProvider returns the current candidate snapshot.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) candidates.Snapshot
}

// ChartProvider returns a symbol's recent chart.
type ChartProvider interface {
	FetchRecent(ctx context.Context, code string) pricehistory.Chart
}

// CacheClearer drops every cached snapshot and chart.
type CacheClearer interface {
	ClearAll(ctx context.Context) error
}

// DashboardUsecase builds dashboards and handles the refresh action.
type DashboardUsecase struct {
	snapshots SnapshotProvider
	charts    ChartProvider
	caches    CacheClearer
	workers   int
	timeout   time.Duration
}

// NewDashboardUsecase creates a DashboardUsecase. workers <= 0 uses
// DefaultWorkers and chartTimeout <= 0 uses DefaultChartTimeout.
func NewDashboardUsecase(snapshots SnapshotProvider, charts ChartProvider, caches CacheClearer, workers int, chartTimeout time.Duration) *DashboardUsecase {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if chartTimeout <= 0 {
		chartTimeout = DefaultChartTimeout
	}
	return &DashboardUsecase{snapshots: snapshots, charts: charts, caches: caches, workers: workers, timeout: chartTimeout}
}

// Build returns the snapshot with charts for the first limit records; limit <= 0
// means every record. Charts are fetched concurrently and a row without data
// never affects its siblings. All chart fetches share one deadline; rows that
// cannot be fetched before it come back Absent.
func (u *DashboardUsecase) Build(ctx context.Context, limit int) entity.Dashboard {
	snap := u.snapshots.Snapshot(ctx)

	visible := snap.Records
	if limit > 0 && limit < len(visible) {
		visible = visible[:limit]
	}

	chartCtx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	rows := make([]entity.Row, len(visible))
	var g errgroup.Group
	g.SetLimit(u.workers)
	for i, rec := range visible {
		g.Go(func() error {
			rows[i] = entity.Row{Candidate: rec, Chart: u.charts.FetchRecent(chartCtx, rec.SymbolCode)}
			return nil
		})
	}
	_ = g.Wait()

	return entity.Dashboard{Snapshot: snap, Count: len(snap.Records), Rows: rows}
}

// Refresh clears both caches so the next Build refetches everything.
func (u *DashboardUsecase) Refresh(ctx context.Context) error {
	if err := u.caches.ClearAll(ctx); err != nil {
		slog.Error("failed to clear caches", "error", err)
		return err
	}
	slog.Info("dashboard caches cleared")
	return nil
}
