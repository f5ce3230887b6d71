package di

import (
	"context"
	"fmt"

	candidatesentity "stock_dashboard/internal/feature/candidates/domain/entity"
	candidatesusecase "stock_dashboard/internal/feature/candidates/usecase"
	dashboardusecase "stock_dashboard/internal/feature/dashboard/usecase"
	pricehistoryentity "stock_dashboard/internal/feature/pricehistory/domain/entity"
	pricehistoryusecase "stock_dashboard/internal/feature/pricehistory/usecase"
	"stock_dashboard/internal/platform/cache"
	"stock_dashboard/internal/platform/config"
	"stock_dashboard/internal/platform/credential"
)

// App holds the wired usecases shared by the binaries.
type App struct {
	Credential   *credential.Loader
	Caches       *CacheBackends
	Candidates   *candidatesusecase.CandidatesUsecase
	PriceHistory *pricehistoryusecase.PriceHistoryUsecase
	Dashboard    *dashboardusecase.DashboardUsecase
}

// Close releases external connections.
func (a *App) Close() {
	a.Caches.Close()
}

// NewApp wires every component from cfg.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	order, err := candidatesusecase.ParseDateOrder(cfg.Dashboard.DateOrder)
	if err != nil {
		return nil, fmt.Errorf("dashboard.date_order: %w", err)
	}

	backends := NewCacheBackends(ctx, cfg.Redis)
	snapshots := cache.New[candidatesentity.Snapshot]("snapshot", backends.Snapshot, cfg.Cache.SnapshotTTL)
	charts := cache.New[pricehistoryentity.Chart]("chart", backends.Chart, cfg.Cache.ChartTTL)

	loader := credential.NewLoader(cfg.Google.CredentialEnv)
	candidatesUC := candidatesusecase.NewCandidatesUsecase(loader, NewSheetsClient(cfg.Sheets), snapshots, order)
	priceUC := pricehistoryusecase.NewPriceHistoryUsecase(NewMarket(cfg.TwelveData), NewMarketLimiter(cfg.TwelveData), charts)
	dashboardUC := dashboardusecase.NewDashboardUsecase(candidatesUC, priceUC, cache.NewRegistry(snapshots, charts), cfg.Dashboard.Workers, cfg.Dashboard.ChartTimeout)

	return &App{
		Credential:   loader,
		Caches:       backends,
		Candidates:   candidatesUC,
		PriceHistory: priceUC,
		Dashboard:    dashboardUC,
	}, nil
}
