// Package usecase implements reading and normalizing the candidate spreadsheet.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stock_dashboard/internal/feature/candidates/domain"
	"stock_dashboard/internal/feature/candidates/domain/entity"
	"stock_dashboard/internal/platform/cache"
	"stock_dashboard/internal/platform/credential"
)

// SnapshotKey is the only key of the snapshot cache.
const SnapshotKey = "snapshot"

// CredentialLoader supplies the spreadsheet credential.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider.
type CredentialLoader interface {
	Load() (*credential.Credential, bool, error)
}

// SheetSource reads the raw cell grid of the candidate sheet.
type SheetSource interface {
	FetchGrid(ctx context.Context, cred *credential.Credential) (entity.RawGrid, error)
}

// CandidatesUsecase produces cached, normalized snapshots of the candidate sheet.
type CandidatesUsecase struct {
	loader    CredentialLoader
	source    SheetSource
	snapshots *cache.Cache[entity.Snapshot]
	order     DateOrder
	now       func() time.Time
}

// NewCandidatesUsecase creates a CandidatesUsecase. snapshots is the snapshot cache instance.
func NewCandidatesUsecase(loader CredentialLoader, source SheetSource, snapshots *cache.Cache[entity.Snapshot], order DateOrder) *CandidatesUsecase {
	return &CandidatesUsecase{
		loader:    loader,
		source:    source,
		snapshots: snapshots,
		order:     order,
		now:       time.Now,
	}
}

// Snapshot returns the current snapshot, served from cache while it is fresh.
// Failed fetches are cached like successful ones, so a broken integration is
// retried at most once per TTL.
func (u *CandidatesUsecase) Snapshot(ctx context.Context) entity.Snapshot {
	snap, err := u.snapshots.GetOrCompute(ctx, SnapshotKey, func(ctx context.Context) (entity.Snapshot, error) {
		return u.Fetch(ctx), nil
	})
	if err != nil {
		// Fetch never fails; this only happens if the cache itself misbehaves.
		return u.failure(entity.StatusIntegrationError, "", err)
	}
	return snap
}

// Fetch reads and normalizes the sheet without consulting the cache. Every
// failure of the primary data path is turned into a Snapshot status here.
func (u *CandidatesUsecase) Fetch(ctx context.Context) entity.Snapshot {
	cred, ok, err := u.loader.Load()
	if err != nil {
		slog.Error("spreadsheet credential is invalid", "error", err)
		return u.failure(entity.StatusConfigurationError, "", err)
	}
	if !ok {
		slog.Info("spreadsheet credential not configured")
		return entity.Snapshot{Status: entity.StatusUnconfigured, Records: []entity.CandidateRecord{}, FetchedAt: u.now()}
	}

	grid, err := u.source.FetchGrid(ctx, cred)
	if err != nil {
		var ce *domain.ConfigurationError
		if errors.As(err, &ce) {
			slog.Error("spreadsheet credential rejected", "error", err)
			return u.failure(entity.StatusConfigurationError, "", err)
		}
		var ie *domain.IntegrationError
		kind := domain.IntegrationRemote
		if errors.As(err, &ie) {
			kind = ie.Kind
		}
		slog.Error("failed to fetch spreadsheet", "kind", kind, "error", err)
		return u.failure(entity.StatusIntegrationError, string(kind), err)
	}

	records, columns, err := Normalize(grid)
	if err != nil {
		slog.Error("spreadsheet schema mismatch", "error", err)
		return u.failure(entity.StatusSchemaError, "", err)
	}
	if len(records) == 0 {
		return entity.Snapshot{Status: entity.StatusEmpty, Columns: columns, Records: records, FetchedAt: u.now()}
	}

	SortByDiscoveryDate(records, u.order)
	slog.Info("spreadsheet snapshot loaded", "records", len(records))
	return entity.Snapshot{Status: entity.StatusOK, Columns: columns, Records: records, FetchedAt: u.now()}
}

// Clear drops the cached snapshot.
func (u *CandidatesUsecase) Clear(ctx context.Context) error {
	return u.snapshots.Clear(ctx)
}

func (u *CandidatesUsecase) failure(status entity.SnapshotStatus, kind string, err error) entity.Snapshot {
	return entity.Snapshot{
		Status:    status,
		Records:   []entity.CandidateRecord{},
		Error:     err.Error(),
		ErrorKind: kind,
		FetchedAt: u.now(),
	}
}
