package cli

import (
	"context"
	"fmt"

	"github.com/custodia-labs/specsync/internal/cache"
	"github.com/custodia-labs/specsync/internal/config"
	"github.com/custodia-labs/specsync/internal/connectors/google"
	"github.com/custodia-labs/specsync/internal/connectors/google/drive"
	"github.com/custodia-labs/specsync/internal/connectors/google/sheets"
	"github.com/custodia-labs/specsync/internal/core/domain"
	"github.com/custodia-labs/specsync/internal/core/ports/driving"
	"github.com/custodia-labs/specsync/internal/core/services"
	"github.com/custodia-labs/specsync/internal/extract"
)

// backends holds the Google-backed adapters shared by the commands.
type backends struct {
	source *drive.Source
	tables *sheets.Store
}

// newBackends builds the Drive and Sheets adapters from config.
func newBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	ts, err := google.NewTokenSource(ctx, cfg.Google.CredentialsFile, google.Scopes...)
	if err != nil {
		return nil, err
	}
	source, err := drive.NewSource(ctx, ts)
	if err != nil {
		return nil, err
	}
	tables, err := sheets.NewStore(ctx, ts, cfg.Google.SpreadsheetID)
	if err != nil {
		return nil, err
	}
	return &backends{source: source, tables: tables}, nil
}

// newReconciler wires the reconciliation driver.
func newReconciler(ctx context.Context, cfg *config.Config) (driving.Reconciler, error) {
	b, err := newBackends(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("configure google backends: %w", err)
	}
	return services.NewReconcileService(
		b.source, b.tables, extract.New(),
		cfg.Google.RootFolderID, cfg.Sheets.Canonical, cfg.Sheets.Scratch,
	), nil
}

// newDirectory wires the read path with its TTL caches.
func newDirectory(ctx context.Context, cfg *config.Config) (driving.SpecDirectory, error) {
	b, err := newBackends(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("configure google backends: %w", err)
	}
	specsCache := cache.New[[]domain.SpecRecord](cfg.Cache.TTL(), 1)
	detailsCache := cache.New[driving.SpecDetails](cfg.Cache.TTL(), cfg.Cache.DetailsEntries)
	return services.NewDirectoryService(
		b.tables, b.source, extract.New(),
		cfg.Sheets.Canonical, cfg.Google.DocumentBaseURL,
		specsCache, detailsCache,
	), nil
}
