package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/specsync/internal/core/domain"
	"github.com/custodia-labs/specsync/internal/core/ports/driven"
	"github.com/custodia-labs/specsync/internal/core/ports/driving"
	"github.com/custodia-labs/specsync/internal/extract"
	"github.com/custodia-labs/specsync/internal/logger"
)

// Ensure ReconcileService implements the interface.
var _ driving.Reconciler = (*ReconcileService)(nil)

const (
	// batchSize rows are appended to the scratch table at a time.
	batchSize = 25

	// Append retry policy. Only the scratch-table append is retried;
	// no other external call gets this treatment.
	appendAttempts   = 3
	backoffStart     = 500 * time.Millisecond
	backoffIncrement = 800 * time.Millisecond
)

// ReconcileService rebuilds the canonical table from the live document
// set: per document it either carries the stored record forward or
// re-extracts it, stages all rows in a scratch table, then promotes the
// scratch table to canonical.
type ReconcileService struct {
	source    driven.DocumentSource
	tables    driven.TableStore
	extractor *extract.Extractor

	rootFolderID   string
	canonicalTitle string
	scratchTitle   string

	// sleep is replaceable in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

// NewReconcileService creates a new reconciliation driver.
func NewReconcileService(
	source driven.DocumentSource,
	tables driven.TableStore,
	extractor *extract.Extractor,
	rootFolderID, canonicalTitle, scratchTitle string,
) *ReconcileService {
	return &ReconcileService{
		source:         source,
		tables:         tables,
		extractor:      extractor,
		rootFolderID:   rootFolderID,
		canonicalTitle: canonicalTitle,
		scratchTitle:   scratchTitle,
		sleep:          time.Sleep,
	}
}

// Reconcile runs one full synchronisation. A document whose metadata
// cannot be fetched or extracted is dropped from the output and the run
// continues; a store write that fails after all retries aborts the run
// before the canonical table is touched.
func (s *ReconcileService) Reconcile(ctx context.Context) (*driving.ReconcileSummary, error) {
	summary := &driving.ReconcileSummary{RunID: uuid.NewString()}
	logger.Info("reconcile %s: starting", summary.RunID)

	existing, err := s.loadExisting(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing records: %w", err)
	}
	logger.Info("reconcile %s: %d existing records", summary.RunID, len(existing))

	scratch, err := s.tables.CreateTable(ctx, s.scratchTitle)
	if err != nil {
		return nil, fmt.Errorf("create scratch table: %w", err)
	}
	if err := s.tables.ClearTable(ctx, scratch); err != nil {
		return nil, fmt.Errorf("clear scratch table: %w", err)
	}
	if err := s.appendWithRetry(ctx, scratch, [][]string{domain.Header()}); err != nil {
		return nil, err
	}

	folders, err := s.source.ListFolders(ctx, s.rootFolderID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}

	batch := make([][]string, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.appendWithRetry(ctx, scratch, batch); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	for _, folder := range folders {
		files, err := s.source.ListDocuments(ctx, folder.ID)
		if err != nil {
			return nil, fmt.Errorf("list documents in %q: %w", folder.Name, err)
		}
		logger.Info("found %d documents in %s", len(files), folder.Name)
		summary.FoldersScanned++

		for _, file := range files {
			rec, err := s.buildRecord(ctx, folder, file, existing)
			if err != nil {
				logger.Warn("skipping document %q: %v", file.Name, err)
				summary.DocumentsSkipped++
				continue
			}
			batch = append(batch, rec.Row())
			summary.DocumentsProcessed++
			if len(batch) == batchSize {
				if err := flush(); err != nil {
					return nil, err
				}
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if err := s.promote(ctx, scratch); err != nil {
		return nil, err
	}

	logger.Info("reconcile %s: done, %d documents, %d skipped",
		summary.RunID, summary.DocumentsProcessed, summary.DocumentsSkipped)
	return summary, nil
}

// loadExisting indexes the canonical table's current rows by file ID.
// A missing canonical table means a first run; malformed rows are
// skipped as if the document had never been seen.
func (s *ReconcileService) loadExisting(ctx context.Context) (map[string]domain.SpecRecord, error) {
	existing := make(map[string]domain.SpecRecord)

	if _, err := s.tables.LookupTable(ctx, s.canonicalTitle); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return existing, nil
		}
		return nil, err
	}

	rows, err := s.tables.ReadSnapshot(ctx, s.canonicalTitle)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return existing, nil
	}

	for i, row := range rows[1:] {
		rec, err := domain.RecordFromRow(row)
		if err != nil {
			logger.Warn("ignoring stored row %d: %v", i+2, err)
			continue
		}
		existing[rec.FileID] = *rec
	}
	return existing, nil
}

// buildRecord produces one output record for a live document: the stored
// record carried forward when its modification timestamp still matches,
// a fresh extraction otherwise. Listing fields always come from the live
// file, since a document can be renamed or moved without its content
// changing.
func (s *ReconcileService) buildRecord(
	ctx context.Context,
	folder domain.Folder,
	file domain.DocumentFile,
	existing map[string]domain.SpecRecord,
) (*domain.SpecRecord, error) {
	if prev, ok := existing[file.ID]; ok && !domain.NeedsRefresh(&prev, file.ModifiedTime) {
		rec := prev
		rec.FolderName = folder.Name
		rec.FileName = file.Name
		rec.FileURL = file.ViewURL
		rec.CreatedTime = file.CreatedTime
		rec.LastUpdated = file.ModifiedTime
		return &rec, nil
	}

	comments, err := s.source.ListComments(ctx, file.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	rendered, err := s.source.ExportHTML(ctx, file.ID)
	if err != nil {
		return nil, fmt.Errorf("export document: %w", err)
	}
	result, err := s.extractor.Extract(rendered)
	if err != nil {
		return nil, fmt.Errorf("extract metadata: %w", err)
	}

	rec := result.Record
	rec.FolderName = folder.Name
	rec.FileName = file.Name
	rec.FileID = file.ID
	rec.FileURL = file.ViewURL
	rec.CreatedTime = file.CreatedTime
	rec.LastUpdated = file.ModifiedTime
	rec.NumberOfComments = len(comments)
	rec.OpenComments = countOpen(comments)
	return rec, nil
}

// appendWithRetry appends rows with bounded, linearly increasing backoff.
// Exhaustion is fatal to the whole run.
func (s *ReconcileService) appendWithRetry(ctx context.Context, h driven.TableHandle, rows [][]string) error {
	wait := backoffStart
	var lastErr error
	for attempt := 1; attempt <= appendAttempts; attempt++ {
		if attempt > 1 {
			s.sleep(wait)
			wait += backoffIncrement
		}
		if lastErr = s.tables.AppendRows(ctx, h, rows); lastErr == nil {
			return nil
		}
		logger.Warn("append attempt %d/%d failed: %v", attempt, appendAttempts, lastErr)
	}
	return fmt.Errorf("%w: append after %d attempts: %v", domain.ErrStoreFailure, appendAttempts, lastErr)
}

// promote atomically replaces the canonical table with the fully written
// scratch table. Readers see either the old content or the new, never a
// partially written canonical table.
func (s *ReconcileService) promote(ctx context.Context, scratch driven.TableHandle) error {
	canonical, err := s.tables.LookupTable(ctx, s.canonicalTitle)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// First run, nothing to replace.
	case err != nil:
		return fmt.Errorf("look up canonical table: %w", err)
	default:
		if err := s.tables.DeleteTable(ctx, canonical); err != nil {
			return fmt.Errorf("delete old canonical table: %w", err)
		}
	}

	if err := s.tables.RenameTable(ctx, scratch, s.canonicalTitle); err != nil {
		return fmt.Errorf("promote scratch table: %w", err)
	}
	return nil
}

func countOpen(comments []domain.Comment) int {
	open := 0
	for _, c := range comments {
		if !c.Resolved {
			open++
		}
	}
	return open
}
