package driving

import "context"

// ReconcileSummary reports what one reconciliation run did.
type ReconcileSummary struct {
	// RunID correlates the summary with the run's log lines.
	RunID string

	// FoldersScanned is the number of subfolders enumerated.
	FoldersScanned int

	// DocumentsProcessed is the number of rows written to the new table,
	// carried forward and freshly extracted alike.
	DocumentsProcessed int

	// DocumentsSkipped counts documents dropped from the output because
	// their metadata could not be fetched or extracted.
	DocumentsSkipped int
}

// Reconciler rebuilds the canonical table from the live document set.
type Reconciler interface {
	// Reconcile enumerates all tracked documents, reuses or re-derives
	// each record, stages the result in a scratch table and atomically
	// promotes it to canonical. A failed run leaves the canonical table
	// untouched.
	Reconcile(ctx context.Context) (*ReconcileSummary, error)
}
