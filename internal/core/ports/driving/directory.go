package driving

import (
	"context"

	"github.com/custodia-labs/specsync/internal/core/domain"
)

// SpecDetails is the on-demand view of a single document: its extracted
// metadata plus the rendered body with the metadata table removed.
type SpecDetails struct {
	Metadata domain.SpecRecord `json:"metadata"`
	URL      string            `json:"url"`
	HTML     string            `json:"html"`
}

// SpecDirectory serves spec metadata to the web front end.
type SpecDirectory interface {
	// AllSpecs returns every tracked record from the canonical table,
	// with author spellings unified. Served from a TTL cache.
	AllSpecs(ctx context.Context) ([]domain.SpecRecord, error)

	// Teams returns the sorted distinct folder names.
	Teams(ctx context.Context) ([]string, error)

	// SpecByIndex finds a record by its author-assigned index,
	// case-insensitively. Fails with domain.ErrNotFound when absent.
	SpecByIndex(ctx context.Context, index string) (*domain.SpecRecord, error)

	// SpecDetails fetches and extracts one document on demand.
	SpecDetails(ctx context.Context, documentID string) (*SpecDetails, error)
}
