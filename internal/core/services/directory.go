package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/specsync/internal/authors"
	"github.com/custodia-labs/specsync/internal/cache"
	"github.com/custodia-labs/specsync/internal/core/domain"
	"github.com/custodia-labs/specsync/internal/core/ports/driven"
	"github.com/custodia-labs/specsync/internal/core/ports/driving"
	"github.com/custodia-labs/specsync/internal/extract"
	"github.com/custodia-labs/specsync/internal/logger"
)

// Ensure DirectoryService implements the interface.
var _ driving.SpecDirectory = (*DirectoryService)(nil)

const specsCacheKey = "specs"

// DirectoryService is the read path behind the web front end: the
// canonical table served as records, and single documents fetched on
// demand. Both lookups sit behind injected TTL caches.
type DirectoryService struct {
	tables    driven.TableStore
	source    driven.DocumentSource
	extractor *extract.Extractor

	canonicalTitle string
	documentURL    string

	specsCache   *cache.Cache[[]domain.SpecRecord]
	detailsCache *cache.Cache[driving.SpecDetails]
}

// NewDirectoryService creates a new directory service. documentURL is
// the base URL documents are served under, joined with the document ID
// for the details view.
func NewDirectoryService(
	tables driven.TableStore,
	source driven.DocumentSource,
	extractor *extract.Extractor,
	canonicalTitle, documentURL string,
	specsCache *cache.Cache[[]domain.SpecRecord],
	detailsCache *cache.Cache[driving.SpecDetails],
) *DirectoryService {
	return &DirectoryService{
		tables:         tables,
		source:         source,
		extractor:      extractor,
		canonicalTitle: canonicalTitle,
		documentURL:    strings.TrimSuffix(documentURL, "/"),
		specsCache:     specsCache,
		detailsCache:   detailsCache,
	}
}

// AllSpecs returns every record in the canonical table. Author names are
// parsed and unified at read time; the table keeps the raw spellings.
func (s *DirectoryService) AllSpecs(ctx context.Context) ([]domain.SpecRecord, error) {
	if cached, ok := s.specsCache.Get(specsCacheKey); ok {
		return cached, nil
	}

	rows, err := s.tables.ReadSnapshot(ctx, s.canonicalTitle)
	if err != nil {
		return nil, fmt.Errorf("read canonical table: %w", err)
	}

	records := make([]domain.SpecRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rec, err := domain.RecordFromRow(row)
		if err != nil {
			logger.Warn("ignoring stored row %d: %v", i+1, err)
			continue
		}
		rec.Authors = authors.Parse(strings.Join(rec.Authors, ", "))
		records = append(records, *rec)
	}
	records = authors.Unify(records)

	s.specsCache.Set(specsCacheKey, records)
	return records, nil
}

// Teams returns the sorted distinct folder names across all records.
func (s *DirectoryService) Teams(ctx context.Context) ([]string, error) {
	records, err := s.AllSpecs(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var teams []string
	for _, rec := range records {
		if rec.FolderName != "" && !seen[rec.FolderName] {
			seen[rec.FolderName] = true
			teams = append(teams, rec.FolderName)
		}
	}
	sort.Strings(teams)
	return teams, nil
}

// SpecByIndex finds a record by its author-assigned index.
func (s *DirectoryService) SpecByIndex(ctx context.Context, index string) (*domain.SpecRecord, error) {
	records, err := s.AllSpecs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if strings.EqualFold(records[i].Index, index) {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("%w: spec %q", domain.ErrNotFound, index)
}

// SpecDetails fetches and extracts one document on demand.
func (s *DirectoryService) SpecDetails(ctx context.Context, documentID string) (*driving.SpecDetails, error) {
	if cached, ok := s.detailsCache.Get(documentID); ok {
		details := cached
		return &details, nil
	}

	rendered, err := s.source.ExportHTML(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("export document %s: %w", documentID, err)
	}
	result, err := s.extractor.Extract(rendered)
	if err != nil {
		return nil, fmt.Errorf("extract document %s: %w", documentID, err)
	}

	rec := *result.Record
	rec.FileID = documentID
	details := driving.SpecDetails{
		Metadata: rec,
		URL:      s.documentURL + "/" + documentID,
		HTML:     result.HTML,
	}

	s.detailsCache.Set(documentID, details)
	return &details, nil
}
