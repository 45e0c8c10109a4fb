// Package memory provides in-memory implementations of the driven
// ports, used in tests and anywhere a real Google backend is not
// wanted.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/specsync/internal/core/domain"
	"github.com/custodia-labs/specsync/internal/core/ports/driven"
)

// Ensure TableStore implements the interface.
var _ driven.TableStore = (*TableStore)(nil)

type table struct {
	id    int64
	title string
	rows  [][]string
}

// TableStore is an in-memory implementation of driven.TableStore.
type TableStore struct {
	mu     sync.RWMutex
	nextID int64
	tables map[int64]*table

	// FailAppends makes the next n AppendRows calls fail, for testing
	// the retry path.
	FailAppends int
}

// NewTableStore creates a new in-memory table store.
func NewTableStore() *TableStore {
	return &TableStore{tables: make(map[int64]*table)}
}

// LookupTable finds a table by title.
func (s *TableStore) LookupTable(_ context.Context, title string) (driven.TableHandle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tables {
		if t.title == title {
			return driven.TableHandle{ID: t.id, Title: t.title}, nil
		}
	}
	return driven.TableHandle{}, fmt.Errorf("%w: table %q", domain.ErrNotFound, title)
}

// ReadSnapshot returns a copy of a table's rows.
func (s *TableStore) ReadSnapshot(_ context.Context, title string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tables {
		if t.title == title {
			rows := make([][]string, len(t.rows))
			for i, row := range t.rows {
				rows[i] = append([]string(nil), row...)
			}
			return rows, nil
		}
	}
	return nil, fmt.Errorf("%w: table %q", domain.ErrNotFound, title)
}

// CreateTable returns the table with the given title, creating it if
// needed.
func (s *TableStore) CreateTable(_ context.Context, title string) (driven.TableHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tables {
		if t.title == title {
			return driven.TableHandle{ID: t.id, Title: t.title}, nil
		}
	}
	s.nextID++
	t := &table{id: s.nextID, title: title}
	s.tables[t.id] = t
	return driven.TableHandle{ID: t.id, Title: t.title}, nil
}

// ClearTable removes all rows.
func (s *TableStore) ClearTable(_ context.Context, h driven.TableHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[h.ID]
	if !ok {
		return fmt.Errorf("%w: table %d", domain.ErrNotFound, h.ID)
	}
	t.rows = nil
	return nil
}

// AppendRows appends rows, honouring FailAppends.
func (s *TableStore) AppendRows(_ context.Context, h driven.TableHandle, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAppends > 0 {
		s.FailAppends--
		return fmt.Errorf("%w: simulated append failure", domain.ErrStoreFailure)
	}
	t, ok := s.tables[h.ID]
	if !ok {
		return fmt.Errorf("%w: table %d", domain.ErrNotFound, h.ID)
	}
	for _, row := range rows {
		t.rows = append(t.rows, append([]string(nil), row...))
	}
	return nil
}

// RenameTable changes a table's title.
func (s *TableStore) RenameTable(_ context.Context, h driven.TableHandle, newTitle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[h.ID]
	if !ok {
		return fmt.Errorf("%w: table %d", domain.ErrNotFound, h.ID)
	}
	t.title = newTitle
	return nil
}

// DeleteTable removes a table.
func (s *TableStore) DeleteTable(_ context.Context, h driven.TableHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[h.ID]; !ok {
		return fmt.Errorf("%w: table %d", domain.ErrNotFound, h.ID)
	}
	delete(s.tables, h.ID)
	return nil
}
