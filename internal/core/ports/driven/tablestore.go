package driven

import "context"

// TableHandle identifies one table (sheet) within the tabular store.
// The ID is stable across renames; the Title is the append range.
type TableHandle struct {
	ID    int64
	Title string
}

// TableStore reads and rewrites the external tabular store.
// Backed by the Google Sheets API in production.
type TableStore interface {
	// LookupTable finds a table by title.
	// Fails with domain.ErrNotFound when no such table exists.
	LookupTable(ctx context.Context, title string) (TableHandle, error)

	// ReadSnapshot returns the current cell grid of a table.
	ReadSnapshot(ctx context.Context, title string) ([][]string, error)

	// CreateTable returns the table with the given title, creating it if
	// it does not exist.
	CreateTable(ctx context.Context, title string) (TableHandle, error)

	// ClearTable deletes all content in a table.
	ClearTable(ctx context.Context, h TableHandle) error

	// AppendRows appends rows to the end of a table. Must be retry-safe:
	// a duplicate append after an ambiguous failure is acceptable.
	AppendRows(ctx context.Context, h TableHandle, rows [][]string) error

	// RenameTable changes a table's title.
	RenameTable(ctx context.Context, h TableHandle, newTitle string) error

	// DeleteTable removes a table.
	DeleteTable(ctx context.Context, h TableHandle) error
}
