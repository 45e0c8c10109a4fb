// Package sheets adapts the Google Sheets API to the TableStore port.
// Each "table" is one sheet within the tracker spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/specsync/internal/connectors/google"
	"github.com/custodia-labs/specsync/internal/core/domain"
	"github.com/custodia-labs/specsync/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.TableStore = (*Store)(nil)

// Store reads and rewrites sheets within one spreadsheet.
type Store struct {
	svc           *sheetsv4.Service
	spreadsheetID string
	limiter       *google.RateLimiter
}

// NewStore creates a Sheets-backed table store for a spreadsheet.
func NewStore(ctx context.Context, ts oauth2.TokenSource, spreadsheetID string) (*Store, error) {
	svc, err := google.NewSheetsService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Store{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		limiter:       google.NewRateLimiter(google.ServiceSheets),
	}, nil
}

// LookupTable finds a sheet by title.
func (s *Store) LookupTable(ctx context.Context, title string) (driven.TableHandle, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return driven.TableHandle{}, err
	}
	spreadsheet, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields(googleapi.Field("sheets.properties")).
		Context(ctx).
		Do()
	if err != nil {
		return driven.TableHandle{}, google.WrapError(err)
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return driven.TableHandle{ID: sheet.Properties.SheetId, Title: title}, nil
		}
	}
	return driven.TableHandle{}, fmt.Errorf("%w: sheet %q", domain.ErrNotFound, title)
}

// ReadSnapshot returns the current cell grid of a sheet.
func (s *Store) ReadSnapshot(ctx context.Context, title string) ([][]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, title).Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CreateTable returns the sheet with the given title, creating it if it
// does not exist.
func (s *Store) CreateTable(ctx context.Context, title string) (driven.TableHandle, error) {
	handle, err := s.LookupTable(ctx, title)
	if err == nil {
		return handle, nil
	}
	if !isNotFound(err) {
		return driven.TableHandle{}, err
	}

	err = s.batchUpdate(ctx, &sheetsv4.Request{
		AddSheet: &sheetsv4.AddSheetRequest{
			Properties: &sheetsv4.SheetProperties{Title: title},
		},
	})
	if err != nil {
		return driven.TableHandle{}, fmt.Errorf("add sheet %q: %w", title, err)
	}
	return s.LookupTable(ctx, title)
}

// ClearTable deletes all content in a sheet.
func (s *Store) ClearTable(ctx context.Context, h driven.TableHandle) error {
	return s.batchUpdate(ctx, &sheetsv4.Request{
		UpdateCells: &sheetsv4.UpdateCellsRequest{
			Range:  &sheetsv4.GridRange{SheetId: h.ID},
			Fields: "userEnteredValue",
		},
	})
}

// AppendRows appends rows to the end of a sheet. Values go in RAW, so
// the sheet stores exactly what the record encodes.
func (s *Store) AppendRows(ctx context.Context, h driven.TableHandle, rows [][]string) error {
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, h.Title, &sheetsv4.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return google.WrapError(err)
}

// RenameTable changes a sheet's title.
func (s *Store) RenameTable(ctx context.Context, h driven.TableHandle, newTitle string) error {
	return s.batchUpdate(ctx, &sheetsv4.Request{
		UpdateSheetProperties: &sheetsv4.UpdateSheetPropertiesRequest{
			Properties: &sheetsv4.SheetProperties{SheetId: h.ID, Title: newTitle},
			Fields:     "title",
		},
	})
}

// DeleteTable removes a sheet.
func (s *Store) DeleteTable(ctx context.Context, h driven.TableHandle) error {
	return s.batchUpdate(ctx, &sheetsv4.Request{
		DeleteSheet: &sheetsv4.DeleteSheetRequest{SheetId: h.ID},
	})
}

func (s *Store) batchUpdate(ctx context.Context, requests ...*sheetsv4.Request) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := s.svc.Spreadsheets.
		BatchUpdate(s.spreadsheetID, &sheetsv4.BatchUpdateSpreadsheetRequest{Requests: requests}).
		Context(ctx).
		Do()
	return google.WrapError(err)
}

func isNotFound(err error) bool {
	return google.IsNotFound(err) || errors.Is(err, domain.ErrNotFound)
}
