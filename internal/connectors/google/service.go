package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes the tracker needs: read-only Drive access plus spreadsheet
// read/write.
var Scopes = []string{
	drive.DriveReadonlyScope,
	sheets.SpreadsheetsScope,
}

// NewTokenSource builds a service-account TokenSource from a JSON key
// file.
func NewTokenSource(ctx context.Context, credentialsFile string, scopes ...string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	cfg, err := googleauth.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return cfg.TokenSource(ctx), nil
}

// NewDriveService creates a Google Drive API service using the provided
// TokenSource.
func NewDriveService(ctx context.Context, ts oauth2.TokenSource) (*drive.Service, error) {
	return drive.NewService(ctx, option.WithTokenSource(ts))
}

// NewSheetsService creates a Google Sheets API service using the
// provided TokenSource.
func NewSheetsService(ctx context.Context, ts oauth2.TokenSource) (*sheets.Service, error) {
	return sheets.NewService(ctx, option.WithTokenSource(ts))
}
