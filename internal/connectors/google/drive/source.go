// Package drive adapts the Google Drive API to the DocumentSource port.
package drive

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/oauth2"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/specsync/internal/connectors/google"
	"github.com/custodia-labs/specsync/internal/core/domain"
	"github.com/custodia-labs/specsync/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// Drive MIME types the tracker cares about.
const (
	MimeTypeFolder    = "application/vnd.google-apps.folder"
	MimeTypeGoogleDoc = "application/vnd.google-apps.document"
)

// ExportMimeHTML is the rendered form metadata is extracted from.
const ExportMimeHTML = "text/html"

// MaxExportSize is the maximum size for exported content (5MB).
const MaxExportSize = 5 * 1024 * 1024

// Source lists and exports spec documents through the Drive API.
type Source struct {
	svc     *drivev3.Service
	limiter *google.RateLimiter
}

// NewSource creates a Drive-backed document source.
func NewSource(ctx context.Context, ts oauth2.TokenSource) (*Source, error) {
	svc, err := google.NewDriveService(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Source{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceDrive),
	}, nil
}

// ListFolders returns the first-level subfolders of a folder.
func (s *Source) ListFolders(ctx context.Context, parentFolderID string) ([]domain.Folder, error) {
	query := fmt.Sprintf("mimeType = '%s' and '%s' in parents", MimeTypeFolder, parentFolderID)

	var folders []domain.Folder
	err := s.listFiles(ctx, query, "nextPageToken, files(id, name)", func(f *drivev3.File) {
		folders = append(folders, domain.Folder{ID: f.Id, Name: f.Name})
	})
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

// ListDocuments returns the Google Docs within a folder.
func (s *Source) ListDocuments(ctx context.Context, folderID string) ([]domain.DocumentFile, error) {
	query := fmt.Sprintf("mimeType = '%s' and '%s' in parents", MimeTypeGoogleDoc, folderID)

	var files []domain.DocumentFile
	err := s.listFiles(ctx, query,
		"nextPageToken, files(id, name, createdTime, modifiedTime, webViewLink)",
		func(f *drivev3.File) {
			files = append(files, domain.DocumentFile{
				ID:           f.Id,
				Name:         f.Name,
				CreatedTime:  f.CreatedTime,
				ModifiedTime: f.ModifiedTime,
				ViewURL:      f.WebViewLink,
			})
		})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return files, nil
}

// listFiles runs a files.list query across all pages.
func (s *Source) listFiles(ctx context.Context, query, fields string, collect func(*drivev3.File)) error {
	pageToken := ""
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		resp, err := s.svc.Files.List().
			Q(query).
			Fields(googleapi.Field(fields)).
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			PageToken(pageToken).
			Context(ctx).
			Do()
		if err != nil {
			return google.WrapError(err)
		}
		for _, f := range resp.Files {
			collect(f)
		}
		if pageToken = resp.NextPageToken; pageToken == "" {
			return nil
		}
	}
}

// ExportHTML fetches one document's rendered HTML body.
func (s *Source) ExportHTML(ctx context.Context, documentID string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	resp, err := s.svc.Files.Export(documentID, ExportMimeHTML).Context(ctx).Download()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDocumentUnavailable, google.WrapError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxExportSize))
	if err != nil {
		return "", fmt.Errorf("%w: read export: %v", domain.ErrDocumentUnavailable, err)
	}
	return string(data), nil
}

// ListComments returns the comments on a document, reduced to the
// resolved flag.
func (s *Source) ListComments(ctx context.Context, documentID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	pageToken := ""
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		call := s.svc.Comments.List(documentID).
			Fields("nextPageToken, comments(resolved)").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list comments: %w", google.WrapError(err))
		}
		for _, c := range resp.Comments {
			comments = append(comments, domain.Comment{Resolved: c.Resolved})
		}
		if pageToken = resp.NextPageToken; pageToken == "" {
			return comments, nil
		}
	}
}
