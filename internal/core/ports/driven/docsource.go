package driven

import (
	"context"

	"github.com/custodia-labs/specsync/internal/core/domain"
)

// DocumentSource lists and exports the tracked documents.
// Backed by the Google Drive API in production.
type DocumentSource interface {
	// ListFolders returns the first-level subfolders of a folder.
	ListFolders(ctx context.Context, parentFolderID string) ([]domain.Folder, error)

	// ListDocuments returns the document-type files within a folder.
	ListDocuments(ctx context.Context, folderID string) ([]domain.DocumentFile, error)

	// ExportHTML fetches one document's rendered HTML body.
	// Fails with domain.ErrDocumentUnavailable when the document cannot
	// be fetched.
	ExportHTML(ctx context.Context, documentID string) (string, error)

	// ListComments returns the comments on a document.
	ListComments(ctx context.Context, documentID string) ([]domain.Comment, error)
}
