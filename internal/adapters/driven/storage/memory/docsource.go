package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/specsync/internal/core/domain"
	"github.com/custodia-labs/specsync/internal/core/ports/driven"
)

// Ensure DocumentSource implements the interface.
var _ driven.DocumentSource = (*DocumentSource)(nil)

// DocumentSource is an in-memory implementation of
// driven.DocumentSource holding a fixed folder/document layout.
type DocumentSource struct {
	mu        sync.RWMutex
	folders   map[string][]domain.Folder       // parent folder ID -> subfolders
	documents map[string][]domain.DocumentFile // folder ID -> documents
	bodies    map[string]string                // document ID -> rendered HTML
	comments  map[string][]domain.Comment      // document ID -> comments
}

// NewDocumentSource creates an empty in-memory document source.
func NewDocumentSource() *DocumentSource {
	return &DocumentSource{
		folders:   make(map[string][]domain.Folder),
		documents: make(map[string][]domain.DocumentFile),
		bodies:    make(map[string]string),
		comments:  make(map[string][]domain.Comment),
	}
}

// AddFolder registers a subfolder under a parent folder.
func (s *DocumentSource) AddFolder(parentID string, folder domain.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders[parentID] = append(s.folders[parentID], folder)
}

// AddDocument registers a document in a folder with its rendered body.
func (s *DocumentSource) AddDocument(folderID string, file domain.DocumentFile, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[folderID] = append(s.documents[folderID], file)
	s.bodies[file.ID] = body
}

// AddComments registers comments for a document.
func (s *DocumentSource) AddComments(documentID string, comments ...domain.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[documentID] = append(s.comments[documentID], comments...)
}

// RemoveBody forgets a document's body so exports fail, for testing the
// unavailable-document path.
func (s *DocumentSource) RemoveBody(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bodies, documentID)
}

// ListFolders returns the subfolders of a folder.
func (s *DocumentSource) ListFolders(_ context.Context, parentFolderID string) ([]domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Folder(nil), s.folders[parentFolderID]...), nil
}

// ListDocuments returns the documents within a folder.
func (s *DocumentSource) ListDocuments(_ context.Context, folderID string) ([]domain.DocumentFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.DocumentFile(nil), s.documents[folderID]...), nil
}

// ExportHTML returns a document's registered body.
func (s *DocumentSource) ExportHTML(_ context.Context, documentID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	body, ok := s.bodies[documentID]
	if !ok {
		return "", fmt.Errorf("%w: document %s", domain.ErrDocumentUnavailable, documentID)
	}
	return body, nil
}

// ListComments returns a document's registered comments.
func (s *DocumentSource) ListComments(_ context.Context, documentID string) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Comment(nil), s.comments[documentID]...), nil
}
