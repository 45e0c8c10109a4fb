package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/specsync/internal/core/domain"
	"github.com/custodia-labs/specsync/internal/core/ports/driving"
)

// fakeDirectory is a canned SpecDirectory for handler tests.
type fakeDirectory struct {
	specs   []domain.SpecRecord
	teams   []string
	details map[string]driving.SpecDetails
	err     error
}

var _ driving.SpecDirectory = (*fakeDirectory)(nil)

func (f *fakeDirectory) AllSpecs(context.Context) ([]domain.SpecRecord, error) {
	return f.specs, f.err
}

func (f *fakeDirectory) Teams(context.Context) ([]string, error) {
	return f.teams, f.err
}

func (f *fakeDirectory) SpecByIndex(_ context.Context, index string) (*domain.SpecRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.specs {
		if f.specs[i].Index == index {
			return &f.specs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: spec %q", domain.ErrNotFound, index)
}

func (f *fakeDirectory) SpecDetails(_ context.Context, documentID string) (*driving.SpecDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.details[documentID]; ok {
		return &d, nil
	}
	return nil, fmt.Errorf("%w: document %s", domain.ErrDocumentUnavailable, documentID)
}

func serve(dir driving.SpecDirectory, method, target string) *httptest.ResponseRecorder {
	e := NewServer(NewHandler(dir))
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sampleRecord(index, folder, url string) domain.SpecRecord {
	rec := domain.NewSpecRecord()
	rec.Index = index
	rec.FolderName = folder
	rec.FileURL = url
	return *rec
}

func TestHandleHealth(t *testing.T) {
	rec := serve(&fakeDirectory{}, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleListSpecs(t *testing.T) {
	dir := &fakeDirectory{
		specs: []domain.SpecRecord{
			sampleRecord("LX001", "Platform", "https://docs.example.com/doc-1"),
		},
		teams: []string{"Platform"},
	}

	rec := serve(dir, http.MethodGet, "/api/specs")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Specs []domain.SpecRecord `json:"specs"`
		Teams []string            `json:"teams"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Specs, 1)
	assert.Equal(t, "LX001", payload.Specs[0].Index)
	assert.Equal(t, []string{"Platform"}, payload.Teams)
}

func TestHandleListSpecsFailureIsGeneric(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("credentials expired for sa@internal")}

	rec := serve(dir, http.MethodGet, "/api/specs")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error fetching specs, try again.")
	assert.NotContains(t, rec.Body.String(), "credentials")
}

func TestHandleSpecDetails(t *testing.T) {
	meta := sampleRecord("LX001", "Platform", "")
	dir := &fakeDirectory{details: map[string]driving.SpecDetails{
		"doc-1": {Metadata: meta, URL: "https://docs.example.com/doc-1", HTML: "<p>Body.</p>"},
	}}

	rec := serve(dir, http.MethodGet, "/api/specs/doc-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload driving.SpecDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "LX001", payload.Metadata.Index)
	assert.Equal(t, "<p>Body.</p>", payload.HTML)
}

func TestHandleSpecDetailsFailureIsGeneric(t *testing.T) {
	rec := serve(&fakeDirectory{}, http.MethodGet, "/api/specs/missing")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error fetching document, try again.")
	assert.NotContains(t, rec.Body.String(), "missing")
}

func TestHandleSpecRedirect(t *testing.T) {
	dir := &fakeDirectory{
		specs: []domain.SpecRecord{
			sampleRecord("LX001", "Platform", "https://docs.example.com/doc-1"),
		},
	}

	rec := serve(dir, http.MethodGet, "/spec/LX001")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://docs.example.com/doc-1", rec.Header().Get("Location"))
}

func TestHandleSpecRedirectNotFound(t *testing.T) {
	rec := serve(&fakeDirectory{}, http.MethodGet, "/spec/LX999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}
