package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoMetadataTable indicates a document contains no table at all.
	// Fatal for that document; the reconciler drops it from the run.
	ErrNoMetadataTable = errors.New("no metadata table")

	// ErrDocumentUnavailable indicates a document body could not be fetched.
	// Same per-document handling as ErrNoMetadataTable.
	ErrDocumentUnavailable = errors.New("document unavailable")

	// ErrMalformedRow indicates a stored sheet row that cannot be decoded.
	// The row is skipped, as if no prior record existed.
	ErrMalformedRow = errors.New("malformed sheet row")

	// ErrStoreFailure indicates a tabular store write failed after all
	// retries. Fatal to the run; the canonical sheet is left untouched.
	ErrStoreFailure = errors.New("tabular store failure")
)
