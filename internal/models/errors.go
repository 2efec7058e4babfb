package models

import "errors"

// Sentinel errors for the domain. Handlers map these to HTTP status codes;
// everything else surfaces as a 500.
var (
	// ErrNotFound indicates a referenced document, article or category
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an upload for a filename that already has a
	// document record. Callers opt into overwrite explicitly.
	ErrConflict = errors.New("already exists")

	// ErrInvalidInput indicates malformed caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotProcessed indicates an operation that requires a completed
	// document was attempted on one that is not terminal yet.
	ErrNotProcessed = errors.New("document not yet processed")

	// ErrNoText indicates a PDF from which no text could be extracted.
	// This is fatal for the document, not retryable.
	ErrNoText = errors.New("no text could be extracted from PDF")

	// ErrPermanent marks a processing failure as deterministic. The
	// worker must not retry; the document stays failed.
	ErrPermanent = errors.New("permanent processing failure")
)
