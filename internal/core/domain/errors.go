package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrUnsupportedFormat indicates no extractor handles the file's
	// extension. The file is skipped, the batch continues.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyDocument indicates extraction produced no text.
	ErrEmptyDocument = errors.New("document contains no extractable text")

	// ErrInvalidChunkSize indicates a chunk size outside the accepted
	// window. Chunk sizes are validated before the chunker runs.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEnricherUnavailable indicates a run requested enrichment but
	// no enrichment service is configured. Rejected at batch setup so
	// no artifacts are silently written without the requested fields.
	ErrEnricherUnavailable = errors.New("enrichment service unavailable")
)
