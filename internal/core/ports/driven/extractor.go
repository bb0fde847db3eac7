package driven

import (
	"context"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
)

// TextExtractor converts a loaded document's raw bytes into plain text.
// Each extractor handles specific file extensions (e.g., ".pdf").
type TextExtractor interface {
	// Extensions returns the lower-cased file extensions this
	// extractor handles, including the leading dot.
	Extensions() []string

	// Extract returns the flattened visible text of the document.
	// It must not mutate the document.
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// ExtractorRegistry dispatches documents to extractors by extension.
type ExtractorRegistry interface {
	// ForPath returns the extractor for the path's extension.
	// The match is case-insensitive. Returns
	// domain.ErrUnsupportedFormat when no extractor is registered.
	ForPath(path string) (TextExtractor, error)

	// Extensions returns all supported extensions, sorted.
	Extensions() []string
}
