package driven

import (
	"context"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
)

// MetadataEnricher obtains model-derived metadata for a chunk from an
// external language model service.
//
// The contract deliberately never returns an error: each of the three
// fields (summary, keywords, section) is requested independently, and a
// failed request yields a descriptive error string as that field's
// value. Partial failure of one request must not block the others, and
// enrichment never aborts a file or batch. Retry policy, rate limiting
// and backoff are the caller's responsibility, not the enricher's.
type MetadataEnricher interface {
	// Enrich requests summary, keywords and section metadata for the
	// chunk. fullText is the complete document text, available as
	// prompt context only.
	Enrich(ctx context.Context, chunkText, fullText string) domain.EnrichedMetadata

	// ModelName returns the name of the model being used.
	ModelName() string
}
