// Package chunker splits extracted text into word-count-bounded chunks.
package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of words per chunk.
const DefaultChunkSize = 500

// MinChunkSize is the smallest chunk size callers may request.
const MinChunkSize = 50

// MaxChunkSize is the largest chunk size callers may request.
const MaxChunkSize = 2000

// tokenPattern matches a maximal run of non-whitespace characters
// together with its trailing whitespace run. Splitting on this pattern
// preserves the original inter-word spacing, including newlines,
// verbatim within each chunk.
var tokenPattern = regexp.MustCompile(`\S+\s*`)

// Split partitions text into chunks of exactly chunkSize words each;
// the final chunk may be shorter. Each chunk is trimmed of leading and
// trailing whitespace. Empty input yields an empty slice, not [""].
//
// Split is a pure, stateless function: identical inputs always yield
// identical outputs. It requires only chunkSize >= 1; the configured
// MinChunkSize/MaxChunkSize window is enforced by callers via
// ValidateSize before invocation.
func Split(text string, chunkSize int) ([]string, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("%w: %d (must be >= 1)", domain.ErrInvalidChunkSize, chunkSize)
	}

	tokens := tokenPattern.FindAllString(text, -1)
	if len(tokens) == 0 {
		return nil, nil
	}

	chunks := make([]string, 0, (len(tokens)+chunkSize-1)/chunkSize)
	for start := 0; start < len(tokens); start += chunkSize {
		end := start + chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, strings.TrimSpace(strings.Join(tokens[start:end], "")))
	}

	return chunks, nil
}

// ValidateSize checks that a requested chunk size lies within the
// accepted window. Callers reject out-of-window sizes before Split.
func ValidateSize(chunkSize int) error {
	if chunkSize < MinChunkSize || chunkSize > MaxChunkSize {
		return fmt.Errorf("%w: %d (must be between %d and %d)",
			domain.ErrInvalidChunkSize, chunkSize, MinChunkSize, MaxChunkSize)
	}
	return nil
}
