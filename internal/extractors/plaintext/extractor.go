// Package plaintext extracts text from plain .txt files.
package plaintext

import (
	"context"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
	"github.com/veldt-labs/ragprep-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor handles plain text files. Content is decoded as UTF-8,
// with a single fallback to Latin-1 when the bytes are not valid
// UTF-8. Latin-1 maps every byte to a code point, so the fallback
// cannot fail.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt"}
}

// Extract returns the file content decoded as UTF-8 or Latin-1.
func (e *Extractor) Extract(_ context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrInvalidInput
	}

	if utf8.Valid(doc.Content) {
		return string(doc.Content), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(doc.Content)
	if err != nil {
		return "", fmt.Errorf("decoding %s as latin-1: %w", doc.Path, err)
	}
	return string(decoded), nil
}
