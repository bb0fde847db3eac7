package extractors

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
	"github.com/veldt-labs/ragprep-cli/internal/core/ports/driven"
	"github.com/veldt-labs/ragprep-cli/internal/extractors/docx"
	"github.com/veldt-labs/ragprep-cli/internal/extractors/pdf"
	"github.com/veldt-labs/ragprep-cli/internal/extractors/plaintext"
	"github.com/veldt-labs/ragprep-cli/internal/extractors/pptx"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file extensions to text extractors.
// Dispatch is keyed purely by lower-cased extension.
type Registry struct {
	byExt map[string]driven.TextExtractor
}

// NewRegistry creates a registry holding the given extractors.
// Later extractors win when two claim the same extension.
func NewRegistry(extractors ...driven.TextExtractor) *Registry {
	r := &Registry{byExt: make(map[string]driven.TextExtractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[strings.ToLower(ext)] = e
		}
	}
	return r
}

// Defaults returns a registry with all built-in extractors registered:
// plain text, PDF, DOCX and PPTX.
func Defaults() *Registry {
	return NewRegistry(
		plaintext.New(),
		pdf.New(),
		docx.New(),
		pptx.New(),
	)
}

// ForPath returns the extractor for the path's extension.
func (r *Registry) ForPath(path string) (driven.TextExtractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}
	return e, nil
}

// Extensions returns all supported extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
