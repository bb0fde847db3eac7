// Package frontmatter renders chunks with a structured metadata header
// and parses rendered documents back into header and body.
package frontmatter

import (
	"fmt"
	"strings"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
)

// Marker delimits the metadata header from the chunk body.
const Marker = "---"

// Render serializes metadata and chunk text as a single document:
// a marker line, one "key: value" line per field in insertion order,
// a closing marker line, a blank line, the verbatim chunk text and a
// trailing newline. Values are flattened to a single line so every
// field occupies exactly one header line; LLM-derived values arrive
// with embedded newlines. The output round-trips through Split up to
// that flattening.
func Render(chunkText string, meta domain.Metadata) string {
	var b strings.Builder
	b.WriteString(Marker)
	b.WriteByte('\n')
	for _, f := range meta {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(singleLine(f.Value))
		b.WriteByte('\n')
	}
	b.WriteString(Marker)
	b.WriteString("\n\n")
	b.WriteString(chunkText)
	b.WriteByte('\n')
	return b.String()
}

// Split separates a rendered document into its metadata fields and
// body. The header ends at the first closing marker line; the body
// starts after the first blank line that follows it.
func Split(rendered string) (domain.Metadata, string, error) {
	lines := strings.Split(rendered, "\n")
	if len(lines) == 0 || lines[0] != Marker {
		return nil, "", fmt.Errorf("%w: missing opening marker", domain.ErrInvalidInput)
	}

	var meta domain.Metadata
	i := 1
	for ; i < len(lines); i++ {
		if lines[i] == Marker {
			break
		}
		key, value, found := strings.Cut(lines[i], ": ")
		if !found {
			return nil, "", fmt.Errorf("%w: malformed header line %q", domain.ErrInvalidInput, lines[i])
		}
		meta = append(meta, domain.Field{Key: key, Value: value})
	}
	if i == len(lines) {
		return nil, "", fmt.Errorf("%w: missing closing marker", domain.ErrInvalidInput)
	}

	// Skip the closing marker, then require the separating blank line.
	i++
	if i == len(lines) || lines[i] != "" {
		return nil, "", fmt.Errorf("%w: missing blank line after header", domain.ErrInvalidInput)
	}
	i++

	body := strings.Join(lines[i:], "\n")
	// Drop the single trailing newline added by Render.
	body = strings.TrimSuffix(body, "\n")

	return meta, body, nil
}

// singleLine collapses line breaks into spaces. A value with interior
// newlines would otherwise span multiple header lines and break the
// Render/Split round trip.
func singleLine(value string) string {
	value = strings.ReplaceAll(value, "\r\n", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	return value
}
