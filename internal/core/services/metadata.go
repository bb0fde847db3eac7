package services

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
)

// DefaultMaxKeywords is the number of keywords emitted by the
// frequency heuristic.
const DefaultMaxKeywords = 5

// titleCasePattern matches one or more space-separated capitalized
// words with no other punctuation, e.g. "Getting Started".
var titleCasePattern = regexp.MustCompile(`^[A-Z][a-z]+( [A-Z][a-z]+)*$`)

// keywordPattern matches alphanumeric word tokens of length >= 5.
// Go's \w is ASCII-only, so words with accented or non-Latin letters
// are excluded. The heuristics target English documents and this
// crudeness is accepted; consumers needing Unicode words use the LLM
// keyword field instead.
var keywordPattern = regexp.MustCompile(`\b\w{5,}\b`)

// MetadataBuilder derives local metadata for chunks: file facts from
// the document, plus best-effort structural heuristics from the chunk
// text. Heuristic failures degrade to an omitted field, never an error.
type MetadataBuilder struct {
	maxKeywords int
	now         func() time.Time
}

// MetadataOption configures the metadata builder.
type MetadataOption func(*MetadataBuilder)

// WithMaxKeywords sets the number of keywords the frequency heuristic
// emits.
func WithMaxKeywords(n int) MetadataOption {
	return func(b *MetadataBuilder) {
		if n > 0 {
			b.maxKeywords = n
		}
	}
}

// WithClock overrides the processing timestamp source. Useful for
// testing.
func WithClock(now func() time.Time) MetadataOption {
	return func(b *MetadataBuilder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewMetadataBuilder creates a metadata builder with the given options.
func NewMetadataBuilder(opts ...MetadataOption) *MetadataBuilder {
	b := &MetadataBuilder{
		maxKeywords: DefaultMaxKeywords,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildLocal derives the local metadata layer for a chunk. The always
// present fields come from the loaded document and the chunk position;
// section_heading, keywords and first_line/last_line are heuristics
// that may legitimately produce nothing.
func (b *MetadataBuilder) BuildLocal(doc *domain.Document, chunk domain.Chunk) domain.LocalMetadata {
	meta := domain.LocalMetadata{
		FileHash:       doc.Fingerprint,
		OriginalSize:   doc.Size,
		CreatedDate:    doc.Created.Format(time.RFC3339),
		ModifiedDate:   doc.Modified.Format(time.RFC3339),
		ProcessingTime: b.now().Format(time.RFC3339),
		ChunkNumber:    chunk.Number,
		TotalChunks:    chunk.Total,
		WordCount:      chunk.WordCount(),
	}

	meta.SectionHeading = extractHeading(chunk.Text)
	meta.Keywords = extractKeywords(chunk.Text, b.maxKeywords)

	lines := nonBlankLines(chunk.Text)
	if len(lines) > 0 {
		meta.FirstLine = lines[0]
		meta.LastLine = lines[len(lines)-1]
	}

	return meta
}

// extractHeading inspects the first non-blank line of the chunk and
// returns it verbatim when it looks like a heading: entirely
// upper-case, or strict Title-Case. This is a deliberately crude
// approximation; it misfires on short capitalized sentences, and that
// is accepted behavior downstream consumers rely on.
func extractHeading(text string) string {
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return ""
	}

	first := lines[0]
	if isUpperLine(first) || titleCasePattern.MatchString(first) {
		return first
	}
	return ""
}

// isUpperLine reports whether the line contains at least one letter
// and no lower-case letters. Only ASCII letters count, matching the
// ASCII scope of the keyword heuristic; a heading in a non-Latin
// script is not detected.
func isUpperLine(line string) bool {
	hasLetter := false
	for _, r := range line {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		}
	}
	return hasLetter
}

// extractKeywords lower-cases the chunk, counts alphanumeric tokens of
// five or more characters, and returns the top max as a comma-joined
// string. Ordering is frequency descending with ties broken by first
// occurrence. Returns "" when no token qualifies.
func extractKeywords(text string, max int) string {
	tokens := keywordPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return ""
	}

	freq := make(map[string]int, len(tokens))
	var order []string
	for _, tok := range tokens {
		if freq[tok] == 0 {
			order = append(order, tok)
		}
		freq[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	if len(order) > max {
		order = order[:max]
	}
	return strings.Join(order, ", ")
}

// nonBlankLines returns the trimmed non-blank lines of the text.
func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
