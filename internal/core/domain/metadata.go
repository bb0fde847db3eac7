package domain

import "strconv"

// Metadata field names. Local and enriched layers use disjoint names;
// the merge rule below still defines precedence should that change.
const (
	FieldFileHash       = "file_hash"
	FieldOriginalSize   = "original_size"
	FieldCreatedDate    = "created_date"
	FieldModifiedDate   = "modified_date"
	FieldProcessingTime = "processing_time"
	FieldChunkNumber    = "chunk_number"
	FieldTotalChunks    = "total_chunks"
	FieldWordCount      = "word_count"
	FieldSectionHeading = "section_heading"
	FieldKeywords       = "keywords"
	FieldFirstLine      = "first_line"
	FieldLastLine       = "last_line"

	FieldLLMSummary  = "llm_summary"
	FieldLLMKeywords = "llm_keywords"
	FieldLLMSection  = "llm_section"
)

// Field is a single metadata entry. Values are scalars or short strings
// already formatted for output.
type Field struct {
	Key   string
	Value string
}

// Metadata is an ordered collection of fields. Order is insertion
// order and is preserved through rendering.
type Metadata []Field

// Get returns the value for key and whether it is present.
func (m Metadata) Get(key string) (string, bool) {
	for _, f := range m {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Set replaces the value of an existing field in place, or appends a
// new field when the key is absent. The returned slice must be used.
func (m Metadata) Set(key, value string) Metadata {
	for i, f := range m {
		if f.Key == key {
			m[i].Value = value
			return m
		}
	}
	return append(m, Field{Key: key, Value: value})
}

// Keys returns the field names in order.
func (m Metadata) Keys() []string {
	keys := make([]string, len(m))
	for i, f := range m {
		keys[i] = f.Key
	}
	return keys
}

// LocalMetadata holds the fields derivable purely from file and text
// inspection, without any external service. The first eight fields are
// always present; the rest are best-effort heuristics and are omitted
// from output when empty.
type LocalMetadata struct {
	FileHash       string
	OriginalSize   int64
	CreatedDate    string
	ModifiedDate   string
	ProcessingTime string
	ChunkNumber    int
	TotalChunks    int
	WordCount      int
	SectionHeading string
	Keywords       string
	FirstLine      string
	LastLine       string
}

// Fields returns the local layer as ordered metadata. Optional fields
// with empty values are skipped.
func (l LocalMetadata) Fields() Metadata {
	m := Metadata{
		{FieldFileHash, l.FileHash},
		{FieldOriginalSize, strconv.FormatInt(l.OriginalSize, 10)},
		{FieldCreatedDate, l.CreatedDate},
		{FieldModifiedDate, l.ModifiedDate},
		{FieldProcessingTime, l.ProcessingTime},
		{FieldChunkNumber, strconv.Itoa(l.ChunkNumber)},
		{FieldTotalChunks, strconv.Itoa(l.TotalChunks)},
		{FieldWordCount, strconv.Itoa(l.WordCount)},
	}
	if l.SectionHeading != "" {
		m = append(m, Field{FieldSectionHeading, l.SectionHeading})
	}
	if l.Keywords != "" {
		m = append(m, Field{FieldKeywords, l.Keywords})
	}
	if l.FirstLine != "" {
		m = append(m, Field{FieldFirstLine, l.FirstLine})
	}
	if l.LastLine != "" {
		m = append(m, Field{FieldLastLine, l.LastLine})
	}
	return m
}

// EnrichedMetadata holds the fields obtained from the external language
// model service. A failed request leaves a descriptive error string in
// the corresponding field rather than aborting the chunk.
type EnrichedMetadata struct {
	Summary  string
	Keywords string
	Section  string
}

// Fields returns the enriched layer as ordered metadata.
func (e EnrichedMetadata) Fields() Metadata {
	return Metadata{
		{FieldLLMSummary, e.Summary},
		{FieldLLMKeywords, e.Keywords},
		{FieldLLMSection, e.Section},
	}
}

// MergeMetadata combines the two layers into one ordered collection.
// Local fields come first, in declaration order; enriched fields are
// applied afterwards and overwrite a same-named local field in place.
// The layers currently use disjoint names, so in practice the merge is
// append-only, but enriched-wins is the documented precedence rule.
func MergeMetadata(local LocalMetadata, enriched *EnrichedMetadata) Metadata {
	m := local.Fields()
	if enriched == nil {
		return m
	}
	for _, f := range enriched.Fields() {
		m = m.Set(f.Key, f.Value)
	}
	return m
}
