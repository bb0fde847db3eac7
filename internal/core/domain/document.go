package domain

import (
	"strings"
	"time"
)

// Document is a source file loaded for processing.
// The raw bytes are read exactly once at load time; the value is
// immutable afterwards and discarded when the pipeline completes.
type Document struct {
	// ID is the unique identifier assigned at load time.
	ID string

	// Path is the source file location.
	Path string

	// Content is the raw file bytes.
	Content []byte

	// Size is the byte size of the source file.
	Size int64

	// Created is the file creation (birth) timestamp where the
	// platform records one; zero otherwise.
	Created time.Time

	// Modified is the file modification timestamp.
	Modified time.Time

	// Fingerprint is the hex-encoded cryptographic hash of Content.
	// Identical bytes always produce an identical fingerprint.
	Fingerprint string
}

// Chunk is an ordered, word-aligned segment of a document's extracted
// text. Concatenating all chunks of a document in order, re-inserting
// the whitespace trimmed at each boundary, reproduces the original
// word sequence.
type Chunk struct {
	// Text is the chunk content, trimmed of leading and trailing
	// whitespace. Inter-word whitespace is preserved verbatim.
	Text string

	// Number is the 1-based position within the document.
	Number int

	// Total is the total chunk count for the document.
	Total int
}

// WordCount returns the number of whitespace-separated words in the chunk.
func (c Chunk) WordCount() int {
	return len(strings.Fields(c.Text))
}

// RenderedDocument is the final output unit: one rendered artifact per
// chunk, a pure function of the chunk and its metadata.
type RenderedDocument struct {
	// Filename is the deterministic artifact name,
	// "{original-file-stem}_chunk{N}.txt".
	Filename string

	// Content is the frontmatter header followed by the chunk body.
	Content string
}
