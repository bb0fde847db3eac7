package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
)

func testDocument() *domain.Document {
	return &domain.Document{
		ID:          "test-id",
		Path:        "notes.txt",
		Size:        1024,
		Created:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Modified:    time.Date(2024, 6, 7, 8, 9, 10, 0, time.UTC),
		Fingerprint: "deadbeef",
	}
}

func TestBuildLocal_AlwaysPresentFields(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b := NewMetadataBuilder(WithClock(func() time.Time { return now }))

	chunk := domain.Chunk{Text: "one two three", Number: 2, Total: 5}
	meta := b.BuildLocal(testDocument(), chunk)

	assert.Equal(t, "deadbeef", meta.FileHash)
	assert.Equal(t, int64(1024), meta.OriginalSize)
	assert.Equal(t, "2024-01-02T03:04:05Z", meta.CreatedDate)
	assert.Equal(t, "2024-06-07T08:09:10Z", meta.ModifiedDate)
	assert.Equal(t, "2025-03-01T12:00:00Z", meta.ProcessingTime)
	assert.Equal(t, 2, meta.ChunkNumber)
	assert.Equal(t, 5, meta.TotalChunks)
	assert.Equal(t, 3, meta.WordCount)
}

func TestBuildLocal_FieldOrder(t *testing.T) {
	b := NewMetadataBuilder()
	chunk := domain.Chunk{Text: "INTRODUCTION\nsome content paragraph here", Number: 1, Total: 1}
	meta := b.BuildLocal(testDocument(), chunk)

	want := []string{
		domain.FieldFileHash,
		domain.FieldOriginalSize,
		domain.FieldCreatedDate,
		domain.FieldModifiedDate,
		domain.FieldProcessingTime,
		domain.FieldChunkNumber,
		domain.FieldTotalChunks,
		domain.FieldWordCount,
		domain.FieldSectionHeading,
		domain.FieldKeywords,
		domain.FieldFirstLine,
		domain.FieldLastLine,
	}
	assert.Equal(t, want, meta.Fields().Keys())
}

func TestBuildLocal_OptionalFieldsOmittedWhenEmpty(t *testing.T) {
	b := NewMetadataBuilder()
	// Lower-case words, all shorter than five characters, no lines of
	// interest beyond the text itself.
	chunk := domain.Chunk{Text: "a b c", Number: 1, Total: 1}
	meta := b.BuildLocal(testDocument(), chunk)

	keys := meta.Fields().Keys()
	assert.NotContains(t, keys, domain.FieldSectionHeading)
	assert.NotContains(t, keys, domain.FieldKeywords)
	// first_line/last_line are present because the chunk has a line.
	assert.Contains(t, keys, domain.FieldFirstLine)
}

func TestExtractHeading(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"all caps", "INTRODUCTION\nbody text", "INTRODUCTION"},
		{"all caps with digits", "SECTION 2\nbody", "SECTION 2"},
		{"title case", "Getting Started\nbody", "Getting Started"},
		{"plain sentence", "the quick fox\nbody", ""},
		{"mixed case", "Getting started\nbody", ""},
		{"leading blank lines", "\n\nOVERVIEW\nbody", "OVERVIEW"},
		{"digits only", "1234\nbody", ""},
		{"non-latin caps not detected", "ВВЕДЕНИЕ\nbody", ""},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractHeading(tc.text))
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{
			name: "frequency order with case folding",
			text: "Apple apple banana cherry cherry cherry",
			max:  2,
			want: "cherry, apple",
		},
		{
			name: "first occurrence breaks ties",
			text: "zebra yacht zebra yacht whale",
			max:  3,
			want: "zebra, yacht, whale",
		},
		{
			name: "short tokens ignored",
			text: "one two three four five",
			max:  5,
			want: "three",
		},
		{
			name: "nothing qualifies",
			text: "a bb ccc dddd",
			max:  5,
			want: "",
		},
		{
			// Accented letters fall outside \w, so only the pure ASCII
			// token qualifies.
			name: "non-ascii words excluded",
			text: "naïveté naïveté naïveté approach approach",
			max:  5,
			want: "approach",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractKeywords(tc.text, tc.max))
		})
	}
}

func TestBuildLocal_KeywordLimit(t *testing.T) {
	b := NewMetadataBuilder(WithMaxKeywords(2))
	text := "alpha1 bravo2 alpha1 charlie delta echo3"
	meta := b.BuildLocal(testDocument(), domain.Chunk{Text: text, Number: 1, Total: 1})

	parts := strings.Split(meta.Keywords, ", ")
	assert.Len(t, parts, 2)
	assert.Equal(t, "alpha1", parts[0])
}

func TestBuildLocal_FirstAndLastLine(t *testing.T) {
	b := NewMetadataBuilder()
	text := "  first line here  \n\nmiddle\n last line there \n\n"
	meta := b.BuildLocal(testDocument(), domain.Chunk{Text: text, Number: 1, Total: 1})

	assert.Equal(t, "first line here", meta.FirstLine)
	assert.Equal(t, "last line there", meta.LastLine)
}

func TestBuildLocal_SingleLineChunk(t *testing.T) {
	b := NewMetadataBuilder()
	meta := b.BuildLocal(testDocument(), domain.Chunk{Text: "only line", Number: 1, Total: 1})

	assert.Equal(t, "only line", meta.FirstLine)
	assert.Equal(t, "only line", meta.LastLine)
}
