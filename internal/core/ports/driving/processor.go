package driving

import (
	"context"

	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
)

// ProcessOptions configures a processing run.
type ProcessOptions struct {
	// InputDir is scanned non-recursively for supported files.
	// Optional when staged files are provided.
	InputDir string

	// StagedFiles are explicitly provided files, merged with the
	// input directory scan and deduplicated.
	StagedFiles []string

	// OutputDir receives one rendered document per chunk.
	OutputDir string

	// ChunkSize is the number of words per chunk. Must lie within the
	// configured window (50..2000).
	ChunkSize int

	// Enrich enables LLM metadata enrichment when an enricher is
	// configured.
	Enrich bool

	// MaxKeywords overrides the number of derived keywords per chunk.
	// Zero keeps the processor's default.
	MaxKeywords int
}

// DocumentProcessor runs the preparation pipeline over files.
type DocumentProcessor interface {
	// ProcessBatch processes every supported file from the options'
	// input surface. The batch always completes; per-file failures
	// are collected in the report. The returned error covers only
	// setup failures such as an unusable output directory.
	ProcessBatch(ctx context.Context, opts ProcessOptions) (*domain.BatchReport, error)

	// ProcessFile processes a single file into opts.OutputDir.
	ProcessFile(ctx context.Context, path string, opts ProcessOptions) domain.FileResult
}
