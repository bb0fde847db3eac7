package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"github.com/veldt-labs/ragprep-cli/internal/chunker"
	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
	"github.com/veldt-labs/ragprep-cli/internal/core/ports/driven"
	"github.com/veldt-labs/ragprep-cli/internal/core/ports/driving"
	"github.com/veldt-labs/ragprep-cli/internal/frontmatter"
	"github.com/veldt-labs/ragprep-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.DocumentProcessor = (*Pipeline)(nil)

// Pipeline sequences extraction, chunking, metadata derivation,
// optional enrichment and rendering for each file, strictly in order
// per chunk. Errors are isolated at the smallest unit that can
// continue: the file for extraction, chunking and metadata; the field
// for enrichment. A batch always completes.
type Pipeline struct {
	registry driven.ExtractorRegistry
	builder  *MetadataBuilder
	enricher driven.MetadataEnricher
	limiter  *rate.Limiter
}

// PipelineOption configures the pipeline.
type PipelineOption func(*Pipeline)

// WithEnricher attaches a metadata enrichment service. Without one,
// a batch requesting enrichment is rejected at setup with
// domain.ErrEnricherUnavailable.
func WithEnricher(e driven.MetadataEnricher) PipelineOption {
	return func(p *Pipeline) {
		p.enricher = e
	}
}

// WithEnrichmentRate throttles enrichment to roughly the given number
// of chunk enrichments per second. The enricher contract itself
// carries no rate policy; throttling is an orchestrator concern.
func WithEnrichmentRate(perSecond float64) PipelineOption {
	return func(p *Pipeline) {
		if perSecond > 0 {
			p.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewPipeline creates a pipeline over the given extractor registry and
// metadata builder.
func NewPipeline(registry driven.ExtractorRegistry, builder *MetadataBuilder, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		registry: registry,
		builder:  builder,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessBatch processes every supported file from the input directory
// merged with the staged files. Per-file failures are recorded in the
// report and logged as warnings; the batch never aborts early.
func (p *Pipeline) ProcessBatch(ctx context.Context, opts driving.ProcessOptions) (*domain.BatchReport, error) {
	if err := chunker.ValidateSize(opts.ChunkSize); err != nil {
		return nil, err
	}
	if opts.Enrich && p.enricher == nil {
		return nil, fmt.Errorf("%w: set an API key to enable enrichment", domain.ErrEnricherUnavailable)
	}
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("%w: output directory is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files, err := p.collectFiles(opts)
	if err != nil {
		return nil, err
	}

	report := &domain.BatchReport{}
	for _, path := range files {
		logger.Info("processing %s", path)
		result := p.ProcessFile(ctx, path, opts)
		if !result.OK() {
			logger.Warn("skipping %s: %v", path, result.Err)
		} else {
			logger.Info("wrote %d chunks for %s", result.Chunks, path)
		}
		report.Results = append(report.Results, result)
	}

	return report, nil
}

// ProcessFile runs the full pipeline for one file and writes one
// rendered document per chunk into opts.OutputDir.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts driving.ProcessOptions) domain.FileResult {
	result := domain.FileResult{Path: path}

	extractor, err := p.registry.ForPath(path)
	if err != nil {
		result.Err = &domain.StageError{Stage: domain.StageExtraction, Err: err}
		return result
	}

	doc, err := LoadDocument(path)
	if err != nil {
		result.Err = &domain.StageError{Stage: domain.StageMetadata, Err: err}
		return result
	}

	text, err := extractor.Extract(ctx, doc)
	if err != nil {
		result.Err = &domain.StageError{Stage: domain.StageExtraction, Err: err}
		return result
	}

	texts, err := chunker.Split(text, opts.ChunkSize)
	if err != nil {
		result.Err = &domain.StageError{Stage: domain.StageChunking, Err: err}
		return result
	}

	builder := p.builder
	if opts.MaxKeywords > 0 {
		builder = NewMetadataBuilder(WithMaxKeywords(opts.MaxKeywords), WithClock(p.builder.now))
	}

	total := len(texts)
	for i, chunkText := range texts {
		chunk := domain.Chunk{Text: chunkText, Number: i + 1, Total: total}

		local := builder.BuildLocal(doc, chunk)

		var enriched *domain.EnrichedMetadata
		if opts.Enrich && p.enricher != nil {
			enriched = p.enrich(ctx, chunk.Text, text)
		}

		rendered := renderChunk(path, chunk, domain.MergeMetadata(local, enriched))
		target := filepath.Join(opts.OutputDir, rendered.Filename)
		if err := os.WriteFile(target, []byte(rendered.Content), 0o644); err != nil {
			result.Err = &domain.StageError{Stage: domain.StageOutput, Err: err}
			return result
		}

		result.Chunks++
		result.Artifacts = append(result.Artifacts, rendered.Filename)
		logger.Debug("wrote %s", target)
	}

	return result
}

// enrich calls the enrichment service for one chunk, honoring the
// configured rate limit. A limiter failure (cancelled context) is
// embedded the same way a provider failure would be, so the artifact
// still records why enrichment is missing.
func (p *Pipeline) enrich(ctx context.Context, chunkText, fullText string) *domain.EnrichedMetadata {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			msg := fmt.Sprintf("[enrichment error: %v]", err)
			return &domain.EnrichedMetadata{Summary: msg, Keywords: msg, Section: msg}
		}
	}
	meta := p.enricher.Enrich(ctx, chunkText, fullText)
	return &meta
}

// renderChunk produces the rendered document for a chunk, named
// deterministically as {stem}_chunk{N}.txt.
func renderChunk(path string, chunk domain.Chunk, meta domain.Metadata) domain.RenderedDocument {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return domain.RenderedDocument{
		Filename: fmt.Sprintf("%s_chunk%d.txt", stem, chunk.Number),
		Content:  frontmatter.Render(chunk.Text, meta),
	}
}

// collectFiles merges the non-recursive input directory scan with the
// staged files, deduplicating by absolute path. Scanned files keep
// directory order; staged files follow in the order given. Staged
// files are included regardless of extension so that an unsupported
// staged file surfaces as a per-file warning rather than vanishing.
func (p *Pipeline) collectFiles(opts driving.ProcessOptions) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		files = append(files, path)
	}

	if opts.InputDir != "" {
		entries, err := os.ReadDir(opts.InputDir)
		if err != nil {
			return nil, fmt.Errorf("scanning input directory: %w", err)
		}
		supported := make(map[string]bool)
		for _, ext := range p.registry.Extensions() {
			supported[ext] = true
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if !supported[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}
			add(filepath.Join(opts.InputDir, entry.Name()))
		}
	}

	for _, staged := range opts.StagedFiles {
		add(staged)
	}

	return files, nil
}
