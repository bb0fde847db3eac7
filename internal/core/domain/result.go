package domain

import "fmt"

// Stage identifies the pipeline stage where a failure occurred.
// Failures are isolated at the smallest unit that can continue: the
// file for extraction, chunking and metadata; the field for enrichment
// (which never surfaces here at all).
type Stage string

const (
	// StageExtraction covers unsupported formats and extractor failures.
	StageExtraction Stage = "extraction"

	// StageChunking covers chunker failures. These should not occur for
	// well-formed text but are still isolated per file.
	StageChunking Stage = "chunking"

	// StageMetadata covers local metadata derivation failures, such as
	// unreadable file stats. Fatal for the file's remaining chunks.
	StageMetadata Stage = "metadata"

	// StageOutput covers artifact write failures.
	StageOutput Stage = "output"
)

// StageError is a failure tagged with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *StageError) Unwrap() error {
	return e.Err
}

// FileResult is the outcome of processing a single source file.
// A failed file carries its stage-tagged error; the batch continues
// regardless.
type FileResult struct {
	// Path is the source file.
	Path string

	// Chunks is the number of chunks produced.
	Chunks int

	// Artifacts lists the rendered document filenames written.
	Artifacts []string

	// Err is non-nil when the file failed and was skipped.
	Err *StageError
}

// OK reports whether the file was processed successfully.
func (r FileResult) OK() bool {
	return r.Err == nil
}

// BatchReport aggregates per-file outcomes for a whole run.
// The batch always completes; failures are reported, not raised.
type BatchReport struct {
	// Results holds one entry per attempted file, in processing order.
	Results []FileResult
}

// Attempted returns the number of files the batch tried to process.
func (b *BatchReport) Attempted() int {
	return len(b.Results)
}

// Succeeded returns the number of files processed without error.
func (b *BatchReport) Succeeded() int {
	n := 0
	for _, r := range b.Results {
		if r.OK() {
			n++
		}
	}
	return n
}

// Artifacts returns the rendered document filenames written across
// the whole batch, in processing order.
func (b *BatchReport) Artifacts() []string {
	var names []string
	for _, r := range b.Results {
		names = append(names, r.Artifacts...)
	}
	return names
}

// Failed returns the results for files that were skipped with an error.
func (b *BatchReport) Failed() []FileResult {
	var failed []FileResult
	for _, r := range b.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}
