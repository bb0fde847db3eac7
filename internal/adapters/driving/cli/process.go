package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/veldt-labs/ragprep-cli/internal/chunker"
	"github.com/veldt-labs/ragprep-cli/internal/core/domain"
	"github.com/veldt-labs/ragprep-cli/internal/core/ports/driving"
	"github.com/veldt-labs/ragprep-cli/internal/logger"
	"github.com/veldt-labs/ragprep-cli/internal/watcher"
)

var processCmd = &cobra.Command{
	Use:   "process [file...]",
	Short: "Process documents into chunked artifacts",
	Long: `Process documents from the input directory, plus any files given
as arguments, into chunked text artifacts in the output directory.

Each artifact is named {stem}_chunk{N}.txt and carries a frontmatter
block with file facts, chunk position and derived metadata. With
--enrich, an LLM adds a summary, keywords and a section guess per
chunk. With --watch, the input directory is monitored and new files
are processed as they arrive.`,
	RunE: runProcess,
}

// Process command flags.
var (
	processInput       string
	processOutput      string
	processChunkSize   int
	processEnrich      bool
	processWatch       bool
	processMaxKeywords int
)

func init() {
	processCmd.Flags().StringVarP(&processInput, "input", "i", "", "Input directory to scan (non-recursive)")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Output directory for chunk artifacts (required)")
	processCmd.Flags().IntVarP(&processChunkSize, "chunk-size", "c", 0, "Chunk size in words (default from config, else 500)")
	processCmd.Flags().BoolVar(&processEnrich, "enrich", false, "Enrich chunk metadata via the configured LLM provider")
	processCmd.Flags().BoolVarP(&processWatch, "watch", "w", false, "Keep watching the input directory for new files")
	processCmd.Flags().IntVar(&processMaxKeywords, "max-keywords", 0, "Keywords derived per chunk (default from config, else 5)")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if processorService == nil {
		return errors.New("processor service not configured")
	}
	if processInput == "" && len(args) == 0 {
		return errors.New("nothing to process: provide --input or file arguments")
	}
	if processOutput == "" {
		return errors.New("--output is required")
	}
	if processWatch && processInput == "" {
		return errors.New("--watch requires --input")
	}

	opts := driving.ProcessOptions{
		InputDir:    processInput,
		StagedFiles: args,
		OutputDir:   processOutput,
		ChunkSize:   resolveChunkSize(processChunkSize),
		Enrich:      processEnrich,
		MaxKeywords: resolveMaxKeywords(processMaxKeywords),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := processorService.ProcessBatch(ctx, opts)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}
	printReport(cmd, report)

	if !processWatch {
		if report.Succeeded() < report.Attempted() {
			return fmt.Errorf("%d of %d files failed", report.Attempted()-report.Succeeded(), report.Attempted())
		}
		return nil
	}

	return watchAndProcess(ctx, cmd, opts)
}

// watchAndProcess keeps processing files as they appear in the input
// directory until interrupted.
func watchAndProcess(ctx context.Context, cmd *cobra.Command, opts driving.ProcessOptions) error {
	if extractorRegistry == nil {
		return errors.New("extractor registry not configured")
	}

	w := watcher.New(opts.InputDir, extractorRegistry.Extensions(), func(path string) {
		result := processorService.ProcessFile(ctx, path, opts)
		if result.OK() {
			cmd.Printf("Processed %s: %d chunks\n", path, result.Chunks)
		} else {
			logger.Warn("failed to process %s: %v", path, result.Err)
		}
	})

	cmd.Printf("Watching %s for new documents. Press Ctrl+C to stop.\n", opts.InputDir)
	return w.Run(ctx)
}

// resolveChunkSize picks the chunk size from the flag, then the config
// store, then the built-in default.
func resolveChunkSize(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if configStore != nil {
		if size := configStore.GetInt("chunk_size"); size > 0 {
			return size
		}
	}
	return chunker.DefaultChunkSize
}

// resolveMaxKeywords picks the keyword limit from the flag, then the
// config store. Zero defers to the processor's default.
func resolveMaxKeywords(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if configStore != nil {
		if n := configStore.GetInt("max_keywords"); n > 0 {
			return n
		}
	}
	return 0
}

// printReport writes the batch summary and any per-file failures.
func printReport(cmd *cobra.Command, report *domain.BatchReport) {
	cmd.Printf("Processed %d of %d files, %d artifacts written\n",
		report.Succeeded(), report.Attempted(), len(report.Artifacts()))

	for _, failed := range report.Failed() {
		cmd.Printf("  failed: %s (%v)\n", failed.Path, failed.Err)
	}
}
