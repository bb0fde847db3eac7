package cli

import (
	"github.com/spf13/cobra"

	"github.com/veldt-labs/ragprep-cli/internal/core/ports/driven"
	"github.com/veldt-labs/ragprep-cli/internal/core/ports/driving"
	"github.com/veldt-labs/ragprep-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// verbose enables debug logging for all commands.
var verbose bool

// Services injected at startup. Commands check for nil and fail with a
// clear error rather than panic.
var (
	processorService  driving.DocumentProcessor
	extractorRegistry driven.ExtractorRegistry
	configStore       driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "ragprep",
	Short: "Prepare documents for retrieval-augmented generation",
	Long: `ragprep turns source documents (TXT, PDF, DOCX, PPTX) into
chunked, metadata-rich text artifacts ready for RAG ingestion.

Each input file is split into word-count chunks; every chunk is written
as a standalone document with a frontmatter metadata block.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// SetServices injects the core services the commands depend on.
func SetServices(processor driving.DocumentProcessor, registry driven.ExtractorRegistry, store driven.ConfigStore) {
	processorService = processor
	extractorRegistry = registry
	configStore = store
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
