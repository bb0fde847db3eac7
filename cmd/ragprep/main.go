// Command ragprep prepares documents for retrieval-augmented
// generation: it extracts text, chunks it by word count, derives
// metadata and writes one frontmatter artifact per chunk.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/veldt-labs/ragprep-cli/internal/adapters/driven/config/file"
	"github.com/veldt-labs/ragprep-cli/internal/adapters/driven/enricher/perplexity"
	"github.com/veldt-labs/ragprep-cli/internal/adapters/driving/cli"
	"github.com/veldt-labs/ragprep-cli/internal/core/services"
	"github.com/veldt-labs/ragprep-cli/internal/extractors"
	"github.com/veldt-labs/ragprep-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A local .env is optional; explicit environment wins.
	_ = godotenv.Load()

	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initializing config store: %w", err)
	}

	registry := extractors.Defaults()

	// Keyword limit overrides arrive per run via the CLI.
	builder := services.NewMetadataBuilder()

	pipelineOpts := []services.PipelineOption{}
	if apiKey := resolveAPIKey(store); apiKey != "" {
		cfg := perplexity.Config{APIKey: apiKey}
		if model := store.GetString("enrichment.model"); model != "" {
			cfg.Model = model
		}
		enricher, err := perplexity.New(cfg)
		if err != nil {
			return fmt.Errorf("initializing enricher: %w", err)
		}
		pipelineOpts = append(pipelineOpts, services.WithEnricher(enricher))
		if rate := store.GetFloat("enrichment.rate"); rate > 0 {
			pipelineOpts = append(pipelineOpts, services.WithEnrichmentRate(rate))
		}
		logger.Debug("enrichment enabled with model %s", enricher.ModelName())
	}

	pipeline := services.NewPipeline(registry, builder, pipelineOpts...)

	cli.SetVersion(version)
	cli.SetServices(pipeline, registry, store)
	return cli.Execute()
}

// resolveAPIKey prefers the environment over the config file. The key
// value itself is never logged.
func resolveAPIKey(store *file.ConfigStore) string {
	if key := os.Getenv("PPLX_API_KEY"); key != "" {
		return key
	}
	return store.GetString("api_key")
}
