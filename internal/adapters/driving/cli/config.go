package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application configuration",
	Long: `View and change persistent configuration.

Recognized keys include:
  chunk_size        default chunk size in words
  max_keywords      number of keywords derived per chunk
  enrichment.model  LLM model used for enrichment
  enrichment.rate   enrichment requests per second
  api_key           Perplexity API key (prefer the PPLX_API_KEY env var)`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	val, ok := configStore.Get(key)
	if !ok {
		cmd.Printf("%s: (not set)\n", key)
		return nil
	}

	if isSecretKey(key) {
		if s, ok := val.(string); ok {
			cmd.Printf("%s: %s\n", key, maskAPIKey(s))
			return nil
		}
	}
	cmd.Printf("%s: %v\n", key, val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if err := configStore.Set(key, parseValue(raw)); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if isSecretKey(key) {
		cmd.Printf("Set %s\n", key)
	} else {
		cmd.Printf("Set %s = %s\n", key, raw)
	}
	return nil
}

// parseValue interprets the raw string as bool, int or float when it
// parses cleanly, falling back to the string itself.
func parseValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// isSecretKey reports whether a key holds a credential that must not
// be echoed in full.
func isSecretKey(key string) bool {
	return strings.Contains(strings.ToLower(key), "api_key")
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
