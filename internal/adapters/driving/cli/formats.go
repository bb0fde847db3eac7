package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported input formats",
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, _ []string) error {
	if extractorRegistry == nil {
		return errors.New("extractor registry not configured")
	}

	cmd.Println("Supported input formats:")
	for _, ext := range extractorRegistry.Extensions() {
		cmd.Printf("  %s\n", ext)
	}
	return nil
}
