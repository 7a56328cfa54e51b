package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steipete/peekaboo-go/internal/output"
	"github.com/steipete/peekaboo-go/internal/platform"
	"github.com/steipete/peekaboo-go/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "peekaboo",
	Short: "See and drive desktop UI elements",
	Long: "A CLI tool that lets AI agents capture UI state into element catalogs\n" +
		"and act on the elements by ID, text query, or coordinates.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if platform.RequestPermissionsFunc != nil {
			platform.RequestPermissionsFunc()
		}

		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, err := rootCmd.PersistentFlags().GetBool("pretty"); err == nil {
			output.PrettyOutput = pretty
		}
		return nil
	}
}
