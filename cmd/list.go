package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List on-screen windows",
	Long: `List windows from the OS window server with owner, title, bounds, and
the persistent window ID usable with --window-id.

Examples:
  peekaboo list
  peekaboo list --app Safari`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("app", "", "Filter by owning application name")
}

func runList(cmd *cobra.Command, args []string) error {
	appFilter, _ := cmd.Flags().GetString("app")

	eng, err := newEngine()
	if err != nil {
		return err
	}
	infos, err := eng.ListWindows()
	if err != nil {
		return err
	}
	if appFilter != "" {
		filtered := make([]model.WindowInfo, 0, len(infos))
		for _, info := range infos {
			if strings.EqualFold(info.App, appFilter) {
				filtered = append(filtered, info)
			}
		}
		infos = filtered
	}
	return output.Print(infos)
}
