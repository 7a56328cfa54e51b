package cmd

import (
	"github.com/spf13/cobra"

	"github.com/steipete/peekaboo-go/internal/output"
)

var dialogCmd = &cobra.Command{
	Use:   "dialog",
	Short: "Find the active dialog or sheet",
	Long: `Search the focus chain, the frontmost app, all running apps, and the
OS window list for a dialog-like window. With --title, only a dialog with
that exact title matches; a recovery pass focuses the likeliest owner and
retries once.

Examples:
  peekaboo dialog
  peekaboo dialog --title "Save"`,
	RunE: runDialog,
}

func init() {
	rootCmd.AddCommand(dialogCmd)
	dialogCmd.Flags().String("title", "", "Exact dialog title")
}

func runDialog(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")

	eng, err := newEngine()
	if err != nil {
		return err
	}
	info, err := eng.LocateDialog(title)
	if err != nil {
		return err
	}
	return output.Print(info)
}
