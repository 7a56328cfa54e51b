package cmd

import (
	"github.com/spf13/cobra"

	"github.com/steipete/peekaboo-go/internal/output"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Locate a window",
	Long: `Resolve a window by app name, title, index, or system window ID and
print its title, role, and bounds.

Examples:
  peekaboo window
  peekaboo window --app Safari
  peekaboo window --app Safari --index 1
  peekaboo window --window-id 4182
  peekaboo window --app TextEdit --focus`,
	RunE: runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)
	addWindowFlags(windowCmd)
	windowCmd.Flags().Bool("focus", false, "Bring the window's application forward")
}

func runWindow(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	target := windowTargetFromFlags(cmd)
	if focus, _ := cmd.Flags().GetBool("focus"); focus {
		if err := eng.Focus(target); err != nil {
			return err
		}
	}

	desc, err := eng.LocateWindow(target)
	if err != nil {
		return err
	}
	return output.Print(desc)
}
