package cmd

import (
	"github.com/spf13/cobra"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/output"
	"github.com/steipete/peekaboo-go/internal/platform"
)

// ClickResult is the output of a click command.
type ClickResult struct {
	OK      bool                   `yaml:"ok" json:"ok"`
	Action  string                 `yaml:"action" json:"action"`
	Element *model.DetectedElement `yaml:"element,omitempty" json:"element,omitempty"`
	X       int                    `yaml:"x" json:"x"`
	Y       int                    `yaml:"y" json:"y"`
}

var clickCmd = &cobra.Command{
	Use:   "click <target>",
	Short: "Click a UI element",
	Long: `Click an element by catalog ID, text query, or screen coordinates.

Examples:
  peekaboo click B3 --session 8a1f...
  peekaboo click "Sign In"
  peekaboo click 100,200
  peekaboo click B3 --session 8a1f... --button right`,
	Args: cobra.ExactArgs(1),
	RunE: runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().String("session", "", "Session ID from a previous see")
	clickCmd.Flags().String("button", "left", "Mouse button: left, right, middle")
	clickCmd.Flags().Bool("double", false, "Double-click")
	clickCmd.Flags().Bool("exact", false, "Match text queries exactly instead of by substring")
}

func runClick(cmd *cobra.Command, args []string) error {
	target, err := model.ParseTarget(args[0])
	if err != nil {
		return err
	}
	buttonStr, _ := cmd.Flags().GetString("button")
	button, err := platform.ParseMouseButton(buttonStr)
	if err != nil {
		return err
	}
	double, _ := cmd.Flags().GetBool("double")
	clickCount := 1
	if double {
		clickCount = 2
	}
	sessionID, _ := cmd.Flags().GetString("session")
	exact, _ := cmd.Flags().GetBool("exact")

	eng, err := newEngine()
	if err != nil {
		return err
	}
	el, p, err := eng.Click(target, sessionID, button, clickCount, exact)
	if err != nil {
		return err
	}
	return output.Print(ClickResult{OK: true, Action: "click", Element: el, X: p.X, Y: p.Y})
}
