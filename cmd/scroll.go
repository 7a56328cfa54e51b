package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/output"
)

// ScrollResult is the output of a scroll command.
type ScrollResult struct {
	OK     bool   `yaml:"ok" json:"ok"`
	Action string `yaml:"action" json:"action"`
	X      int    `yaml:"x" json:"x"`
	Y      int    `yaml:"y" json:"y"`
}

var scrollCmd = &cobra.Command{
	Use:   "scroll <target>",
	Short: "Scroll at a UI element or point",
	Long: `Scroll at the resolved point of an element or at coordinates.

Examples:
  peekaboo scroll G2 --session 8a1f... --direction down
  peekaboo scroll 500,400 --direction up --amount 10`,
	Args: cobra.ExactArgs(1),
	RunE: runScroll,
}

func init() {
	rootCmd.AddCommand(scrollCmd)
	scrollCmd.Flags().String("session", "", "Session ID from a previous see")
	scrollCmd.Flags().String("direction", "down", "Scroll direction: up, down, left, right")
	scrollCmd.Flags().Int("amount", 3, "Scroll ticks")
}

func runScroll(cmd *cobra.Command, args []string) error {
	target, err := model.ParseTarget(args[0])
	if err != nil {
		return err
	}
	sessionID, _ := cmd.Flags().GetString("session")
	direction, _ := cmd.Flags().GetString("direction")
	amount, _ := cmd.Flags().GetInt("amount")

	var dx, dy int
	switch direction {
	case "up":
		dy = amount
	case "down":
		dy = -amount
	case "left":
		dx = amount
	case "right":
		dx = -amount
	default:
		return fmt.Errorf("unknown direction: %s (use up, down, left, or right)", direction)
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}
	p, err := eng.Scroll(target, sessionID, dx, dy)
	if err != nil {
		return err
	}
	return output.Print(ScrollResult{OK: true, Action: "scroll", X: p.X, Y: p.Y})
}
