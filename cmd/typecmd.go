package cmd

import (
	"github.com/spf13/cobra"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/output"
)

// TypeResult is the output of a type command.
type TypeResult struct {
	OK      bool                   `yaml:"ok" json:"ok"`
	Action  string                 `yaml:"action" json:"action"`
	Typed   int                    `yaml:"typed" json:"typed"`
	Element *model.DetectedElement `yaml:"element,omitempty" json:"element,omitempty"`
}

var typeCmd = &cobra.Command{
	Use:   "type <text>",
	Short: "Type text into the focused element",
	Long: `Type text. With --target, the element is clicked first so keystrokes
land in it.

Examples:
  peekaboo type "hello world"
  peekaboo type "peekaboo" --target T2 --session 8a1f...
  peekaboo type "query" --target "Search"`,
	Args: cobra.ExactArgs(1),
	RunE: runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().String("target", "", "Element to focus before typing")
	typeCmd.Flags().String("session", "", "Session ID from a previous see")
}

func runType(cmd *cobra.Command, args []string) error {
	text := args[0]
	sessionID, _ := cmd.Flags().GetString("session")

	var target *model.Target
	if raw, _ := cmd.Flags().GetString("target"); raw != "" {
		t, err := model.ParseTarget(raw)
		if err != nil {
			return err
		}
		target = &t
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}
	el, err := eng.TypeText(target, sessionID, text)
	if err != nil {
		return err
	}
	return output.Print(TypeResult{OK: true, Action: "type", Typed: len([]rune(text)), Element: el})
}
