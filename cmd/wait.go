package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/output"
)

// WaitOutput is the output of a wait command.
type WaitOutput struct {
	OK      bool                   `yaml:"ok" json:"ok"`
	Action  string                 `yaml:"action" json:"action"`
	Found   bool                   `yaml:"found" json:"found"`
	Elapsed string                 `yaml:"elapsed" json:"elapsed"`
	Element *model.DetectedElement `yaml:"element,omitempty" json:"element,omitempty"`
}

var waitCmd = &cobra.Command{
	Use:   "wait <target>",
	Short: "Wait until a target element appears",
	Long: `Poll target resolution until the element resolves or the timeout
elapses. Exhausting the timeout reports found: false, it is not an error.

Examples:
  peekaboo wait "Download complete" --timeout 30
  peekaboo wait B3 --session 8a1f... --timeout 5`,
	Args: cobra.ExactArgs(1),
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().String("session", "", "Session ID from a previous see")
	waitCmd.Flags().Int("timeout", 5, "Max seconds to wait")
}

func runWait(cmd *cobra.Command, args []string) error {
	target, err := model.ParseTarget(args[0])
	if err != nil {
		return err
	}
	sessionID, _ := cmd.Flags().GetString("session")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")

	eng, err := newEngine()
	if err != nil {
		return err
	}
	result, err := eng.WaitFor(cmd.Context(), target, time.Duration(timeoutSec)*time.Second, sessionID)
	if err != nil {
		return err
	}
	return output.Print(WaitOutput{
		OK:      true,
		Action:  "wait",
		Found:   result.Found,
		Elapsed: result.Elapsed.Round(time.Millisecond).String(),
		Element: result.Element,
	})
}
