package cmd

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/steipete/peekaboo-go/internal/engine"
	"github.com/steipete/peekaboo-go/internal/output"
)

var seeCmd = &cobra.Command{
	Use:   "see",
	Short: "Capture UI state into an element catalog",
	Long: `Walk a window's accessibility tree and build a catalog of interactive
elements with stable IDs (B1, T2, L3, ...). The catalog is stored under a
session ID; later click/type/scroll/wait calls resolve IDs against it.

Examples:
  peekaboo see
  peekaboo see --app Safari
  peekaboo see --app Safari --window "GitHub" --annotate
  peekaboo see --session 8a1f... # refresh an existing session`,
	RunE: runSee,
}

func init() {
	rootCmd.AddCommand(seeCmd)
	addWindowFlags(seeCmd)
	seeCmd.Flags().String("session", "", "Existing session ID to refresh")
	seeCmd.Flags().Bool("menubar", false, "Include the application menu bar")
	seeCmd.Flags().String("screenshot", "", "Write a screenshot to this path before detecting")
	seeCmd.Flags().Bool("annotate", false, "Write an annotated screenshot with element IDs")
}

func runSee(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	sessionID, _ := cmd.Flags().GetString("session")
	menubar, _ := cmd.Flags().GetBool("menubar")
	screenshot, _ := cmd.Flags().GetString("screenshot")
	annotate, _ := cmd.Flags().GetBool("annotate")
	windowID, _ := cmd.Flags().GetInt("window-id")

	if annotate && screenshot == "" {
		screenshot = filepath.Join(os.TempDir(), "peekaboo-"+uuid.NewString()+".png")
	}
	if screenshot != "" {
		// With a window id the capture covers only that window, which
		// keeps the annotated boxes window-relative.
		if windowID != 0 {
			if err := eng.CaptureWindow(windowID, screenshot); err != nil {
				return err
			}
		} else if err := eng.CaptureScreen(screenshot); err != nil {
			return err
		}
	}

	result, err := eng.Detect(engine.DetectOptions{
		SessionID:      sessionID,
		Window:         windowTargetFromFlags(cmd),
		IncludeMenuBar: menubar,
		Screenshot:     screenshot,
		Annotate:       annotate,
		WindowCapture:  windowID != 0,
	})
	if err != nil {
		return err
	}
	return output.Print(result)
}
