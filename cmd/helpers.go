package cmd

import (
	"github.com/spf13/cobra"

	"github.com/steipete/peekaboo-go/internal/engine"
	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/platform"
)

// newEngine creates the engine over the current platform's provider.
func newEngine() (*engine.Engine, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	return engine.New(provider), nil
}

// addWindowFlags registers the window targeting flags shared by commands
// that scope to a window.
func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().String("app", "", "Application name (fuzzy matched)")
	cmd.Flags().String("window", "", "Window title substring")
	cmd.Flags().Int("index", -1, "Window index within the app (requires --app)")
	cmd.Flags().Int("window-id", 0, "System window ID")
}

// windowTargetFromFlags builds the window target from the shared flags.
// Precedence: --window-id, then --app combinations, then frontmost.
func windowTargetFromFlags(cmd *cobra.Command) model.WindowTarget {
	app, _ := cmd.Flags().GetString("app")
	title, _ := cmd.Flags().GetString("window")
	index, _ := cmd.Flags().GetInt("index")
	windowID, _ := cmd.Flags().GetInt("window-id")

	switch {
	case windowID != 0:
		return model.WindowByID(windowID)
	case app != "" && index >= 0:
		return model.IndexedWindow(app, index)
	case app != "" && title != "":
		return model.AppTitledWindow(app, title)
	case app != "":
		return model.AppWindow(app)
	case title != "":
		return model.TitledWindow(title)
	default:
		return model.FrontmostWindow()
	}
}
