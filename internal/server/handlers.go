package server

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/steipete/peekaboo-go/internal/engine"
	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/output"
	"github.com/steipete/peekaboo-go/internal/platform"
)

// stringParam extracts a string parameter with a default.
func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

// intParam extracts an int parameter with a default. JSON numbers arrive
// as float64.
func intParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key].(float64); ok {
		return int(v)
	}
	return def
}

// boolParam extracts a bool parameter with a default.
func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

// windowTargetFromParams builds the window target shared by see and
// window. Precedence: window-id, then app+title combinations, then
// frontmost.
func windowTargetFromParams(params map[string]interface{}) model.WindowTarget {
	app := stringParam(params, "app", "")
	title := stringParam(params, "title", stringParam(params, "window", ""))
	index := intParam(params, "index", -1)
	windowID := intParam(params, "window-id", 0)

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

func (s *Server) handleSee(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	opts := engine.DetectOptions{
		SessionID:      stringParam(params, "session", ""),
		Window:         windowTargetFromParams(params),
		IncludeMenuBar: boolParam(params, "menubar", false),
	}
	if boolParam(params, "annotate", false) {
		opts.Screenshot = filepath.Join(os.TempDir(), "peekaboo-"+uuid.NewString()+".png")
		opts.Annotate = true
	}

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	if opts.Screenshot != "" {
		var cerr error
		if windowID := intParam(params, "window-id", 0); windowID != 0 {
			cerr = s.engine.CaptureWindow(windowID, opts.Screenshot)
			opts.WindowCapture = true
		} else {
			cerr = s.engine.CaptureScreen(opts.Screenshot)
		}
		if cerr != nil {
			// Detection is still useful without pixels.
			opts.Screenshot = ""
			opts.Annotate = false
			opts.WindowCapture = false
		}
	}

	result, err := s.engine.Detect(opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(output.Marshal(result)), nil
}

func (s *Server) handleClick(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	target, err := model.ParseTarget(stringParam(params, "target", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	button, err := platform.ParseMouseButton(stringParam(params, "button", "left"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	clickCount := 1
	if boolParam(params, "double", false) {
		clickCount = 2
	}

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	el, p, err := s.engine.Click(target, stringParam(params, "session", ""), button, clickCount, boolParam(params, "exact", false))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(output.Marshal(clickResult{
		OK:      true,
		Action:  "click",
		Element: el,
		X:       p.X,
		Y:       p.Y,
	})), nil
}

func (s *Server) handleType(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	text := stringParam(params, "text", "")

	var target *model.Target
	if raw := stringParam(params, "target", ""); raw != "" {
		t, err := model.ParseTarget(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		target = &t
	}

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	el, err := s.engine.TypeText(target, stringParam(params, "session", ""), text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(output.Marshal(typeResult{
		OK:      true,
		Action:  "type",
		Typed:   len([]rune(text)),
		Element: el,
	})), nil
}

func (s *Server) handleScroll(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	target, err := model.ParseTarget(stringParam(params, "target", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	amount := intParam(params, "amount", 3)
	var dx, dy int
	switch stringParam(params, "direction", "") {
	case "up":
		dy = amount
	case "down":
		dy = -amount
	case "left":
		dx = amount
	case "right":
		dx = -amount
	default:
		return mcp.NewToolResultError("direction must be one of: up, down, left, right"), nil
	}

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	p, err := s.engine.Scroll(target, stringParam(params, "session", ""), dx, dy)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(output.Marshal(scrollResult{
		OK:     true,
		Action: "scroll",
		X:      p.X,
		Y:      p.Y,
	})), nil
}

func (s *Server) handleWait(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	target, err := model.ParseTarget(stringParam(params, "target", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timeout := defaultWaitTimeout
	if secs := intParam(params, "timeout", 0); secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	result, err := s.engine.WaitFor(ctx, target, timeout, stringParam(params, "session", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(output.Marshal(result)), nil
}

func (s *Server) handleWindow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	desc, err := s.engine.LocateWindow(windowTargetFromParams(params))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(output.Marshal(desc)), nil
}

func (s *Server) handleDialog(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	info, err := s.engine.LocateDialog(stringParam(params, "title", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(output.Marshal(info)), nil
}

func (s *Server) handleList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	infos, err := s.engine.ListWindows()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(output.Marshal(infos)), nil
}

func (s *Server) handleFocus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	if err := s.engine.Focus(windowTargetFromParams(params)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(output.Marshal(focusResult{OK: true, Action: "focus"})), nil
}

type clickResult struct {
	OK      bool                   `yaml:"ok" json:"ok"`
	Action  string                 `yaml:"action" json:"action"`
	Element *model.DetectedElement `yaml:"element,omitempty" json:"element,omitempty"`
	X       int                    `yaml:"x" json:"x"`
	Y       int                    `yaml:"y" json:"y"`
}

type typeResult struct {
	OK      bool                   `yaml:"ok" json:"ok"`
	Action  string                 `yaml:"action" json:"action"`
	Typed   int                    `yaml:"typed" json:"typed"`
	Element *model.DetectedElement `yaml:"element,omitempty" json:"element,omitempty"`
}

type scrollResult struct {
	OK     bool   `yaml:"ok" json:"ok"`
	Action string `yaml:"action" json:"action"`
	X      int    `yaml:"x" json:"x"`
	Y      int    `yaml:"y" json:"y"`
}

type focusResult struct {
	OK     bool   `yaml:"ok" json:"ok"`
	Action string `yaml:"action" json:"action"`
}
