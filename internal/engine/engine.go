// Package engine wires the catalog builder, session store, resolver,
// locator, and wait engine behind the operations exposed to the CLI and
// MCP surfaces. Every tree read and synthesis call is marshaled onto the
// UI-affinity thread; orchestration stays on the caller's goroutine.
package engine

import (
	"context"
	"time"

	"github.com/steipete/peekaboo-go/internal/annotate"
	"github.com/steipete/peekaboo-go/internal/detect"
	"github.com/steipete/peekaboo-go/internal/locate"
	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/operr"
	"github.com/steipete/peekaboo-go/internal/platform"
	"github.com/steipete/peekaboo-go/internal/resolve"
	"github.com/steipete/peekaboo-go/internal/session"
	"github.com/steipete/peekaboo-go/internal/uithread"
	"github.com/steipete/peekaboo-go/internal/wait"
)

// typeSettleDelay lets the focused field settle between the focusing
// click and the first keystroke.
const typeSettleDelay = 50 * time.Millisecond

// Engine is the target resolution and session engine.
type Engine struct {
	provider *platform.Provider
	Store    *session.Store
	Builder  *detect.Builder
	Resolver *resolve.Resolver
	Locator  *locate.Locator
	Waiter   *wait.Waiter
}

// New assembles an Engine over the given platform provider.
func New(provider *platform.Provider) *Engine {
	store := session.NewStore(0)
	e := &Engine{
		provider: provider,
		Store:    store,
		Builder:  detect.NewBuilder(),
		Resolver: resolve.New(store, provider.Desktop, provider.Inputter),
		Locator:  locate.New(provider.Desktop),
	}
	e.Waiter = wait.New(uiResolver{e.Resolver})
	return e
}

// uiResolver marshals each resolution attempt onto the UI thread so the
// wait loop can poll from any goroutine.
type uiResolver struct {
	inner *resolve.Resolver
}

func (u uiResolver) Resolve(target model.Target, sessionID string) (el *model.DetectedElement, p model.Point, err error) {
	uithread.Do(func() {
		el, p, err = u.inner.Resolve(target, sessionID)
	})
	return el, p, err
}

// DetectOptions configures a detection pass.
type DetectOptions struct {
	SessionID      string
	Window         model.WindowTarget
	IncludeMenuBar bool   // walk the whole application, menu bar included
	Screenshot     string // previously captured screenshot path, optional
	Annotate       bool   // write an annotated copy next to the screenshot
	WindowCapture  bool   // screenshot covers only the window, not the screen
}

// Detect builds an element catalog and stores it as the session's new
// snapshot, creating a session when none is given.
func (e *Engine) Detect(opts DetectOptions) (*model.DetectionResult, error) {
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = e.Store.Create()
	}

	start := time.Now()
	var (
		elements model.DetectedElements
		warnings []string
		origin   model.Point
		err      error
	)
	uithread.Do(func() {
		var root platform.Node
		var winBounds *model.Bounds

		if opts.IncludeMenuBar {
			var app platform.App
			if opts.Window.App != "" {
				app, err = e.Locator.FindApp(opts.Window.App)
			} else {
				app, err = e.provider.Desktop.FrontmostApp()
			}
			if err != nil {
				return
			}
			root = app.Root()
		} else {
			var win platform.Node
			win, err = e.Locator.LocateWindow(opts.Window)
			if err != nil {
				return
			}
			if b, ok := win.Bounds(); ok {
				winBounds = &b
				origin = model.Point{X: b.X, Y: b.Y}
			}
			root = win
		}

		elements, warnings, err = e.Builder.Build(root, winBounds)
	})
	if err != nil {
		return nil, err
	}

	result := &model.DetectionResult{
		SessionID:      sessionID,
		ScreenshotPath: opts.Screenshot,
		Elements:       elements,
		Metadata: model.DetectionMetadata{
			DetectionTimeMs: time.Since(start).Milliseconds(),
			ElementCount:    elements.Count(),
			Method:          "accessibility",
			Warnings:        warnings,
		},
	}
	if err := e.Store.Put(sessionID, result); err != nil {
		return nil, err
	}

	if opts.Annotate && opts.Screenshot != "" {
		// Catalog bounds are window-relative; a full-screen capture needs
		// them shifted back to screen coordinates before drawing.
		boxes := elements.All
		if !opts.WindowCapture {
			boxes = screenSpace(boxes, origin)
		}
		annotated := opts.Screenshot + ".annotated.png"
		if aerr := annotate.File(opts.Screenshot, annotated, boxes); aerr != nil {
			result.Metadata.Warnings = append(result.Metadata.Warnings, "annotate failed: "+aerr.Error())
		}
	}
	return result, nil
}

// screenSpace returns copies of the elements with bounds shifted by the
// window origin.
func screenSpace(els []model.DetectedElement, origin model.Point) []model.DetectedElement {
	if origin.X == 0 && origin.Y == 0 {
		return els
	}
	out := make([]model.DetectedElement, len(els))
	for i, el := range els {
		el.Bounds.X += origin.X
		el.Bounds.Y += origin.Y
		out[i] = el
	}
	return out
}

// Resolve maps a target to an element and point on the UI thread.
func (e *Engine) Resolve(target model.Target, sessionID string) (el *model.DetectedElement, p model.Point, err error) {
	uithread.Do(func() {
		el, p, err = e.Resolver.Resolve(target, sessionID)
	})
	return el, p, err
}

// Click resolves the target and posts a click at the resolved point.
// With exact set, query targets match whole strings instead of
// substrings.
func (e *Engine) Click(target model.Target, sessionID string, button platform.MouseButton, clickCount int, exact bool) (el *model.DetectedElement, p model.Point, err error) {
	uithread.Do(func() {
		if exact {
			el, p, err = e.Resolver.ResolveExact(target, sessionID)
		} else {
			el, p, err = e.Resolver.Resolve(target, sessionID)
		}
		if err != nil {
			return
		}
		if cerr := platform.Click(e.provider.Inputter, button, clickCount, p); cerr != nil {
			err = operr.Wrap(operr.OperationFailed, "click", "input synthesis failed", cerr)
		}
	})
	return el, p, err
}

// TypeText types text, optionally resolving a target first. Resolving a
// text-entry target includes the focusing click; a short settle pause
// separates the click from the first keystroke without stalling the UI
// thread.
func (e *Engine) TypeText(target *model.Target, sessionID, text string) (el *model.DetectedElement, err error) {
	if target != nil {
		uithread.Do(func() {
			el, _, err = e.Resolver.ResolveForType(*target, sessionID)
		})
		if err != nil {
			return nil, err
		}
		time.Sleep(typeSettleDelay)
	}
	uithread.Do(func() {
		if terr := platform.TypeText(e.provider.Inputter, text); terr != nil {
			err = operr.Wrap(operr.OperationFailed, "type text", "input synthesis failed", terr)
		}
	})
	return el, err
}

// Scroll resolves the target and posts scroll ticks at its point.
func (e *Engine) Scroll(target model.Target, sessionID string, deltaX, deltaY int) (p model.Point, err error) {
	uithread.Do(func() {
		_, p, err = e.Resolver.Resolve(target, sessionID)
		if err != nil {
			return
		}
		if serr := e.provider.Inputter.ScrollTick(deltaX, deltaY, p); serr != nil {
			err = operr.Wrap(operr.OperationFailed, "scroll", "input synthesis failed", serr)
		}
	})
	return p, err
}

// WaitFor polls target resolution until found or the timeout elapses.
func (e *Engine) WaitFor(ctx context.Context, target model.Target, timeout time.Duration, sessionID string) (model.WaitResult, error) {
	return e.Waiter.WaitFor(ctx, target, timeout, sessionID)
}

// WindowDescription is the caller-facing view of a located window.
type WindowDescription struct {
	Title   string       `yaml:"title,omitempty" json:"title,omitempty"`
	Role    string       `yaml:"role"            json:"role"`
	Subrole string       `yaml:"subrole,omitempty" json:"subrole,omitempty"`
	Bounds  model.Bounds `yaml:"bounds"          json:"bounds"`
}

// LocateWindow resolves a window target to a description.
func (e *Engine) LocateWindow(target model.WindowTarget) (*WindowDescription, error) {
	var desc *WindowDescription
	var err error
	uithread.Do(func() {
		var win platform.Node
		win, err = e.Locator.LocateWindow(target)
		if err != nil {
			return
		}
		bounds, _ := win.Bounds()
		desc = &WindowDescription{
			Title:   win.Title(),
			Role:    win.Role(),
			Subrole: win.Subrole(),
			Bounds:  bounds,
		}
	})
	return desc, err
}

// LocateDialog finds the active dialog, optionally by exact title.
func (e *Engine) LocateDialog(titleHint string) (*model.DialogInfo, error) {
	var info *model.DialogInfo
	var err error
	uithread.Do(func() {
		_, info, err = e.Locator.LocateDialog(titleHint)
	})
	return info, err
}

// ListWindows returns the coarse OS window list.
func (e *Engine) ListWindows() (infos []model.WindowInfo, err error) {
	uithread.Do(func() {
		infos, err = e.provider.Desktop.ListWindows()
	})
	return infos, err
}

// Focus brings the targeted app or window's app forward.
func (e *Engine) Focus(target model.WindowTarget) error {
	var err error
	uithread.Do(func() {
		if target.App != "" {
			var app platform.App
			app, err = e.Locator.FindApp(target.App)
			if err != nil {
				return
			}
			err = app.Activate()
			return
		}
		var win platform.Node
		win, err = e.Locator.LocateWindow(target)
		if err != nil {
			return
		}
		// Raise via the owning app; per-window raising is app-specific.
		title := win.Title()
		var infos []model.WindowInfo
		infos, err = e.provider.Desktop.ListWindows()
		if err != nil {
			return
		}
		for _, info := range infos {
			if info.Title == title {
				if app, ok := e.provider.Desktop.AppByPID(info.PID); ok {
					err = app.Activate()
					return
				}
			}
		}
		err = operr.New(operr.NotFound, "focus window", "owning application not found")
	})
	return err
}

// CaptureScreen writes a full-screen capture to path for a subsequent
// detection pass.
func (e *Engine) CaptureScreen(path string) error {
	if e.provider.Screenshotter == nil {
		return operr.New(operr.OperationFailed, "capture screen", "screenshot not supported on this platform")
	}
	var err error
	uithread.Do(func() {
		err = e.provider.Screenshotter.CaptureScreen(path)
	})
	return err
}

// CaptureWindow writes a capture of the identified window to path. The
// resulting image is window-relative, so annotation over it uses catalog
// bounds as-is.
func (e *Engine) CaptureWindow(windowID int, path string) error {
	if e.provider.Screenshotter == nil {
		return operr.New(operr.OperationFailed, "capture window", "screenshot not supported on this platform")
	}
	var err error
	uithread.Do(func() {
		err = e.provider.Screenshotter.CaptureWindow(windowID, path)
	})
	return err
}
