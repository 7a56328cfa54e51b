// Package locate finds windows and modal dialogs through a cascading
// multi-strategy search across the focus chain, the focused app, all
// running apps, and the coarse OS window list. Individual stage failures
// are swallowed; only exhaustion of the whole cascade surfaces an error.
package locate

import (
	"strings"
	"time"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/operr"
	"github.com/steipete/peekaboo-go/internal/platform"
)

// DefaultWindowTimeout bounds each per-app window fetch so one
// unresponsive application cannot hang the cascade.
const DefaultWindowTimeout = 2 * time.Second

// DefaultSettleDelay is the pause after a recovery focus before retrying.
const DefaultSettleDelay = 200 * time.Millisecond

// sheetScanDepth bounds the search for sheets nested inside windows.
const sheetScanDepth = 3

// systemAppDenylist holds system processes skipped during all-app title
// searches. Entries in systemAppAllowlist are searched anyway.
var systemAppDenylist = map[string]bool{
	"Dock":                true,
	"WindowServer":        true,
	"SystemUIServer":      true,
	"Control Center":      true,
	"Notification Center": true,
	"Spotlight":           true,
	"loginwindow":         true,
	"CoreServicesUIAgent": true,
}

var systemAppAllowlist = map[string]bool{
	"Finder":             true,
	"System Settings":    true,
	"System Preferences": true,
}

// Locator performs window and dialog discovery.
type Locator struct {
	Desktop       platform.Desktop
	WindowTimeout time.Duration
	SettleDelay   time.Duration

	// sleep is swappable for tests.
	sleep func(time.Duration)
}

// New creates a Locator with default timeouts.
func New(desktop platform.Desktop) *Locator {
	return &Locator{
		Desktop:       desktop,
		WindowTimeout: DefaultWindowTimeout,
		SettleDelay:   DefaultSettleDelay,
		sleep:         time.Sleep,
	}
}

// LocateDialog finds the active dialog-like window, optionally requiring
// an exact title. On full cascade failure with a title hint it focuses
// the likeliest owner, waits briefly, and retries once.
func (l *Locator) LocateDialog(expectedTitle string) (platform.Node, *model.DialogInfo, error) {
	if n, ok := l.dialogCascade(expectedTitle); ok {
		return n, DialogInfoFromNode(n), nil
	}

	if expectedTitle != "" && l.recoverByTitle(expectedTitle) {
		if n, ok := l.dialogCascade(expectedTitle); ok {
			return n, DialogInfoFromNode(n), nil
		}
	}

	return nil, nil, operr.New(operr.NotFound, "locate dialog", "dialog/window not found")
}

// dialogCascade runs the six stages in order; each is attempted only when
// the previous produced nothing.
func (l *Locator) dialogCascade(expectedTitle string) (platform.Node, bool) {
	// Stage 1: window owning the focused element.
	if el, ok := l.Desktop.FocusedElement(); ok {
		if win := owningWindow(el); win != nil && matchesDialog(win, expectedTitle) {
			return win, true
		}
	}

	// Stage 2: the focused window itself.
	if win, ok := l.Desktop.FocusedWindow(); ok && matchesDialog(win, expectedTitle) {
		return win, true
	}

	// Stage 3: the focused app's windows, including nested sheets.
	if app, err := l.Desktop.FrontmostApp(); err == nil {
		if n, ok := l.scanAppWindows(app, expectedTitle); ok {
			return n, true
		}
	}

	// Stage 4: the system-wide window list attribute, if exposed.
	if wins, ok := l.Desktop.SystemWindows(); ok {
		for _, win := range wins {
			if matchesDialog(win, expectedTitle) {
				return win, true
			}
		}
	}

	// Stage 5: every running application.
	if apps, err := l.Desktop.RunningApps(); err == nil {
		for _, app := range apps {
			if n, ok := l.scanAppWindows(app, expectedTitle); ok {
				return n, true
			}
		}
	}

	// Stage 6: coarse OS window list, cross-referenced back to an
	// accessibility window by title equality or the dialog predicate.
	if infos, err := l.Desktop.ListWindows(); err == nil {
		for _, info := range infos {
			if n, ok := l.crossReference(info, expectedTitle); ok {
				return n, true
			}
		}
	}

	return nil, false
}

// scanAppWindows checks an app's windows and their nested sheets against
// the dialog filter. Fetch failures are swallowed; the cascade moves on.
func (l *Locator) scanAppWindows(app platform.App, expectedTitle string) (platform.Node, bool) {
	wins, err := app.Windows(l.WindowTimeout)
	if err != nil {
		return nil, false
	}
	for _, win := range wins {
		if matchesDialog(win, expectedTitle) {
			return win, true
		}
		if sheet := findNestedSheet(win, expectedTitle, 0); sheet != nil {
			return sheet, true
		}
	}
	return nil, false
}

// findNestedSheet depth-first searches a window's children for a
// dialog-like descendant (sheets attach as children of their window).
func findNestedSheet(n platform.Node, expectedTitle string, depth int) platform.Node {
	if depth >= sheetScanDepth {
		return nil
	}
	for _, child := range n.Children() {
		if matchesDialog(child, expectedTitle) {
			return child
		}
		if found := findNestedSheet(child, expectedTitle, depth+1); found != nil {
			return found
		}
	}
	return nil
}

// crossReference maps a coarse window back to an accessibility window of
// the owning app. Every candidate must clear the dialog filter; a bare
// title match against the coarse entry is not enough, otherwise a
// dialog-free desktop would hand back an arbitrary plain window.
func (l *Locator) crossReference(info model.WindowInfo, expectedTitle string) (platform.Node, bool) {
	if expectedTitle != "" && info.Title != expectedTitle {
		return nil, false
	}
	app, ok := l.Desktop.AppByPID(info.PID)
	if !ok {
		return nil, false
	}
	wins, err := app.Windows(l.WindowTimeout)
	if err != nil {
		return nil, false
	}
	for _, win := range wins {
		if matchesDialog(win, expectedTitle) {
			return win, true
		}
	}
	return nil, false
}

// recoverByTitle brings the app owning a coarse window with the given
// title forward and waits for the UI to settle. Best-effort.
func (l *Locator) recoverByTitle(title string) bool {
	infos, err := l.Desktop.ListWindows()
	if err != nil {
		return false
	}
	for _, info := range infos {
		if info.Title != title {
			continue
		}
		app, ok := l.Desktop.AppByPID(info.PID)
		if !ok {
			continue
		}
		if err := app.Activate(); err != nil {
			continue
		}
		l.sleep(l.SettleDelay)
		return true
	}
	return false
}

// LocateWindow resolves a generic window target.
func (l *Locator) LocateWindow(target model.WindowTarget) (platform.Node, error) {
	win, err := l.locateWindow(target)
	if err == nil {
		return win, nil
	}

	// Recovery: with an app hint, bring the app forward, settle, retry.
	if target.App != "" && operr.IsNotFound(err) {
		if app, appErr := l.FindApp(target.App); appErr == nil {
			if app.Activate() == nil {
				l.sleep(l.SettleDelay)
				if win, retryErr := l.locateWindow(target); retryErr == nil {
					return win, nil
				}
			}
		}
	}
	return nil, err
}

func (l *Locator) locateWindow(target model.WindowTarget) (platform.Node, error) {
	const op = "locate window"
	switch target.Kind {
	case model.WindowFrontmost:
		app, err := l.Desktop.FrontmostApp()
		if err != nil {
			return nil, operr.Wrap(operr.NotFound, op, "no frontmost application", err)
		}
		return l.firstWindow(app, op)

	case model.WindowApplication:
		app, err := l.FindApp(target.App)
		if err != nil {
			return nil, err
		}
		return l.firstWindow(app, op)

	case model.WindowTitle:
		return l.findByTitle(target.Title)

	case model.WindowApplicationAndTitle:
		// Scoped to the named app only: cheaper than the global scan.
		app, err := l.FindApp(target.App)
		if err != nil {
			return nil, err
		}
		if win, ok := l.titledWindowOf(app, target.Title); ok {
			return win, nil
		}
		return nil, operr.Newf(operr.NotFound, op, "no window of %s matching title %q", target.App, target.Title)

	case model.WindowIndex:
		app, err := l.FindApp(target.App)
		if err != nil {
			return nil, err
		}
		wins, err := app.Windows(l.WindowTimeout)
		if err != nil {
			return nil, operr.Wrap(operr.OperationFailed, op, "window enumeration failed", err)
		}
		if target.Index < 0 || target.Index >= len(wins) {
			return nil, operr.Newf(operr.InvalidInput, op, "window index %d out of range (app %s has %d windows)", target.Index, target.App, len(wins))
		}
		return wins[target.Index], nil

	case model.WindowID:
		return l.findByWindowID(target.ID)

	default:
		return nil, operr.Newf(operr.InvalidInput, op, "unknown window target kind %d", target.Kind)
	}
}

func (l *Locator) firstWindow(app platform.App, op string) (platform.Node, error) {
	wins, err := app.Windows(l.WindowTimeout)
	if err != nil {
		return nil, operr.Wrap(operr.OperationFailed, op, "window enumeration failed", err)
	}
	if len(wins) == 0 {
		return nil, operr.Newf(operr.NotFound, op, "%s has no windows", app.Name())
	}
	return wins[0], nil
}

// findByTitle searches the frontmost app first, then all apps, skipping
// system processes unless allowlisted.
func (l *Locator) findByTitle(title string) (platform.Node, error) {
	if app, err := l.Desktop.FrontmostApp(); err == nil {
		if win, ok := l.titledWindowOf(app, title); ok {
			return win, nil
		}
	}
	apps, err := l.Desktop.RunningApps()
	if err != nil {
		return nil, operr.Wrap(operr.OperationFailed, "locate window", "application enumeration failed", err)
	}
	for _, app := range apps {
		if systemAppDenylist[app.Name()] && !systemAppAllowlist[app.Name()] {
			continue
		}
		if win, ok := l.titledWindowOf(app, title); ok {
			return win, nil
		}
	}
	return nil, operr.Newf(operr.NotFound, "locate window", "no window matching title %q", title)
}

func (l *Locator) titledWindowOf(app platform.App, title string) (platform.Node, bool) {
	wins, err := app.Windows(l.WindowTimeout)
	if err != nil {
		return nil, false
	}
	for _, win := range wins {
		if strings.Contains(strings.ToLower(win.Title()), strings.ToLower(title)) {
			return win, true
		}
	}
	return nil, false
}

// findByWindowID treats the id as the persistent OS window identifier
// from the coarse list, never an array index.
func (l *Locator) findByWindowID(id int) (platform.Node, error) {
	const op = "locate window"
	infos, err := l.Desktop.ListWindows()
	if err != nil {
		return nil, operr.Wrap(operr.OperationFailed, op, "window list failed", err)
	}
	for _, info := range infos {
		if info.ID != id {
			continue
		}
		app, ok := l.Desktop.AppByPID(info.PID)
		if !ok {
			break
		}
		wins, err := app.Windows(l.WindowTimeout)
		if err != nil {
			break
		}
		for _, win := range wins {
			if win.Title() == info.Title {
				return win, nil
			}
		}
		for _, win := range wins {
			if IsDialogLike(win) {
				return win, nil
			}
		}
	}
	return nil, operr.Newf(operr.NotFound, op, "no window with id %d", id)
}

// FindApp matches a running application by name: exact first, then
// prefix, then substring, all case-insensitive. Multiple substring
// matches are ambiguous and rejected.
func (l *Locator) FindApp(name string) (platform.App, error) {
	const op = "locate window"
	apps, err := l.Desktop.RunningApps()
	if err != nil {
		return nil, operr.Wrap(operr.OperationFailed, op, "application enumeration failed", err)
	}
	lower := strings.ToLower(name)

	for _, app := range apps {
		if strings.EqualFold(app.Name(), name) {
			return app, nil
		}
	}
	var prefix []platform.App
	for _, app := range apps {
		if strings.HasPrefix(strings.ToLower(app.Name()), lower) {
			prefix = append(prefix, app)
		}
	}
	if len(prefix) == 1 {
		return prefix[0], nil
	}
	var sub []platform.App
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.Name()), lower) {
			sub = append(sub, app)
		}
	}
	switch len(sub) {
	case 1:
		return sub[0], nil
	case 0:
		return nil, operr.Newf(operr.NotFound, op, "application %q not found", name)
	default:
		names := make([]string, len(sub))
		for i, a := range sub {
			names[i] = a.Name()
		}
		return nil, operr.Newf(operr.InvalidInput, op, "application %q is ambiguous: %s", name, strings.Join(names, ", "))
	}
}

// owningWindow walks the parent chain to the window owning a node.
// Dialog-like ancestors win over the enclosing window so sheets resolve
// to themselves.
func owningWindow(n platform.Node) platform.Node {
	seen := make(map[uintptr]bool)
	for cur := n; cur != nil; cur = cur.Parent() {
		if seen[cur.Identity()] {
			return nil
		}
		seen[cur.Identity()] = true
		if cur.Role() == "AXWindow" || RoleIsDialog(cur) {
			return cur
		}
	}
	return nil
}
