// Package platform defines the OS boundary: read-only accessibility tree
// access, input event synthesis, the process registry, and the coarse
// window list. Platform-specific packages register implementations via
// init(); see internal/platform/darwin.
package platform

import (
	"time"

	"github.com/steipete/peekaboo-go/internal/model"
)

// Node is a read-only view of one accessibility-tree entry. The tree is
// externally owned and not contractually acyclic; traversals must bound
// depth and keep an identity-keyed visited set.
type Node interface {
	// Role returns the raw role string (e.g. "AXButton").
	Role() string
	// Subrole returns the raw subrole string, or "".
	Subrole() string
	// Title returns the node title, or "".
	Title() string
	// Label returns the accessibility description/label, or "".
	Label() string
	// Value returns the current value rendered as a string, or "".
	Value() string
	// RoleDescription returns the human-readable role description, or "".
	RoleDescription() string
	// Identifier returns the developer-assigned identifier, or "".
	Identifier() string
	// Bounds returns the node's screen rectangle. ok is false when the
	// node exposes no geometry; such attribute gaps never abort a walk.
	Bounds() (b model.Bounds, ok bool)
	// Enabled reports whether the node accepts interaction.
	Enabled() bool
	// Selected reports whether the node is selected.
	Selected() bool
	// Actions returns the supported action names.
	Actions() []string
	// Children returns the child nodes in order.
	Children() []Node
	// Parent returns the parent node, or nil at the root.
	Parent() Node
	// Identity returns a stable key for the underlying OS node, used for
	// cycle detection. Two wrappers of the same OS node share a key.
	Identity() uintptr
}

// App is one running application exposed by the process registry.
type App interface {
	Name() string
	PID() int
	// Root returns the application node (including its menu bar), or nil
	// when the app exposes no accessibility tree.
	Root() Node
	// Windows enumerates the app's windows. The fetch is bounded by
	// timeout so one unresponsive app cannot hang a caller's cascade.
	Windows(timeout time.Duration) ([]Node, error)
	// FocusedWindow returns the app's focused window, if any.
	FocusedWindow() (Node, bool)
	// Activate brings the app forward. Best-effort.
	Activate() error
}

// Desktop is the system-wide view: running apps, focus chain, pointer,
// and the coarse non-accessibility window list.
type Desktop interface {
	// RunningApps lists all running applications with a regular UI.
	RunningApps() ([]App, error)
	// FrontmostApp returns the active application.
	FrontmostApp() (App, error)
	// AppByPID returns the application owning the given process.
	AppByPID(pid int) (App, bool)
	// AppAtPoint returns the application under the given screen point,
	// which is not necessarily the frontmost application.
	AppAtPoint(p model.Point) (App, bool)
	// FocusedElement returns the system-wide focused UI element.
	FocusedElement() (Node, bool)
	// FocusedWindow returns the system-wide focused window.
	FocusedWindow() (Node, bool)
	// SystemWindows returns the system-wide window-list attribute when
	// the platform exposes one; ok is false otherwise.
	SystemWindows() ([]Node, bool)
	// ListWindows returns the coarse window list: owner, title, bounds,
	// layer. Last-resort fallback only; no accessibility detail.
	ListWindows() ([]model.WindowInfo, error)
	// PointerLocation returns the current mouse location.
	PointerLocation() (model.Point, error)
}

// MouseButton identifies a mouse button for synthesized events.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// ModifierMask is a bitmask of held modifier keys.
type ModifierMask uint32

const (
	ModShift ModifierMask = 1 << iota
	ModControl
	ModOption
	ModCommand
)

// Inputter synthesizes input events at resolved points. Calls are short
// and atomic; there is no mid-flight cancellation.
type Inputter interface {
	Move(p model.Point) error
	MouseDown(button MouseButton, clickCount int, p model.Point) error
	MouseUp(button MouseButton, clickCount int, p model.Point) error
	KeyDown(virtualKeyCode int, modifiers ModifierMask) error
	KeyUp(virtualKeyCode int, modifiers ModifierMask) error
	ScrollTick(deltaX, deltaY int, p model.Point) error
}

// Click posts a full press-release pair at p.
func Click(in Inputter, button MouseButton, clickCount int, p model.Point) error {
	if err := in.Move(p); err != nil {
		return err
	}
	if err := in.MouseDown(button, clickCount, p); err != nil {
		return err
	}
	return in.MouseUp(button, clickCount, p)
}

// Screenshotter captures a window or screen image to a file.
// Capture itself is a boundary concern; the engine only passes paths.
type Screenshotter interface {
	// CaptureWindow writes a capture of the window to path.
	CaptureWindow(windowID int, path string) error
	// CaptureScreen writes a full-screen capture to path.
	CaptureScreen(path string) error
}
