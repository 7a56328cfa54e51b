// Package sim is an in-memory platform backend. It backs the engine tests
// with scriptable trees, focus chains, and window lists, including the
// awkward cases the live tree can produce: cycles, missing geometry, and
// unresponsive window fetches.
package sim

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/platform"
)

// Node is a scriptable accessibility node.
type Node struct {
	role       string
	subrole    string
	title      string
	label      string
	value      string
	roleDesc   string
	identifier string
	bounds     *model.Bounds
	disabled   bool
	selected   bool
	actions    []string
	children   []*Node
	parent     *Node
}

// NewNode creates a node with the given role and title.
func NewNode(role, title string) *Node {
	return &Node{role: role, title: title}
}

// WithSubrole sets the subrole.
func (n *Node) WithSubrole(s string) *Node { n.subrole = s; return n }

// WithLabel sets the description/label.
func (n *Node) WithLabel(s string) *Node { n.label = s; return n }

// WithValue sets the value.
func (n *Node) WithValue(s string) *Node { n.value = s; return n }

// WithRoleDescription sets the role description.
func (n *Node) WithRoleDescription(s string) *Node { n.roleDesc = s; return n }

// WithIdentifier sets the developer identifier.
func (n *Node) WithIdentifier(s string) *Node { n.identifier = s; return n }

// WithBounds sets the screen rectangle.
func (n *Node) WithBounds(x, y, w, h int) *Node {
	n.bounds = &model.Bounds{X: x, Y: y, Width: w, Height: h}
	return n
}

// WithActions sets the supported actions.
func (n *Node) WithActions(actions ...string) *Node { n.actions = actions; return n }

// Disabled marks the node as not enabled.
func (n *Node) Disabled() *Node { n.disabled = true; return n }

// MarkSelected marks the node as selected.
func (n *Node) MarkSelected() *Node { n.selected = true; return n }

// AddChildren appends children and sets their parent.
func (n *Node) AddChildren(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
	}
	n.children = append(n.children, children...)
	return n
}

// SetChildren replaces the child list without touching parents.
// Useful for scripting aliased or cyclic graphs.
func (n *Node) SetChildren(children ...*Node) *Node {
	n.children = children
	return n
}

func (n *Node) Role() string            { return n.role }
func (n *Node) Subrole() string         { return n.subrole }
func (n *Node) Title() string           { return n.title }
func (n *Node) Label() string           { return n.label }
func (n *Node) Value() string           { return n.value }
func (n *Node) RoleDescription() string { return n.roleDesc }
func (n *Node) Identifier() string      { return n.identifier }
func (n *Node) Enabled() bool           { return !n.disabled }
func (n *Node) Selected() bool          { return n.selected }
func (n *Node) Actions() []string       { return n.actions }

func (n *Node) Bounds() (model.Bounds, bool) {
	if n.bounds == nil {
		return model.Bounds{}, false
	}
	return *n.bounds, true
}

func (n *Node) Children() []platform.Node {
	out := make([]platform.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *Node) Parent() platform.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Identity() uintptr {
	return uintptr(unsafe.Pointer(n))
}

// App is a scriptable running application.
type App struct {
	AppName      string
	AppPID       int
	TreeRoot     *Node
	WindowNodes  []*Node
	FocusedWin   *Node
	WindowsErr   error
	WindowsDelay time.Duration // simulates an unresponsive app
	Activations  int
}

func (a *App) Name() string { return a.AppName }
func (a *App) PID() int     { return a.AppPID }

func (a *App) Root() platform.Node {
	if a.TreeRoot == nil {
		return nil
	}
	return a.TreeRoot
}

func (a *App) Windows(timeout time.Duration) ([]platform.Node, error) {
	if a.WindowsDelay > 0 && a.WindowsDelay > timeout {
		return nil, fmt.Errorf("window fetch for %s timed out after %s", a.AppName, timeout)
	}
	if a.WindowsErr != nil {
		return nil, a.WindowsErr
	}
	out := make([]platform.Node, len(a.WindowNodes))
	for i, w := range a.WindowNodes {
		out[i] = w
	}
	return out, nil
}

func (a *App) FocusedWindow() (platform.Node, bool) {
	if a.FocusedWin == nil {
		return nil, false
	}
	return a.FocusedWin, true
}

func (a *App) Activate() error {
	a.Activations++
	return nil
}

// Desktop is a scriptable system-wide view.
type Desktop struct {
	Apps          []*App
	Frontmost     *App
	AtPoint       *App
	FocusedElem   *Node
	FocusedWin    *Node
	SystemWins    []*Node
	SystemWinsOK  bool
	CoarseWindows []model.WindowInfo
	Pointer       model.Point
}

func (d *Desktop) RunningApps() ([]platform.App, error) {
	out := make([]platform.App, len(d.Apps))
	for i, a := range d.Apps {
		out[i] = a
	}
	return out, nil
}

func (d *Desktop) FrontmostApp() (platform.App, error) {
	if d.Frontmost == nil {
		return nil, fmt.Errorf("no frontmost app")
	}
	return d.Frontmost, nil
}

func (d *Desktop) AppByPID(pid int) (platform.App, bool) {
	for _, a := range d.Apps {
		if a.AppPID == pid {
			return a, true
		}
	}
	return nil, false
}

func (d *Desktop) AppAtPoint(p model.Point) (platform.App, bool) {
	if d.AtPoint == nil {
		return nil, false
	}
	return d.AtPoint, true
}

func (d *Desktop) FocusedElement() (platform.Node, bool) {
	if d.FocusedElem == nil {
		return nil, false
	}
	return d.FocusedElem, true
}

func (d *Desktop) FocusedWindow() (platform.Node, bool) {
	if d.FocusedWin == nil {
		return nil, false
	}
	return d.FocusedWin, true
}

func (d *Desktop) SystemWindows() ([]platform.Node, bool) {
	if !d.SystemWinsOK {
		return nil, false
	}
	out := make([]platform.Node, len(d.SystemWins))
	for i, w := range d.SystemWins {
		out[i] = w
	}
	return out, true
}

func (d *Desktop) ListWindows() ([]model.WindowInfo, error) {
	return d.CoarseWindows, nil
}

func (d *Desktop) PointerLocation() (model.Point, error) {
	return d.Pointer, nil
}

// Event is one synthesized input event recorded by the Inputter.
type Event struct {
	Kind    string // "move", "down", "up", "keydown", "keyup", "scroll"
	Button  platform.MouseButton
	Count   int
	Point   model.Point
	DeltaX  int
	DeltaY  int
	KeyCode int
	Mods    platform.ModifierMask
}

// Inputter records synthesized events for assertions.
type Inputter struct {
	Events []Event
}

func (in *Inputter) Move(p model.Point) error {
	in.Events = append(in.Events, Event{Kind: "move", Point: p})
	return nil
}

func (in *Inputter) MouseDown(b platform.MouseButton, count int, p model.Point) error {
	in.Events = append(in.Events, Event{Kind: "down", Button: b, Count: count, Point: p})
	return nil
}

func (in *Inputter) MouseUp(b platform.MouseButton, count int, p model.Point) error {
	in.Events = append(in.Events, Event{Kind: "up", Button: b, Count: count, Point: p})
	return nil
}

func (in *Inputter) KeyDown(code int, mods platform.ModifierMask) error {
	in.Events = append(in.Events, Event{Kind: "keydown", KeyCode: code, Mods: mods})
	return nil
}

func (in *Inputter) KeyUp(code int, mods platform.ModifierMask) error {
	in.Events = append(in.Events, Event{Kind: "keyup", KeyCode: code, Mods: mods})
	return nil
}

func (in *Inputter) ScrollTick(dx, dy int, p model.Point) error {
	in.Events = append(in.Events, Event{Kind: "scroll", DeltaX: dx, DeltaY: dy, Point: p})
	return nil
}

// Clicks returns the number of full down/up pairs recorded.
func (in *Inputter) Clicks() int {
	downs := 0
	for _, e := range in.Events {
		if e.Kind == "down" {
			downs++
		}
	}
	return downs
}
