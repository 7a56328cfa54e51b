package model

import "fmt"

// WindowTargetKind discriminates the WindowTarget union.
type WindowTargetKind int

const (
	// WindowFrontmost targets the first window of the frontmost app.
	WindowFrontmost WindowTargetKind = iota
	// WindowApplication targets the first window of a named app.
	WindowApplication
	// WindowTitle targets any window whose title contains a substring.
	WindowTitle
	// WindowApplicationAndTitle targets a titled window within a named app.
	WindowApplicationAndTitle
	// WindowIndex targets the nth window of a named app.
	WindowIndex
	// WindowID targets a window by its persistent OS window identifier.
	// It is never an array index; use WindowIndex for positional access.
	WindowID
)

// WindowTarget describes which window to locate.
type WindowTarget struct {
	Kind  WindowTargetKind
	App   string
	Title string
	Index int
	ID    int
}

// FrontmostWindow targets the frontmost app's first window.
func FrontmostWindow() WindowTarget {
	return WindowTarget{Kind: WindowFrontmost}
}

// AppWindow targets the first window of the named application.
func AppWindow(app string) WindowTarget {
	return WindowTarget{Kind: WindowApplication, App: app}
}

// TitledWindow targets any window whose title contains the substring.
func TitledWindow(title string) WindowTarget {
	return WindowTarget{Kind: WindowTitle, Title: title}
}

// AppTitledWindow targets a window within the named app by title substring.
func AppTitledWindow(app, title string) WindowTarget {
	return WindowTarget{Kind: WindowApplicationAndTitle, App: app, Title: title}
}

// IndexedWindow targets the nth (0-based) window of the named app.
func IndexedWindow(app string, index int) WindowTarget {
	return WindowTarget{Kind: WindowIndex, App: app, Index: index}
}

// WindowByID targets a window by persistent OS window identifier.
func WindowByID(id int) WindowTarget {
	return WindowTarget{Kind: WindowID, ID: id}
}

func (t WindowTarget) String() string {
	switch t.Kind {
	case WindowApplication:
		return fmt.Sprintf("app:%s", t.App)
	case WindowTitle:
		return fmt.Sprintf("title:%q", t.Title)
	case WindowApplicationAndTitle:
		return fmt.Sprintf("app:%s title:%q", t.App, t.Title)
	case WindowIndex:
		return fmt.Sprintf("app:%s index:%d", t.App, t.Index)
	case WindowID:
		return fmt.Sprintf("window-id:%d", t.ID)
	default:
		return "frontmost"
	}
}

// WindowInfo is one entry of the coarse OS window list: owner and geometry
// without accessibility detail. Last-resort fallback data only.
type WindowInfo struct {
	App     string `yaml:"app"               json:"app"`
	PID     int    `yaml:"pid"               json:"pid"`
	Title   string `yaml:"title,omitempty"   json:"title,omitempty"`
	ID      int    `yaml:"id"                json:"id"`
	Bounds  Bounds `yaml:"bounds"            json:"bounds"`
	Layer   int    `yaml:"layer,omitempty"   json:"layer,omitempty"`
	Focused bool   `yaml:"focused,omitempty" json:"focused,omitempty"`
}

// DialogInfo describes a located modal dialog or sheet.
type DialogInfo struct {
	Title        string `yaml:"title,omitempty" json:"title,omitempty"`
	Role         string `yaml:"role"            json:"role"`
	Subrole      string `yaml:"subrole,omitempty" json:"subrole,omitempty"`
	IsFileDialog bool   `yaml:"is_file_dialog,omitempty" json:"is_file_dialog,omitempty"`
	Bounds       Bounds `yaml:"bounds"          json:"bounds"`
}
