package locate

import (
	"strings"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/platform"
)

// The dialog predicate is a set of independently testable checks combined
// by OR. Each check covers a different way apps surface modality: proper
// sheet/dialog roles, subroles on plain windows, role descriptions,
// file-panel identifiers, and title conventions.

// dialogRoles are roles that are dialogs outright.
var dialogRoles = map[string]bool{
	"AXSheet":  true,
	"AXDialog": true,
}

// dialogSubroles are subroles that mark a window as dialog-like.
// AXUnknown is included: system alerts frequently report it.
var dialogSubroles = map[string]bool{
	"AXDialog":       true,
	"AXSystemDialog": true,
	"AXAlert":        true,
	"AXUnknown":      true,
}

// filePanelMarkers identify the standard open/save panels.
var filePanelMarkers = []string{
	"open-panel",
	"save-panel",
	"nsopenpanel",
	"nssavepanel",
}

// dialogTitleHints are title words typical of modal dialogs. Matching is
// substring containment and only applies when no expected title was
// requested.
var dialogTitleHints = []string{
	"open", "save", "export", "import", "choose", "replace",
}

// RoleIsDialog reports whether the node's role is a dialog/sheet role.
func RoleIsDialog(n platform.Node) bool {
	return dialogRoles[n.Role()]
}

// SubroleIsDialog reports whether the node's subrole marks a dialog.
func SubroleIsDialog(n platform.Node) bool {
	return dialogSubroles[n.Subrole()]
}

// RoleDescriptionMentionsDialog reports whether the role description
// contains "dialog".
func RoleDescriptionMentionsDialog(n platform.Node) bool {
	return strings.Contains(strings.ToLower(n.RoleDescription()), "dialog")
}

// HasFilePanelIdentifier reports whether the identifier matches a known
// open/save panel marker.
func HasFilePanelIdentifier(n platform.Node) bool {
	ident := strings.ToLower(n.Identifier())
	if ident == "" {
		return false
	}
	for _, marker := range filePanelMarkers {
		if strings.Contains(ident, marker) {
			return true
		}
	}
	return false
}

// TitleHasDialogHint reports whether the title contains one of the
// dialog hint words.
func TitleHasDialogHint(n platform.Node) bool {
	title := strings.ToLower(n.Title())
	if title == "" {
		return false
	}
	for _, hint := range dialogTitleHints {
		if strings.Contains(title, hint) {
			return true
		}
	}
	return false
}

// IsDialogLike reports whether any dialog check accepts the node.
func IsDialogLike(n platform.Node) bool {
	return RoleIsDialog(n) ||
		SubroleIsDialog(n) ||
		RoleDescriptionMentionsDialog(n) ||
		HasFilePanelIdentifier(n) ||
		TitleHasDialogHint(n)
}

// matchesDialog applies the cascade filter. With an expected title the
// title must match exactly; without one the predicate's hint-based
// substring checks stand alone.
func matchesDialog(n platform.Node, expectedTitle string) bool {
	if !IsDialogLike(n) {
		return false
	}
	if expectedTitle != "" {
		return n.Title() == expectedTitle
	}
	return true
}

// DialogInfoFromNode extracts the caller-facing dialog description.
func DialogInfoFromNode(n platform.Node) *model.DialogInfo {
	bounds, _ := n.Bounds()
	return &model.DialogInfo{
		Title:        n.Title(),
		Role:         n.Role(),
		Subrole:      n.Subrole(),
		IsFileDialog: HasFilePanelIdentifier(n) || hasFileDialogTitle(n),
		Bounds:       bounds,
	}
}

// hasFileDialogTitle checks the narrower open/save/choose subset used to
// flag file dialogs specifically.
func hasFileDialogTitle(n platform.Node) bool {
	title := strings.ToLower(n.Title())
	for _, hint := range []string{"open", "save", "choose"} {
		if strings.Contains(title, hint) {
			return true
		}
	}
	return false
}
