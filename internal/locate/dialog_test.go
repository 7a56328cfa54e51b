package locate

import (
	"testing"

	"github.com/steipete/peekaboo-go/internal/platform/sim"
)

func TestRoleIsDialog(t *testing.T) {
	if !RoleIsDialog(sim.NewNode("AXSheet", "")) {
		t.Error("AXSheet should be a dialog role")
	}
	if !RoleIsDialog(sim.NewNode("AXDialog", "")) {
		t.Error("AXDialog should be a dialog role")
	}
	if RoleIsDialog(sim.NewNode("AXWindow", "")) {
		t.Error("AXWindow is not a dialog role")
	}
}

func TestSubroleIsDialog(t *testing.T) {
	tests := []struct {
		subrole string
		want    bool
	}{
		{"AXDialog", true},
		{"AXSystemDialog", true},
		{"AXAlert", true},
		{"AXUnknown", true},
		{"AXStandardWindow", false},
		{"", false},
	}
	for _, tt := range tests {
		n := sim.NewNode("AXWindow", "").WithSubrole(tt.subrole)
		if got := SubroleIsDialog(n); got != tt.want {
			t.Errorf("SubroleIsDialog(subrole=%q) = %v, want %v", tt.subrole, got, tt.want)
		}
	}
}

func TestRoleDescriptionMentionsDialog(t *testing.T) {
	if !RoleDescriptionMentionsDialog(sim.NewNode("AXWindow", "").WithRoleDescription("System Dialog")) {
		t.Error("role description containing 'dialog' should match")
	}
	if RoleDescriptionMentionsDialog(sim.NewNode("AXWindow", "").WithRoleDescription("standard window")) {
		t.Error("unrelated role description should not match")
	}
}

func TestHasFilePanelIdentifier(t *testing.T) {
	tests := []struct {
		ident string
		want  bool
	}{
		{"NSOpenPanel", true},
		{"app-save-panel-accessory", true},
		{"open-panel", true},
		{"toolbar", false},
		{"", false},
	}
	for _, tt := range tests {
		n := sim.NewNode("AXWindow", "").WithIdentifier(tt.ident)
		if got := HasFilePanelIdentifier(n); got != tt.want {
			t.Errorf("HasFilePanelIdentifier(%q) = %v, want %v", tt.ident, got, tt.want)
		}
	}
}

func TestTitleHasDialogHint(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Save As", true},
		{"Export PDF", true},
		{"Choose a folder", true},
		{"Replace existing file?", true},
		{"Untitled", false},
		{"", false},
	}
	for _, tt := range tests {
		n := sim.NewNode("AXWindow", tt.title)
		if got := TitleHasDialogHint(n); got != tt.want {
			t.Errorf("TitleHasDialogHint(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestIsDialogLike(t *testing.T) {
	cases := []*sim.Node{
		sim.NewNode("AXSheet", ""),
		sim.NewNode("AXWindow", "").WithSubrole("AXAlert"),
		sim.NewNode("AXWindow", "").WithRoleDescription("dialog"),
		sim.NewNode("AXWindow", "").WithIdentifier("nssavepanel"),
		sim.NewNode("AXWindow", "Open File"),
	}
	for i, n := range cases {
		if !IsDialogLike(n) {
			t.Errorf("case %d should be dialog-like", i)
		}
	}
	if IsDialogLike(sim.NewNode("AXWindow", "Untitled")) {
		t.Error("plain window should not be dialog-like")
	}
}

func TestMatchesDialogTitleAsymmetry(t *testing.T) {
	sheet := sim.NewNode("AXSheet", "Save As")

	if !matchesDialog(sheet, "") {
		t.Error("dialog-like node should match with no expected title")
	}
	if !matchesDialog(sheet, "Save As") {
		t.Error("exact title should match")
	}
	// Expected titles are exact, not the case-insensitive substring used
	// by the hint checks.
	if matchesDialog(sheet, "save as") {
		t.Error("expected title comparison is case-sensitive")
	}
	if matchesDialog(sheet, "Save") {
		t.Error("expected title comparison is not substring")
	}
	if matchesDialog(sim.NewNode("AXWindow", "Preferences"), "Preferences") {
		t.Error("matching title on a non-dialog window should not qualify")
	}
}

func TestDialogInfoFromNode(t *testing.T) {
	sheet := sim.NewNode("AXSheet", "Save As").
		WithSubrole("AXDialog").
		WithIdentifier("nssavepanel").
		WithBounds(100, 100, 600, 400)

	info := DialogInfoFromNode(sheet)
	if info.Title != "Save As" || info.Role != "AXSheet" || info.Subrole != "AXDialog" {
		t.Errorf("info = %+v", info)
	}
	if !info.IsFileDialog {
		t.Error("save panel should be flagged as file dialog")
	}
	if info.Bounds.Width != 600 {
		t.Errorf("bounds = %+v", info.Bounds)
	}

	alert := sim.NewNode("AXDialog", "Confirm Delete")
	if DialogInfoFromNode(alert).IsFileDialog {
		t.Error("confirmation dialog should not be a file dialog")
	}

	chooser := sim.NewNode("AXDialog", "Choose Folder")
	if !DialogInfoFromNode(chooser).IsFileDialog {
		t.Error("'Choose' title should flag a file dialog")
	}
}
