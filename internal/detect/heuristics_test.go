package detect

import (
	"testing"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/platform/sim"
)

func TestHasTabGroupAncestor(t *testing.T) {
	tabGroup := sim.NewNode("AXTabGroup", "")
	mid := sim.NewNode("AXGroup", "")
	leaf := sim.NewNode("AXRadioButton", "GitHub")
	tabGroup.AddChildren(mid)
	mid.AddChildren(leaf)

	if !HasTabGroupAncestor(leaf) {
		t.Error("leaf under AXTabGroup should have a tab group ancestor")
	}

	plain := sim.NewNode("AXGroup", "")
	orphan := sim.NewNode("AXButton", "OK")
	plain.AddChildren(orphan)
	if HasTabGroupAncestor(orphan) {
		t.Error("leaf under plain group should not have a tab group ancestor")
	}
}

func TestHasTabGroupAncestorByRoleDescription(t *testing.T) {
	parent := sim.NewNode("AXGroup", "").WithRoleDescription("Tab Group")
	leaf := sim.NewNode("AXButton", "")
	parent.AddChildren(leaf)
	if !HasTabGroupAncestor(leaf) {
		t.Error("role description 'Tab Group' should qualify")
	}
}

func TestHasTabGroupAncestorCycleGuard(t *testing.T) {
	a := sim.NewNode("AXGroup", "a")
	b := sim.NewNode("AXGroup", "b")
	a.AddChildren(b) // sets b.parent = a
	b.AddChildren(a) // sets a.parent = b, closing the parent cycle

	leaf := sim.NewNode("AXButton", "")
	b.AddChildren(leaf)
	if HasTabGroupAncestor(leaf) {
		t.Error("cyclic parent chain without tab group should be false, not hang")
	}
}

func TestHasTabKeyword(t *testing.T) {
	tests := []struct {
		label, title string
		want         bool
	}{
		{"New Tab", "", true},
		{"", "Close Tab", true},
		{"tab", "", true},
		{"Tab 3 of 7", "", true},
		{"Table of contents", "", false},
		{"Stable", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		if got := HasTabKeyword(tt.label, tt.title); got != tt.want {
			t.Errorf("HasTabKeyword(%q, %q) = %v, want %v", tt.label, tt.title, got, tt.want)
		}
	}
}

func TestHasTabGeometry(t *testing.T) {
	wb := &model.Bounds{X: 0, Y: 0, Width: 1200, Height: 800}
	tests := []struct {
		name   string
		bounds model.Bounds
		wb     *model.Bounds
		title  string
		want   bool
	}{
		{"classic tab strip", model.Bounds{X: 100, Y: 40, Width: 180, Height: 32}, wb, "GitHub", true},
		{"no window bounds", model.Bounds{X: 100, Y: 40, Width: 180, Height: 32}, nil, "GitHub", false},
		{"too far down", model.Bounds{X: 100, Y: 300, Width: 180, Height: 32}, wb, "GitHub", false},
		{"too tall", model.Bounds{X: 100, Y: 40, Width: 180, Height: 80}, wb, "GitHub", false},
		{"not wide enough", model.Bounds{X: 100, Y: 40, Width: 50, Height: 32}, wb, "GitHub", false},
		{"generic title", model.Bounds{X: 100, Y: 40, Width: 180, Height: 32}, wb, "button", false},
		{"empty title", model.Bounds{X: 100, Y: 40, Width: 180, Height: 32}, wb, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasTabGeometry(tt.bounds, tt.wb, tt.title); got != tt.want {
				t.Errorf("HasTabGeometry = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildFlagsBrowserTabs(t *testing.T) {
	win := sim.NewNode("AXWindow", "Browser").WithBounds(0, 0, 1200, 800)
	tabs := sim.NewNode("AXTabGroup", "").WithBounds(0, 30, 1200, 40)
	tab := sim.NewNode("AXRadioButton", "GitHub").WithBounds(100, 35, 180, 32)
	plain := sim.NewNode("AXButton", "Reload").WithBounds(10, 100, 40, 30)
	tabs.AddChildren(tab)
	win.AddChildren(tabs, plain)

	wb := model.Bounds{X: 0, Y: 0, Width: 1200, Height: 800}
	elements, _, err := NewBuilder().Build(win, &wb)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var tabEl, plainEl *model.DetectedElement
	for i := range elements.All {
		switch elements.All[i].Label {
		case "GitHub":
			tabEl = &elements.All[i]
		case "Reload":
			plainEl = &elements.All[i]
		}
	}
	if tabEl == nil || tabEl.Attributes["tab"] != "true" {
		t.Errorf("tab element should carry tab attribute: %+v", tabEl)
	}
	if plainEl == nil || plainEl.Attributes["tab"] == "true" {
		t.Errorf("toolbar button should not be flagged as tab: %+v", plainEl)
	}
}
