package detect

import (
	"testing"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/operr"
	"github.com/steipete/peekaboo-go/internal/platform/sim"
)

func testWindow() *sim.Node {
	return sim.NewNode("AXWindow", "Main").WithBounds(0, 0, 800, 600)
}

func TestBuildAssignsTypePrefixedIDs(t *testing.T) {
	win := testWindow().AddChildren(
		sim.NewNode("AXButton", "OK").WithBounds(10, 10, 80, 30),
		sim.NewNode("AXTextField", "").WithLabel("Name").WithBounds(10, 50, 200, 30),
		sim.NewNode("AXButton", "Cancel").WithBounds(100, 10, 80, 30),
	)

	b := NewBuilder()
	elements, _, err := b.Build(win, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(elements.Buttons) != 2 {
		t.Fatalf("buttons = %d, want 2", len(elements.Buttons))
	}
	if elements.Buttons[0].ID != "B1" || elements.Buttons[1].ID != "B2" {
		t.Errorf("button IDs = %s, %s, want B1, B2", elements.Buttons[0].ID, elements.Buttons[1].ID)
	}
	if len(elements.TextFields) != 1 || elements.TextFields[0].ID != "T1" {
		t.Errorf("text field IDs wrong: %+v", elements.TextFields)
	}
	if elements.TextFields[0].Label != "Name" {
		t.Errorf("text field label = %q, want Name", elements.TextFields[0].Label)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	build := func() model.DetectedElements {
		win := testWindow().AddChildren(
			sim.NewNode("AXButton", "One").WithBounds(10, 10, 80, 30),
			sim.NewNode("AXGroup", "").WithBounds(10, 50, 400, 300).AddChildren(
				sim.NewNode("AXButton", "Two").WithBounds(20, 60, 80, 30),
				sim.NewNode("AXLink", "Docs").WithBounds(20, 100, 80, 20),
			),
			sim.NewNode("AXButton", "Three").WithBounds(10, 400, 80, 30),
		)
		elements, _, err := NewBuilder().Build(win, nil)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		return elements
	}

	first := build()
	second := build()
	if first.Count() != second.Count() {
		t.Fatalf("counts differ: %d vs %d", first.Count(), second.Count())
	}
	for i := range first.All {
		if first.All[i].ID != second.All[i].ID || first.All[i].Label != second.All[i].Label {
			t.Errorf("element %d differs: %v vs %v", i, first.All[i], second.All[i])
		}
	}
	// Same tree, same walk: buttons numbered in traversal order.
	wantButtons := []string{"One", "Two", "Three"}
	for i, want := range wantButtons {
		if first.Buttons[i].Label != want {
			t.Errorf("Buttons[%d].Label = %q, want %q", i, first.Buttons[i].Label, want)
		}
	}
}

func TestBuildNilRoot(t *testing.T) {
	_, _, err := NewBuilder().Build(nil, nil)
	if !operr.IsNotFound(err) {
		t.Errorf("Build(nil) error = %v, want NotFound", err)
	}
}

func TestBuildDiscardsTinyAndUnboundedNodes(t *testing.T) {
	win := testWindow().AddChildren(
		sim.NewNode("AXButton", "NoBounds"),
		sim.NewNode("AXButton", "Tiny").WithBounds(10, 10, 5, 5),
		sim.NewNode("AXButton", "FiveWide").WithBounds(10, 30, 5, 30),
		sim.NewNode("AXButton", "Visible").WithBounds(10, 70, 6, 6),
	)

	elements, _, err := NewBuilder().Build(win, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(elements.Buttons) != 1 || elements.Buttons[0].Label != "Visible" {
		t.Errorf("buttons = %+v, want only Visible (width and height must exceed 5)", elements.Buttons)
	}
}

func TestBuildWalksChildrenOfDiscardedNodes(t *testing.T) {
	// A zero-size container is dropped but its children still catalog.
	win := testWindow().AddChildren(
		sim.NewNode("AXGroup", "").AddChildren(
			sim.NewNode("AXButton", "Inside").WithBounds(10, 10, 80, 30),
		),
	)

	elements, _, err := NewBuilder().Build(win, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(elements.Buttons) != 1 || elements.Buttons[0].Label != "Inside" {
		t.Errorf("buttons = %+v, want Inside", elements.Buttons)
	}
}

func TestBuildSurvivesCycles(t *testing.T) {
	a := sim.NewNode("AXGroup", "a").WithBounds(0, 0, 100, 100)
	bNode := sim.NewNode("AXGroup", "b").WithBounds(0, 0, 100, 100)
	a.SetChildren(bNode)
	bNode.SetChildren(a) // cycle

	win := testWindow()
	win.SetChildren(a)

	elements, warnings, err := NewBuilder().Build(win, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if elements.Count() != 3 { // window + a + b, each seen once
		t.Errorf("count = %d, want 3", elements.Count())
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one cycle warning", warnings)
	}
}

func TestBuildDepthBound(t *testing.T) {
	deep := sim.NewNode("AXButton", "TooDeep").WithBounds(10, 10, 80, 30)
	cur := deep
	for i := 0; i < 25; i++ {
		parent := sim.NewNode("AXGroup", "").WithBounds(0, 0, 500, 500)
		parent.AddChildren(cur)
		cur = parent
	}

	elements, _, err := NewBuilder().Build(cur, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(elements.Buttons) != 0 {
		t.Errorf("button beyond depth bound should be skipped, got %+v", elements.Buttons)
	}
}

func TestBuildWindowRelativeBounds(t *testing.T) {
	win := sim.NewNode("AXWindow", "Main").WithBounds(100, 200, 800, 600).AddChildren(
		sim.NewNode("AXButton", "OK").WithBounds(150, 260, 80, 30),
	)
	wb := model.Bounds{X: 100, Y: 200, Width: 800, Height: 600}

	elements, _, err := NewBuilder().Build(win, &wb)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := elements.Buttons[0].Bounds
	if got.X != 50 || got.Y != 60 {
		t.Errorf("bounds = %+v, want window-relative (50, 60)", got)
	}
	if got.Width != 80 || got.Height != 30 {
		t.Errorf("size changed: %+v", got)
	}
}

func TestLabelFallbackChain(t *testing.T) {
	tests := []struct {
		name string
		node *sim.Node
		want string
	}{
		{
			"label wins over title",
			sim.NewNode("AXButton", "the title").WithLabel("the label").WithBounds(0, 0, 50, 20),
			"the label",
		},
		{
			"title wins over value",
			sim.NewNode("AXButton", "the title").WithValue("the value").WithBounds(0, 0, 50, 20),
			"the title",
		},
		{
			"value wins over role description",
			sim.NewNode("AXButton", "").WithValue("the value").WithRoleDescription("button").WithBounds(0, 0, 50, 20),
			"the value",
		},
		{
			"role description as last resort",
			sim.NewNode("AXButton", "").WithRoleDescription("button").WithBounds(0, 0, 50, 20),
			"button",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := labelFor(tt.node); got != tt.want {
				t.Errorf("labelFor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestButtonBorrowsStaticTextLabel(t *testing.T) {
	btn := sim.NewNode("AXButton", "").WithBounds(0, 0, 80, 30).AddChildren(
		sim.NewNode("AXGroup", "").AddChildren(
			sim.NewNode("AXStaticText", "").WithValue("Submit"),
		),
	)
	if got := labelFor(btn); got != "Submit" {
		t.Errorf("labelFor = %q, want Submit", got)
	}

	// Non-buttons never borrow descendant text.
	grp := sim.NewNode("AXGroup", "").WithBounds(0, 0, 80, 30).AddChildren(
		sim.NewNode("AXStaticText", "").WithValue("Submit"),
	)
	if got := labelFor(grp); got != "" {
		t.Errorf("group labelFor = %q, want empty", got)
	}
}

func TestActionableAttribute(t *testing.T) {
	win := testWindow().AddChildren(
		sim.NewNode("AXButton", "OK").WithBounds(10, 10, 80, 30),
		sim.NewNode("AXGroup", "g").WithBounds(10, 50, 80, 30).WithActions("AXPress"),
		sim.NewNode("AXGroup", "h").WithBounds(10, 90, 80, 30),
	)
	elements, _, err := NewBuilder().Build(win, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	byLabel := func(label string) *model.DetectedElement {
		for i := range elements.All {
			if elements.All[i].Label == label {
				return &elements.All[i]
			}
		}
		t.Fatalf("element %q not cataloged", label)
		return nil
	}
	if byLabel("OK").Attributes["actionable"] != "true" {
		t.Error("button role should be actionable")
	}
	if byLabel("g").Attributes["actionable"] != "true" {
		t.Error("press action should make a group actionable")
	}
	if byLabel("h").Attributes["actionable"] == "true" {
		t.Error("plain group should not be actionable")
	}
}
