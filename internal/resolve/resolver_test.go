package resolve

import (
	"testing"

	"github.com/steipete/peekaboo-go/internal/model"
	"github.com/steipete/peekaboo-go/internal/operr"
	"github.com/steipete/peekaboo-go/internal/platform/sim"
	"github.com/steipete/peekaboo-go/internal/session"
)

// storeWith seeds a store with one session holding the given elements.
func storeWith(t *testing.T, els ...model.DetectedElement) (*session.Store, string) {
	t.Helper()
	s := session.NewStore(0)
	id := s.Create()
	var elements model.DetectedElements
	for _, el := range els {
		elements.Add(el)
	}
	if err := s.Put(id, &model.DetectionResult{SessionID: id, Elements: elements}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	return s, id
}

func button(id, label string, x, y int) model.DetectedElement {
	return model.DetectedElement{
		ID:      id,
		Type:    model.TypeButton,
		Label:   label,
		Bounds:  model.Bounds{X: x, Y: y, Width: 100, Height: 40},
		Enabled: true,
	}
}

func TestResolveCoordinatesPassThrough(t *testing.T) {
	// No desktop, no store: coordinates must resolve without touching either.
	r := New(session.NewStore(0), nil, nil)
	el, p, err := r.Resolve(model.CoordinateTarget(model.Point{X: 42, Y: 7}), "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if el != nil {
		t.Errorf("coordinate target should have nil element, got %v", el)
	}
	if p != (model.Point{X: 42, Y: 7}) {
		t.Errorf("point = %+v, want (42, 7)", p)
	}
}

func TestResolveElementID(t *testing.T) {
	store, id := storeWith(t, button("B1", "OK", 10, 20))
	r := New(store, nil, nil)

	el, p, err := r.Resolve(model.ElementIDTarget("B1"), id)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if el.Label != "OK" {
		t.Errorf("label = %q, want OK", el.Label)
	}
	if p != (model.Point{X: 60, Y: 40}) {
		t.Errorf("point = %+v, want bounds center (60, 40)", p)
	}
}

func TestResolveElementIDMissing(t *testing.T) {
	store, id := storeWith(t, button("B1", "OK", 0, 0))
	r := New(store, &sim.Desktop{}, nil)

	_, _, err := r.Resolve(model.ElementIDTarget("B9"), id)
	if !operr.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound", err)
	}

	// Element IDs resolve against the session catalog only; no session
	// means no match even when a live tree exists.
	_, _, err = r.Resolve(model.ElementIDTarget("B1"), "")
	if !operr.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound without session", err)
	}
}

func TestResolveQueryFirstMatchInCatalogOrder(t *testing.T) {
	store, id := storeWith(t,
		button("B1", "Save As", 0, 0),
		button("B2", "Save", 0, 50),
	)
	r := New(store, nil, nil)

	// Contains-mode takes the first match in catalog order even though a
	// shorter, exact-looking match comes later.
	el, _, err := r.Resolve(model.QueryTarget("Save"), id)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if el.ID != "B1" {
		t.Errorf("resolved %s, want B1 (first in catalog order)", el.ID)
	}
}

func TestResolveExactMatching(t *testing.T) {
	store, id := storeWith(t,
		button("B1", "OK to all", 0, 0),
		button("B2", "OK ", 0, 50),
		button("B3", "ok", 0, 100),
	)
	r := New(store, nil, nil)

	// Exact match is case-insensitive whole-string: "OK " (trailing
	// space) and "OK to all" both lose to "ok".
	el, _, err := r.ResolveExact(model.QueryTarget("OK"), id)
	if err != nil {
		t.Fatalf("ResolveExact: %v", err)
	}
	if el.ID != "B3" {
		t.Errorf("resolved %s, want B3", el.ID)
	}
}

func TestResolveQuerySkipsDisabled(t *testing.T) {
	disabled := button("B1", "OK", 0, 0)
	disabled.Enabled = false
	store, id := storeWith(t, disabled, button("B2", "OK", 0, 50))
	r := New(store, nil, nil)

	el, _, err := r.Resolve(model.QueryTarget("OK"), id)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if el.ID != "B2" {
		t.Errorf("resolved %s, want B2 (disabled skipped)", el.ID)
	}
}

func TestResolveQueryMatchesValueAndTypeName(t *testing.T) {
	field := model.DetectedElement{
		ID: "T1", Type: model.TypeTextField, Value: "hello world",
		Bounds: model.Bounds{X: 0, Y: 0, Width: 100, Height: 40}, Enabled: true,
	}
	store, id := storeWith(t, field)
	r := New(store, nil, nil)

	if el, _, err := r.Resolve(model.QueryTarget("hello"), id); err != nil || el.ID != "T1" {
		t.Errorf("value match failed: el=%v err=%v", el, err)
	}
	if el, _, err := r.Resolve(model.QueryTarget("textField"), id); err != nil || el.ID != "T1" {
		t.Errorf("type name match failed: el=%v err=%v", el, err)
	}
}

func TestResolveQueryLiveSearchFallback(t *testing.T) {
	// Empty catalog; the live tree of the app under the pointer has the
	// element.
	tree := sim.NewNode("AXApplication", "").AddChildren(
		sim.NewNode("AXWindow", "Main").WithBounds(0, 0, 800, 600).AddChildren(
			sim.NewNode("AXButton", "Sign In").WithBounds(10, 10, 100, 40),
		),
	)
	desktop := &sim.Desktop{
		AtPoint: &sim.App{AppName: "Demo", AppPID: 7, TreeRoot: tree},
		Pointer: model.Point{X: 400, Y: 300},
	}
	store, id := storeWith(t) // session exists, catalog empty
	r := New(store, desktop, nil)

	el, p, err := r.Resolve(model.QueryTarget("Sign In"), id)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if el.Label != "Sign In" {
		t.Errorf("label = %q, want Sign In", el.Label)
	}
	if el.ID != "" {
		t.Errorf("live-search element should be uncataloged, got ID %q", el.ID)
	}
	if p != (model.Point{X: 60, Y: 30}) {
		t.Errorf("point = %+v, want (60, 30)", p)
	}
}

func TestResolveQueryNotFound(t *testing.T) {
	store, id := storeWith(t)
	r := New(store, &sim.Desktop{}, nil)

	_, _, err := r.Resolve(model.QueryTarget("Nothing"), id)
	if !operr.IsNotFound(err) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestResolveForTypePerformsFocusingClick(t *testing.T) {
	store, id := storeWith(t, button("B1", "Name", 10, 20))
	in := &sim.Inputter{}
	r := New(store, nil, in)

	_, p, err := r.ResolveForType(model.ElementIDTarget("B1"), id)
	if err != nil {
		t.Fatalf("ResolveForType: %v", err)
	}
	if in.Clicks() != 1 {
		t.Errorf("clicks = %d, want 1 focusing click", in.Clicks())
	}
	if len(in.Events) == 0 || in.Events[0].Kind != "move" {
		t.Error("focusing click should move to the point first")
	}
	for _, e := range in.Events {
		if e.Point != p {
			t.Errorf("event at %+v, want resolved point %+v", e.Point, p)
		}
	}
}

func TestResolveForTypeCoordinates(t *testing.T) {
	in := &sim.Inputter{}
	r := New(session.NewStore(0), nil, in)

	_, p, err := r.ResolveForType(model.CoordinateTarget(model.Point{X: 5, Y: 6}), "")
	if err != nil {
		t.Fatalf("ResolveForType: %v", err)
	}
	if p != (model.Point{X: 5, Y: 6}) {
		t.Errorf("point = %+v", p)
	}
	if in.Clicks() != 1 {
		t.Errorf("clicks = %d, want 1", in.Clicks())
	}
}
