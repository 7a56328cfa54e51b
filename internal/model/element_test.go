package model

import "testing"

func TestDetectedElementsAdd(t *testing.T) {
	var d DetectedElements
	d.Add(DetectedElement{ID: "B1", Type: TypeButton})
	d.Add(DetectedElement{ID: "T1", Type: TypeTextField})
	d.Add(DetectedElement{ID: "B2", Type: TypeButton})
	d.Add(DetectedElement{ID: "O1", Type: TypeOther})

	if len(d.Buttons) != 2 {
		t.Errorf("Buttons = %d, want 2", len(d.Buttons))
	}
	if len(d.TextFields) != 1 {
		t.Errorf("TextFields = %d, want 1", len(d.TextFields))
	}
	if len(d.Others) != 1 {
		t.Errorf("Others = %d, want 1", len(d.Others))
	}
	if d.Count() != 4 {
		t.Errorf("Count() = %d, want 4", d.Count())
	}

	// All preserves insertion (traversal) order across type groups.
	wantOrder := []string{"B1", "T1", "B2", "O1"}
	for i, want := range wantOrder {
		if d.All[i].ID != want {
			t.Errorf("All[%d].ID = %q, want %q", i, d.All[i].ID, want)
		}
	}
}

func TestFindByID(t *testing.T) {
	var d DetectedElements
	d.Add(DetectedElement{ID: "B1", Type: TypeButton, Label: "OK"})
	d.Add(DetectedElement{ID: "B2", Type: TypeButton, Label: "Cancel"})

	if el := d.FindByID("B2"); el == nil || el.Label != "Cancel" {
		t.Errorf("FindByID(B2) = %v, want Cancel", el)
	}
	if el := d.FindByID("B3"); el != nil {
		t.Errorf("FindByID(B3) = %v, want nil", el)
	}
}

func TestBoundsCenter(t *testing.T) {
	b := Bounds{X: 10, Y: 20, Width: 100, Height: 50}
	want := Point{X: 60, Y: 45}
	if got := b.Center(); got != want {
		t.Errorf("Center() = %+v, want %+v", got, want)
	}
}
