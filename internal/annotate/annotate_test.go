package annotate

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/steipete/peekaboo-go/internal/model"
)

func solidImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 40, B: 40, A: 255})
		}
	}
	return img
}

func isBoxRed(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0 && b == 0
}

func TestImageDrawsBoxBorders(t *testing.T) {
	src := solidImage(100, 100)
	el := model.DetectedElement{
		ID:     "B1",
		Bounds: model.Bounds{X: 10, Y: 20, Width: 30, Height: 40},
	}

	out := Image(src, []model.DetectedElement{el})

	// Border pixels on all four edges.
	for _, p := range []image.Point{
		{X: 10, Y: 20}, {X: 39, Y: 20}, // top corners
		{X: 10, Y: 59}, {X: 39, Y: 59}, // bottom corners
		{X: 25, Y: 20}, {X: 25, Y: 59}, // mid top/bottom
		{X: 10, Y: 40}, {X: 39, Y: 40}, // mid left/right
	} {
		if !isBoxRed(out.At(p.X, p.Y)) {
			t.Errorf("pixel (%d, %d) = %v, want box color", p.X, p.Y, out.At(p.X, p.Y))
		}
	}

	// Interior stays untouched.
	if isBoxRed(out.At(25, 40)) {
		t.Error("interior pixel should not be painted")
	}

	// The source image is copied, not mutated.
	if isBoxRed(src.At(10, 20)) {
		t.Error("source image mutated")
	}
}

func TestImageDrawsLabel(t *testing.T) {
	src := solidImage(100, 100)
	el := model.DetectedElement{
		ID:     "B1",
		Bounds: model.Bounds{X: 10, Y: 10, Width: 60, Height: 40},
	}

	out := Image(src, []model.DetectedElement{el})

	// The label renders near the top-left corner in white over a nearly
	// black outline (the outline alpha blends over the background, so the
	// check is a darkness threshold, not exact black).
	var white, dark bool
	for y := 10; y < 30; y++ {
		for x := 10; x < 40; x++ {
			r, g, b, _ := out.At(x, y).RGBA()
			if r == 0xffff && g == 0xffff && b == 0xffff {
				white = true
			}
			if r < 0x0fff && g < 0x0fff && b < 0x0fff {
				dark = true
			}
		}
	}
	if !white {
		t.Error("no label pixels found in the corner region")
	}
	if !dark {
		t.Error("no outline pixels found in the corner region")
	}
}

func TestImageClampsOutOfRangeBounds(t *testing.T) {
	src := solidImage(50, 50)
	elements := []model.DetectedElement{
		{ID: "B1", Bounds: model.Bounds{X: -20, Y: -20, Width: 200, Height: 200}},
		{ID: "B2", Bounds: model.Bounds{X: 300, Y: 300, Width: 40, Height: 40}},
		{ID: "B3", Bounds: model.Bounds{X: 10, Y: 10, Width: 0, Height: 0}},
	}

	// Must not panic; the fully off-image and zero-size boxes are skipped.
	out := Image(src, elements)

	if !isBoxRed(out.At(0, 0)) {
		t.Error("oversized box should clamp to the image edge")
	}
}

func TestImageEmptyIDSkipsLabel(t *testing.T) {
	src := solidImage(60, 60)
	el := model.DetectedElement{Bounds: model.Bounds{X: 5, Y: 5, Width: 50, Height: 50}}

	out := Image(src, []model.DetectedElement{el})

	for y := 6; y < 54; y++ {
		for x := 6; x < 54; x++ {
			r, g, b, _ := out.At(x, y).RGBA()
			if r == 0xffff && g == 0xffff && b == 0xffff {
				t.Fatalf("unexpected label pixel at (%d, %d)", x, y)
			}
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "shot.png")
	out := filepath.Join(dir, "shot.annotated.png")

	f, err := os.Create(in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, solidImage(80, 80)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	el := model.DetectedElement{ID: "B1", Bounds: model.Bounds{X: 10, Y: 10, Width: 40, Height: 30}}
	if err := File(in, out, []model.DetectedElement{el}); err != nil {
		t.Fatalf("File: %v", err)
	}

	g, err := os.Open(out)
	if err != nil {
		t.Fatalf("open annotated: %v", err)
	}
	defer g.Close()
	img, err := png.Decode(g)
	if err != nil {
		t.Fatalf("decode annotated: %v", err)
	}
	if !isBoxRed(img.At(10, 10)) {
		t.Error("annotated output missing box pixels")
	}
}

func TestFileMissingInput(t *testing.T) {
	if err := File(filepath.Join(t.TempDir(), "nope.png"), "out.png", nil); err == nil {
		t.Error("missing input should error")
	}
}
