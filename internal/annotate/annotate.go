// Package annotate draws catalog element boxes and IDs onto a detection
// screenshot so a human (or agent) can map IDs like "B3" back to pixels.
package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/steipete/peekaboo-go/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	labelColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 220}
)

// File reads a PNG screenshot, draws the catalog onto it, and writes the
// result to outPath.
func File(inPath, outPath string, elements []model.DetectedElement) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open screenshot: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("decode screenshot: %w", err)
	}

	annotated := Image(img, elements)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create annotated screenshot: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, annotated); err != nil {
		return fmt.Errorf("encode annotated screenshot: %w", err)
	}
	return nil
}

// Image draws each element's bounding box and ID label onto a copy of img.
// Element bounds are assumed window-relative in the same pixel space as
// the image (detection normalizes them when a window rect is supplied).
func Image(img image.Image, elements []model.DetectedElement) *image.RGBA {
	rgba := toRGBA(img)
	for _, el := range elements {
		drawBox(rgba, el.Bounds)
		drawLabel(rgba, el.ID, el.Bounds)
	}
	return rgba
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

func drawBox(img *image.RGBA, b model.Bounds) {
	bounds := img.Bounds()
	x1, y1 := b.X, b.Y
	x2, y2 := b.X+b.Width, b.Y+b.Height

	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		img.Set(x, y1, boxColor)
		img.Set(x, y2-1, boxColor)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, boxColor)
		img.Set(x2-1, y, boxColor)
	}
}

// drawLabel renders the element ID at the top-left corner of its box,
// outlined for contrast against arbitrary backgrounds.
func drawLabel(img *image.RGBA, id string, b model.Bounds) {
	if id == "" {
		return
	}
	x := b.X + 2
	y := b.Y + basicfont.Face7x13.Height

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, id, x+dx, y+dy, outlineColor)
		}
	}
	drawString(img, id, x, y, labelColor)
}

func drawString(img *image.RGBA, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(s)
}
