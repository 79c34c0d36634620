package watermark

import (
	"image"
	"image/color"
	"testing"
)

func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / (w - 1)),
				G: uint8(y * 255 / (h - 1)),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

// The blur must neither read from nor write to pixels outside the region.
func TestBoxBlurStaysInsideRegion(t *testing.T) {
	img := gradientImage(120, 120)
	reference := gradientImage(120, 120)
	rect := image.Rect(40, 40, 88, 88)

	BoxBlur(img, rect, 20, 2)

	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			if (image.Point{X: x, Y: y}).In(rect) {
				continue
			}
			if img.RGBAAt(x, y) != reference.RGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) outside region changed", x, y)
			}
		}
	}
}

// Edge pixels clamp to the region's own bounds: content just outside the
// region must not influence the result. Two images that agree inside the
// region but differ outside blur to identical regions.
func TestBoxBlurNoBleedFromOutside(t *testing.T) {
	rect := image.Rect(40, 40, 88, 88)

	a := gradientImage(120, 120)
	b := gradientImage(120, 120)
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			if !(image.Point{X: x, Y: y}).In(rect) {
				b.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}

	BoxBlur(a, rect, 15, 2)
	BoxBlur(b, rect, 15, 2)

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) influenced by content outside the region", x, y)
			}
		}
	}
}

// Repeated blurring converges: the second application moves pixels less than
// the first.
func TestBoxBlurConverges(t *testing.T) {
	rect := image.Rect(40, 40, 88, 88)

	first := gradientImage(120, 120)
	original := gradientImage(120, 120)
	BoxBlur(first, rect, 10, 1)
	d1 := totalDiff(original, first, rect)

	second := cloneToRGBA(first)
	BoxBlur(second, rect, 10, 1)
	d2 := totalDiff(first, second, rect)

	if d2 >= d1 {
		t.Fatalf("second blur changed more than the first: %d >= %d", d2, d1)
	}
}

func TestBoxBlurUniformInvariant(t *testing.T) {
	c := color.RGBA{R: 77, G: 77, B: 77, A: 255}
	img := uniformImage(64, 64, c)
	BoxBlur(img, image.Rect(8, 8, 56, 56), 9, 3)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if got := img.RGBAAt(x, y); got != c {
				t.Fatalf("uniform image changed at (%d,%d): %v", x, y, got)
			}
		}
	}
}

func totalDiff(a, b *image.RGBA, rect image.Rectangle) int {
	var sum int
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			ca, cb := a.RGBAAt(x, y), b.RGBAAt(x, y)
			sum += abs(int(ca.R)-int(cb.R)) + abs(int(ca.G)-int(cb.G)) + abs(int(ca.B)-int(cb.B))
		}
	}
	return sum
}
