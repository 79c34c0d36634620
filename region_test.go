package watermark

import (
	"image"
	"testing"
)

func TestLocateWatermark(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		wantSize      int
		wantMin       image.Point
	}{
		{name: "large_square", width: 2048, height: 2048, wantSize: 96, wantMin: image.Pt(1888, 1888)},
		{name: "small_square", width: 500, height: 500, wantSize: 48, wantMin: image.Pt(420, 420)},
		{name: "boundary_1024", width: 1024, height: 1024, wantSize: 48, wantMin: image.Pt(944, 944)},
		{name: "just_over_1024", width: 1025, height: 1025, wantSize: 96, wantMin: image.Pt(865, 865)},
		{name: "wide_but_short", width: 4000, height: 800, wantSize: 48, wantMin: image.Pt(3920, 720)},
		{name: "tall_but_narrow", width: 800, height: 4000, wantSize: 48, wantMin: image.Pt(720, 3920)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rect := LocateWatermark(tc.width, tc.height)
			if rect.Dx() != tc.wantSize || rect.Dy() != tc.wantSize {
				t.Fatalf("size = %dx%d, want %d", rect.Dx(), rect.Dy(), tc.wantSize)
			}
			if rect.Min != tc.wantMin {
				t.Fatalf("origin = %v, want %v", rect.Min, tc.wantMin)
			}
		})
	}
}

// Undersized images yield a negative origin rather than a clamped or empty
// rectangle. Callers are expected to treat this as a boundary condition.
func TestLocateWatermarkUndersized(t *testing.T) {
	rect := LocateWatermark(60, 60)
	if rect.Min.X >= 0 || rect.Min.Y >= 0 {
		t.Fatalf("expected negative origin for 60x60 image, got %v", rect.Min)
	}
	if rect.Dx() != 48 || rect.Dy() != 48 {
		t.Fatalf("size = %dx%d, want 48", rect.Dx(), rect.Dy())
	}
}

func TestWatermarkInfo(t *testing.T) {
	info := WatermarkInfo(2048, 2048)
	if info.Size != 96 {
		t.Fatalf("size = %d, want 96", info.Size)
	}
	if want := image.Rect(1888, 1888, 1984, 1984); info.Position != want {
		t.Fatalf("position = %v, want %v", info.Position, want)
	}
}
