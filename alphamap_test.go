package watermark

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestBuildAlphaMapMaxChannel(t *testing.T) {
	ref := image.NewRGBA(image.Rect(0, 0, 48, 48))
	ref.SetRGBA(0, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	ref.SetRGBA(1, 0, color.RGBA{R: 10, G: 200, B: 30, A: 255})
	ref.SetRGBA(2, 0, color.RGBA{R: 0, G: 0, B: 0, A: 255})

	am, err := BuildAlphaMap(ref, 48)
	if err != nil {
		t.Fatalf("BuildAlphaMap: %v", err)
	}

	cases := []struct {
		x, y int
		want float32
	}{
		{x: 0, y: 0, want: 1.0},
		{x: 1, y: 0, want: 200.0 / 255.0},
		{x: 2, y: 0, want: 0.0},
	}
	for _, tc := range cases {
		got := am.At(tc.x, tc.y)
		if diff := got - tc.want; diff > 0.005 || diff < -0.005 {
			t.Fatalf("alpha at (%d,%d) = %f, want %f", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestBuildAlphaMapWrongSize(t *testing.T) {
	ref := image.NewRGBA(image.Rect(0, 0, 48, 48))

	if _, err := BuildAlphaMap(ref, 96); !errors.Is(err, ErrTemplateUnavailable) {
		t.Fatalf("expected ErrTemplateUnavailable for size mismatch, got %v", err)
	}
	if _, err := BuildAlphaMap(nil, 48); !errors.Is(err, ErrTemplateUnavailable) {
		t.Fatalf("expected ErrTemplateUnavailable for nil template, got %v", err)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, size := range []int{48, 96} {
		ref, err := embeddedTemplates{}.FetchTemplate(size)
		if err != nil {
			t.Fatalf("FetchTemplate(%d): %v", size, err)
		}
		if _, err := BuildAlphaMap(ref, size); err != nil {
			t.Fatalf("BuildAlphaMap(%d): %v", size, err)
		}
	}

	if _, err := (embeddedTemplates{}).FetchTemplate(64); err == nil {
		t.Fatalf("expected error for unshipped template size")
	}
}
