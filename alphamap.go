package watermark

import (
	"errors"
	"fmt"
	"image"
)

// ErrTemplateUnavailable reports that a reference template could not be
// obtained or does not match the expected logo size. Callers recover by
// selecting a strategy that does not need an alpha map.
var ErrTemplateUnavailable = errors.New("watermark template unavailable")

// AlphaMap is a per-pixel opacity template derived from a reference capture of
// the unmarked logo. Values are row-major in [0, 1] and immutable after
// construction.
type AlphaMap struct {
	Width  int
	Height int
	Values []float32
}

// At returns the opacity at (x, y) relative to the map origin.
func (m *AlphaMap) At(x, y int) float32 {
	return m.Values[y*m.Width+x]
}

// BuildAlphaMap converts a reference template into an alpha map. The template
// depicts the logo in a light tone over a neutral background, so the maximum
// RGB channel per pixel approximates how much of that pixel is logo. The map
// is therefore reusable across arbitrary source images of the same size.
//
// Returns ErrTemplateUnavailable when the template dimensions do not match the
// expected logo size.
func BuildAlphaMap(ref image.Image, size int) (*AlphaMap, error) {
	if ref == nil {
		return nil, fmt.Errorf("nil template: %w", ErrTemplateUnavailable)
	}

	bounds := ref.Bounds()
	if bounds.Dx() != size || bounds.Dy() != size {
		return nil, fmt.Errorf("template is %dx%d, want %dx%d: %w",
			bounds.Dx(), bounds.Dy(), size, size, ErrTemplateUnavailable)
	}

	m := &AlphaMap{
		Width:  size,
		Height: size,
		Values: make([]float32, size*size),
	}

	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := ref.At(x, y).RGBA()

			max := r
			if g > max {
				max = g
			}
			if b > max {
				max = b
			}

			m.Values[idx] = float32(max) / 65535.0
			idx++
		}
	}

	return m, nil
}
