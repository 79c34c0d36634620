package watermark

import (
	"image"
	"image/color"
	"math"
)

// SolidFill alpha-composites the given color at the given opacity over every
// pixel of rect. Pure paint, no reconstruction semantics. Opacity is clamped
// to [0, 1]. Mutates img in place.
func SolidFill(img *image.RGBA, rect image.Rectangle, c color.RGBA, opacity float64) {
	opacity = math.Max(0, math.Min(1, opacity))
	cover := [3]float64{float64(c.R), float64(c.G), float64(c.B)}

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			offset := img.PixOffset(x, y)
			for i := 0; i < 3; i++ {
				base := float64(img.Pix[offset+i])
				img.Pix[offset+i] = uint8(math.Round(opacity*cover[i] + (1-opacity)*base))
			}
		}
	}
}
