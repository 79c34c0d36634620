package watermark

import (
	"image"
	"math"
)

const (
	// Opacities below this leave the pixel untouched; inverting a negligible
	// blend only adds rounding noise.
	alphaThreshold = 0.002
	// Upper clamp on the blend alpha before inversion, keeping (1-alpha) away
	// from zero. Pixels whose true alpha exceeds the clamp are recovered only
	// approximately.
	maxAlpha  = 0.99
	logoValue = 255.0
)

// ReverseBlend inverts the assumed forward blend observed = a*255 + (1-a)*orig
// for every pixel of rect, using the per-pixel alpha from the map. RGB channels
// are recovered independently; the alpha channel is left unchanged. Mutates img
// in place.
func ReverseBlend(img *image.RGBA, rect image.Rectangle, am *AlphaMap) {
	for row := 0; row < rect.Dy(); row++ {
		for col := 0; col < rect.Dx(); col++ {
			alpha := float64(am.At(col, row))
			if alpha < alphaThreshold {
				continue
			}
			if alpha > maxAlpha {
				alpha = maxAlpha
			}

			oneMinusAlpha := 1.0 - alpha
			offset := img.PixOffset(rect.Min.X+col, rect.Min.Y+row)

			for c := 0; c < 3; c++ {
				observed := float64(img.Pix[offset+c])
				original := (observed - alpha*logoValue) / oneMinusAlpha

				original = math.Max(0, math.Min(255, original))
				img.Pix[offset+c] = uint8(math.Round(original))
			}
		}
	}
}
