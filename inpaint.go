package watermark

import (
	"image"
	"math"
	"math/rand/v2"
)

const (
	borderStride   = 2
	noiseAmplitude = 6.0
)

// BorderInpaint fills rect with the mean color of a surrounding border ring,
// perturbed by seeded noise that is strongest near the region boundary and
// fades toward the center. Used when no reference template is available, so
// there is no per-pixel opacity to guide a smarter reconstruction. The alpha
// channel is forced to fully opaque. A final box blur softens the patch
// boundary. No-op when the border contributes no samples (rect outside the
// image). Mutates img in place.
func BorderInpaint(img *image.RGBA, rect image.Rectangle, rng *rand.Rand) {
	w, h := rect.Dx(), rect.Dy()
	border := max(10, min(w, h)*2/10)
	bounds := img.Bounds()

	var sumR, sumG, sumB float64
	var count int

	sample := func(strip image.Rectangle) {
		strip = strip.Intersect(bounds)
		for y := strip.Min.Y; y < strip.Max.Y; y += borderStride {
			for x := strip.Min.X; x < strip.Max.X; x += borderStride {
				offset := img.PixOffset(x, y)
				sumR += float64(img.Pix[offset])
				sumG += float64(img.Pix[offset+1])
				sumB += float64(img.Pix[offset+2])
				count++
			}
		}
	}

	sample(image.Rect(rect.Min.X-border, rect.Min.Y-border, rect.Max.X+border, rect.Min.Y)) // above
	sample(image.Rect(rect.Min.X-border, rect.Max.Y, rect.Max.X+border, rect.Max.Y+border)) // below
	sample(image.Rect(rect.Min.X-border, rect.Min.Y, rect.Min.X, rect.Max.Y))               // left
	sample(image.Rect(rect.Max.X, rect.Min.Y, rect.Max.X+border, rect.Max.Y))               // right

	if count == 0 {
		return
	}

	meanR := sumR / float64(count)
	meanG := sumG / float64(count)
	meanB := sumB / float64(count)

	halfMin := float64(min(w, h)) / 2.0

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			// Noise fades as the pixel's distance to the nearest edge
			// approaches half the region's smaller side.
			edgeDist := float64(min(col, row, w-1-col, h-1-row))
			amp := noiseAmplitude * (1.0 - math.Min(1.0, edgeDist/halfMin))

			offset := img.PixOffset(rect.Min.X+col, rect.Min.Y+row)
			img.Pix[offset] = clampChannel(meanR + noise(rng, amp))
			img.Pix[offset+1] = clampChannel(meanG + noise(rng, amp))
			img.Pix[offset+2] = clampChannel(meanB + noise(rng, amp))
			img.Pix[offset+3] = 255
		}
	}

	BoxBlur(img, rect, 5, 2)
}

func noise(rng *rand.Rand, amplitude float64) float64 {
	return (rng.Float64()*2 - 1) * amplitude
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
