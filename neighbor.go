package watermark

import (
	"image"
	"math"
)

const (
	// Alpha above this marks a pixel as watermarked and in need of
	// reconstruction.
	maskThreshold = 0.05
	// Ring search stops once this much inverse-square weight has accumulated.
	weightBudget = 8.0
	// Extra search radius beyond the region's larger side.
	ringSlack = 8
)

// NeighborReconstruct rebuilds every watermarked pixel of rect from
// surrounding clean content. A pixel counts as watermarked when its alpha map
// opacity exceeds 0.05. For each such pixel the search walks expanding
// concentric rings and blends every clean pixel it meets, weighted by inverse
// squared distance, so nearby content dominates. Unlike ReverseBlend this makes
// no assumption about the logo color, at a higher cost. A final short box blur
// erases sampling seams. Mutates img in place.
func NeighborReconstruct(img *image.RGBA, rect image.Rectangle, am *AlphaMap) {
	w, h := rect.Dx(), rect.Dy()
	bounds := img.Bounds()

	masked := make([]bool, w*h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			masked[row*w+col] = am.At(col, row) > maskThreshold
		}
	}

	maxRadius := max(w, h) + ringSlack

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if !masked[row*w+col] {
				continue
			}

			px := rect.Min.X + col
			py := rect.Min.Y + row

			var sumR, sumG, sumB, sumW float64

			for radius := 1; radius <= maxRadius && sumW < weightBudget; radius++ {
				stride := max(1, radius/2)

				for _, p := range ringPoints(radius, stride) {
					sx, sy := px+p.X, py+p.Y
					if !(image.Point{X: sx, Y: sy}).In(bounds) {
						continue
					}

					// Skip watermarked pixels so the logo color never feeds
					// back into the result.
					mc, mr := sx-rect.Min.X, sy-rect.Min.Y
					if mc >= 0 && mc < w && mr >= 0 && mr < h && masked[mr*w+mc] {
						continue
					}

					dx, dy := float64(p.X), float64(p.Y)
					dist := math.Sqrt(dx*dx + dy*dy)
					if dist < float64(radius)-1 || dist > float64(radius)+1 {
						continue
					}

					weight := 1.0 / (dist * dist)
					offset := img.PixOffset(sx, sy)
					sumR += weight * float64(img.Pix[offset])
					sumG += weight * float64(img.Pix[offset+1])
					sumB += weight * float64(img.Pix[offset+2])
					sumW += weight
				}
			}

			if sumW == 0 {
				// Pathological edge region with no reachable clean pixels.
				continue
			}

			offset := img.PixOffset(px, py)
			img.Pix[offset] = uint8(math.Round(sumR / sumW))
			img.Pix[offset+1] = uint8(math.Round(sumG / sumW))
			img.Pix[offset+2] = uint8(math.Round(sumB / sumW))
		}
	}

	BoxBlur(img, rect, 3, 2)
}

// ringPoints enumerates the perimeter of the square ring at the given radius,
// sampled at the given stride. The caller filters by Euclidean distance to get
// the circular tolerance band.
func ringPoints(radius, stride int) []image.Point {
	points := make([]image.Point, 0, 8*radius/stride+4)

	for d := -radius; d <= radius; d += stride {
		points = append(points,
			image.Point{X: d, Y: -radius},
			image.Point{X: d, Y: radius})
	}
	for d := -radius + stride; d <= radius-stride; d += stride {
		points = append(points,
			image.Point{X: -radius, Y: d},
			image.Point{X: radius, Y: d})
	}

	return points
}
