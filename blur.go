package watermark

import (
	"image"

	"github.com/fzhang-dev/watermark-restore-go/parallel"
)

// BoxBlur runs the given number of sequential box-blur passes over rect, each
// with effective kernel radius max(1, radius/passes). Every pass reads a
// snapshot of the region and averages the full (2r+1)x(2r+1) neighborhood per
// pixel, all four channels included. Neighbor coordinates clamp to the region's
// own bounds, so the blur neither reads nor writes pixels outside rect.
// Mutates img in place.
func BoxBlur(img *image.RGBA, rect image.Rectangle, radius, passes int) {
	if passes < 1 || rect.Empty() {
		return
	}

	w, h := rect.Dx(), rect.Dy()
	r := max(1, radius/passes)

	snapshot := make([]uint8, w*h*4)
	pool := parallel.Start(0)
	defer pool.Stop()

	for pass := 0; pass < passes; pass++ {
		for row := 0; row < h; row++ {
			srcOff := img.PixOffset(rect.Min.X, rect.Min.Y+row)
			copy(snapshot[row*w*4:(row+1)*w*4], img.Pix[srcOff:srcOff+w*4])
		}

		// Rows only read the snapshot, so they are independent.
		for row := 0; row < h; row++ {
			pool.Do(func() {
				blurRow(img, rect, snapshot, w, h, r, row)
			})
		}
		pool.Flush()
	}
}

func blurRow(img *image.RGBA, rect image.Rectangle, snapshot []uint8, w, h, r, row int) {
	for col := 0; col < w; col++ {
		var sum [4]int
		for dy := -r; dy <= r; dy++ {
			sy := min(max(row+dy, 0), h-1)
			for dx := -r; dx <= r; dx++ {
				sx := min(max(col+dx, 0), w-1)
				off := (sy*w + sx) * 4
				sum[0] += int(snapshot[off])
				sum[1] += int(snapshot[off+1])
				sum[2] += int(snapshot[off+2])
				sum[3] += int(snapshot[off+3])
			}
		}

		kernel := (2*r + 1) * (2*r + 1)
		offset := img.PixOffset(rect.Min.X+col, rect.Min.Y+row)
		for c := 0; c < 4; c++ {
			img.Pix[offset+c] = uint8((sum[c] + kernel/2) / kernel)
		}
	}
}
