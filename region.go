package watermark

import (
	"fmt"
	"image"
)

type logoConfig struct {
	Size         int
	MarginRight  int
	MarginBottom int
}

// Info captures the watermark size and placement for a given image.
type Info struct {
	Size     int
	Position image.Rectangle
}

// detectLogoConfig selects the watermark parameters: if both width and height
// are greater than 1024, the large 96x96 logo with 64px margins is used;
// otherwise the small 48x48 logo with 32px margins.
func detectLogoConfig(width, height int) logoConfig {
	if width > 1024 && height > 1024 {
		return logoConfig{Size: 96, MarginRight: 64, MarginBottom: 64}
	}
	return logoConfig{Size: 48, MarginRight: 32, MarginBottom: 32}
}

// LocateWatermark computes the watermark rectangle for an image of the given
// dimensions. The result is not clamped: for images smaller than margin+size
// the rectangle has a negative origin, which callers must treat as a boundary
// condition rather than a usable region.
func LocateWatermark(width, height int) image.Rectangle {
	cfg := detectLogoConfig(width, height)
	x := width - cfg.MarginRight - cfg.Size
	y := height - cfg.MarginBottom - cfg.Size
	return image.Rect(x, y, x+cfg.Size, y+cfg.Size)
}

// WatermarkInfo reports the expected watermark size and rectangle for display.
func WatermarkInfo(width, height int) Info {
	cfg := detectLogoConfig(width, height)
	return Info{Size: cfg.Size, Position: LocateWatermark(width, height)}
}

// validateRect rejects watermark rectangles that fall outside the image.
func validateRect(rect, bounds image.Rectangle) error {
	if !rect.In(bounds) {
		return fmt.Errorf("watermark rectangle %v out of bounds %v", rect, bounds)
	}
	return nil
}
