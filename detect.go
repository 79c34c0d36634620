package watermark

import (
	"errors"
	"fmt"
	"image"

	"gonum.org/v1/gonum/stat"
)

const (
	// Minimum mean-luma lift of the watermark rectangle over its surrounding
	// band. The logo is rendered in a light tone, so a present watermark
	// brightens the rectangle noticeably.
	detectionLumaThreshold = 6.0
	// Minimum normalized cross-correlation between the rectangle's luma and
	// the alpha template. Guards against bright but unrelated content.
	detectionCorrelationThreshold = 0.2
)

// DetectWatermark estimates watermark presence using the default engine.
func DetectWatermark(img image.Image) (present bool, score float64, info Info, err error) {
	return getDefaultEngine().Detect(img)
}

// Detect estimates whether the visible watermark is present. It compares the
// mean luma inside the expected rectangle against a surrounding band and, when
// the reference template is available, additionally correlates the rectangle's
// luma pattern with the alpha map. Both tests must pass; without a template
// the luma lift decides alone.
func (e *Engine) Detect(img image.Image) (present bool, score float64, info Info, err error) {
	if img == nil {
		return false, 0, Info{}, fmt.Errorf("nil image provided")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return false, 0, Info{}, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	cfg := detectLogoConfig(width, height)
	rect := LocateWatermark(width, height).Add(bounds.Min)
	if err := validateRect(rect, bounds); err != nil {
		return false, 0, Info{}, err
	}

	// Surrounding band approximating the background without the watermark.
	band := cfg.Size / 3
	if band < 8 {
		band = 8
	}
	outer := rect.Inset(-band).Intersect(bounds)

	wmMean, wmCount := meanLuma(img, rect, image.Rectangle{})
	bgMean, bgCount := meanLuma(img, outer, rect)
	if wmCount == 0 || bgCount == 0 {
		return false, 0, Info{}, fmt.Errorf("insufficient pixels to evaluate watermark")
	}

	score = wmMean - bgMean
	present = score > detectionLumaThreshold

	if present {
		am, amErr := e.getAlphaMap(cfg.Size)
		if amErr != nil && !errors.Is(amErr, ErrTemplateUnavailable) {
			return false, 0, Info{}, amErr
		}
		if amErr == nil {
			corr := correlateLuma(img, rect, am)
			present = corr > detectionCorrelationThreshold
		}
	}

	info = Info{Size: cfg.Size, Position: rect.Sub(bounds.Min)}
	return present, score, info, nil
}

// correlateLuma computes the Pearson correlation between the rectangle's luma
// values and the alpha template.
func correlateLuma(img image.Image, rect image.Rectangle, am *AlphaMap) float64 {
	n := rect.Dx() * rect.Dy()
	luma := make([]float64, 0, n)
	tmpl := make([]float64, 0, n)

	for row := 0; row < rect.Dy(); row++ {
		for col := 0; col < rect.Dx(); col++ {
			r, g, b, _ := img.At(rect.Min.X+col, rect.Min.Y+row).RGBA()
			luma = append(luma, 0.2126*float64(r)/257.0+0.7152*float64(g)/257.0+0.0722*float64(b)/257.0)
			tmpl = append(tmpl, float64(am.At(col, row)))
		}
	}

	return stat.Correlation(luma, tmpl, nil)
}

// meanLuma computes the average luma for pixels in region. If exclude is not
// empty, pixels inside exclude are skipped.
func meanLuma(img image.Image, region image.Rectangle, exclude image.Rectangle) (float64, int) {
	var sum float64
	var count int

	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			if exclude != (image.Rectangle{}) && (image.Point{X: x, Y: y}).In(exclude) {
				continue
			}

			r, g, b, _ := img.At(x, y).RGBA()
			luma := 0.2126*float64(r)/257.0 + 0.7152*float64(g)/257.0 + 0.0722*float64(b)/257.0
			sum += luma
			count++
		}
	}

	if count == 0 {
		return 0, 0
	}
	return sum / float64(count), count
}
