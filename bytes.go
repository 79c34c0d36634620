package watermark

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
)

// ProcessBytes cleans raw image bytes with the default engine and returns the
// result encoded as PNG, alongside the watermark placement.
func ProcessBytes(data []byte, settings Settings) ([]byte, Info, error) {
	if len(data) == 0 {
		return nil, Info{}, fmt.Errorf("empty image data")
	}

	img, _, err := DecodeBytes(data)
	if err != nil {
		return nil, Info{}, err
	}

	cleaned, err := Process(img, settings)
	if err != nil {
		return nil, Info{}, err
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, cleaned); err != nil {
		return nil, Info{}, err
	}

	bounds := img.Bounds()
	return buf.Bytes(), WatermarkInfo(bounds.Dx(), bounds.Dy()), nil
}

// DetectWatermarkBytes checks raw image bytes for the watermark without
// performing any cleanup.
func DetectWatermarkBytes(data []byte) (present bool, score float64, info Info, err error) {
	if len(data) == 0 {
		return false, 0, Info{}, fmt.Errorf("empty image data")
	}

	img, _, err := DecodeBytes(data)
	if err != nil {
		return false, 0, Info{}, err
	}

	return DetectWatermark(img)
}

// DecodeBase64Image decodes a base64-encoded image (optionally a data URL).
func DecodeBase64Image(input string) (image.Image, string, error) {
	raw := stripDataPrefix(input)

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64: %w", err)
	}

	return DecodeBytes(data)
}

// EncodePNGToBase64 encodes an image as PNG and returns a base64 string.
func EncodePNGToBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ProcessBase64 cleans a base64-encoded image and returns the result as base64
// PNG, for hosts that move images as data URLs.
func ProcessBase64(input string, settings Settings) (string, Info, error) {
	img, _, err := DecodeBase64Image(input)
	if err != nil {
		return "", Info{}, err
	}

	cleaned, err := Process(img, settings)
	if err != nil {
		return "", Info{}, err
	}

	output, err := EncodePNGToBase64(cleaned)
	if err != nil {
		return "", Info{}, err
	}

	bounds := img.Bounds()
	return output, WatermarkInfo(bounds.Dx(), bounds.Dy()), nil
}

func stripDataPrefix(input string) string {
	if strings.HasPrefix(strings.ToLower(input), "data:") {
		if idx := strings.Index(input, ","); idx != -1 {
			return input[idx+1:]
		}
	}
	return input
}
