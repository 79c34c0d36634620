package watermark

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/png"
)

//go:embed assets/logo_48.png assets/logo_96.png
var embeddedAssets embed.FS

// embeddedTemplates serves the reference captures compiled into the binary.
// It is the Engine's default TemplateProvider.
type embeddedTemplates struct{}

func (embeddedTemplates) FetchTemplate(size int) (image.Image, error) {
	filename := fmt.Sprintf("assets/logo_%d.png", size)

	data, err := embeddedAssets.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}

	return img, nil
}
