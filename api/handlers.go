package api

import (
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	watermark "github.com/fzhang-dev/watermark-restore-go"
)

// ProcessResponse carries the cleaned image back to the client as base64 PNG,
// together with the watermark placement that was operated on.
type ProcessResponse struct {
	Filename string `json:"filename"`
	Data     string `json:"data"`
	BoxX     int    `json:"box_x"`
	BoxY     int    `json:"box_y"`
	BoxW     int    `json:"box_w"`
	BoxH     int    `json:"box_h"`
}

// DetectResponse reports watermark presence without touching the image.
type DetectResponse struct {
	Present bool    `json:"present"`
	Score   float64 `json:"score"`
	BoxX    int     `json:"box_x"`
	BoxY    int     `json:"box_y"`
	BoxW    int     `json:"box_w"`
	BoxH    int     `json:"box_h"`
}

func HandleProcess(c *gin.Context, config *Config) {
	img, filename, ok := readUpload(c, config)
	if !ok {
		return
	}

	settings, err := settingsFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cleaned, err := watermark.Process(img, settings)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	encoded, err := watermark.EncodePNGToBase64(cleaned)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode result"})
		return
	}

	bounds := img.Bounds()
	info := watermark.WatermarkInfo(bounds.Dx(), bounds.Dy())

	c.JSON(http.StatusOK, ProcessResponse{
		Filename: outputFilename(filename),
		Data:     encoded,
		BoxX:     info.Position.Min.X,
		BoxY:     info.Position.Min.Y,
		BoxW:     info.Position.Dx(),
		BoxH:     info.Position.Dy(),
	})
}

func HandleDetect(c *gin.Context, config *Config) {
	img, _, ok := readUpload(c, config)
	if !ok {
		return
	}

	present, score, info, err := watermark.DetectWatermark(img)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, DetectResponse{
		Present: present,
		Score:   score,
		BoxX:    info.Position.Min.X,
		BoxY:    info.Position.Min.Y,
		BoxW:    info.Position.Dx(),
		BoxH:    info.Position.Dy(),
	})
}

// readUpload pulls the multipart "image" field, enforces the size limit, and
// decodes it. On failure it writes the error response itself.
func readUpload(c *gin.Context, config *Config) (image.Image, string, bool) {
	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
		return nil, "", false
	}
	defer file.Close()

	if header.Size > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge,
			gin.H{"error": fmt.Sprintf("Image exceeds %d byte limit", maxSize)})
		return nil, "", false
	}

	img, _, err := watermark.Decode(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported or corrupt image"})
		return nil, "", false
	}

	return img, header.Filename, true
}

func settingsFromForm(c *gin.Context) (watermark.Settings, error) {
	settings := watermark.DefaultSettings()

	if v := c.PostForm("method"); v != "" {
		method, err := watermark.ParseMethod(v)
		if err != nil {
			return watermark.Settings{}, err
		}
		settings.Method = method
	}

	if v := c.PostForm("blur_radius"); v != "" {
		radius, err := strconv.Atoi(v)
		if err != nil || radius < 1 {
			return watermark.Settings{}, fmt.Errorf("invalid blur_radius %q", v)
		}
		settings.BlurRadius = radius
	}

	if v := c.PostForm("cover_color"); v != "" {
		rgba, err := watermark.ParseHexColor(v)
		if err != nil {
			return watermark.Settings{}, err
		}
		settings.CoverColor = rgba
	}

	if v := c.PostForm("opacity"); v != "" {
		opacity, err := strconv.ParseFloat(v, 64)
		if err != nil || opacity <= 0 || opacity > 1 {
			return watermark.Settings{}, fmt.Errorf("invalid opacity %q", v)
		}
		settings.Opacity = opacity
	}

	if v := c.PostForm("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return watermark.Settings{}, fmt.Errorf("invalid seed %q", v)
		}
		settings.Seed = seed
	}

	return settings, nil
}

func outputFilename(original string) string {
	ext := filepath.Ext(original)
	name := strings.TrimSuffix(original, ext)
	if name == "" {
		name = "output"
	}
	return name + "_restored.png"
}
