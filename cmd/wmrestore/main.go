package main

import (
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gin-gonic/gin"

	watermark "github.com/fzhang-dev/watermark-restore-go"
	"github.com/fzhang-dev/watermark-restore-go/api"
)

type CleanCmd struct {
	In         string  `arg:"" help:"Path to the watermarked image (png/jpg/webp/bmp/tiff)." type:"existingfile"`
	Out        string  `help:"Output path (defaults to <name>_restored.png)." short:"o"`
	Method     string  `help:"Strategy: remove, unblend, inpaint, blur or fill." default:"remove" enum:"remove,unblend,inpaint,blur,fill"`
	BlurRadius int     `help:"Kernel radius for the blur method." default:"20"`
	Color      string  `help:"Cover color for the fill method (RRGGBB)." default:"ffffff"`
	Opacity    float64 `help:"Cover opacity for the fill method, in (0, 1]." default:"1.0"`
	Seed       uint64  `help:"Noise seed for the inpaint method (0 = built-in default)."`
	Force      bool    `help:"Clean even when no watermark is detected." short:"f"`
}

type DetectCmd struct {
	In string `arg:"" help:"Path to the image to inspect." type:"existingfile"`
}

type ServeCmd struct {
	Addr        string `help:"Listen address." default:":8080"`
	MaxFileSize int64  `help:"Maximum upload size in bytes." default:"52428800"`
}

var cli struct {
	Clean  CleanCmd  `cmd:"" help:"Restore the pixels beneath the watermark and write the result."`
	Detect DetectCmd `cmd:"" help:"Report whether the watermark appears to be present."`
	Serve  ServeCmd  `cmd:"" help:"Run the HTTP restoration service."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("wmrestore"),
		kong.Description("Removes the fixed-position logo watermark from generated images."),
		kong.UsageOnError())
	kctx.FatalIfErrorf(kctx.Run())
}

func (c *CleanCmd) Run() error {
	img, format, err := decodeFile(c.In)
	if err != nil {
		return err
	}

	method, err := watermark.ParseMethod(c.Method)
	if err != nil {
		return err
	}

	present, score, info, err := watermark.DetectWatermark(img)
	if err != nil {
		return fmt.Errorf("detect watermark: %w", err)
	}
	slog.Info("detection", "present", present, "score", fmt.Sprintf("%.2f", score),
		"size", info.Size, "position", info.Position)

	if !present && !c.Force {
		slog.Info("no watermark detected, skipping (use --force to clean anyway)", "file", c.In)
		return nil
	}

	cover, err := watermark.ParseHexColor(c.Color)
	if err != nil {
		return err
	}

	settings := watermark.DefaultSettings()
	settings.Method = method
	settings.BlurRadius = c.BlurRadius
	settings.CoverColor = cover
	settings.Opacity = c.Opacity
	settings.Seed = c.Seed

	start := time.Now()
	cleaned, err := watermark.Process(img, settings)
	if err != nil {
		return fmt.Errorf("process image: %w", err)
	}

	outPath := c.Out
	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(c.In), filepath.Ext(c.In))
		outPath = filepath.Join(filepath.Dir(c.In), base+"_restored.png")
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer outFile.Close()

	if err := watermark.EncodePNG(outFile, cleaned); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	slog.Info("processed", "in", c.In, "format", format, "out", outPath,
		"method", method, "elapsed", time.Since(start))
	return nil
}

func (c *DetectCmd) Run() error {
	img, format, err := decodeFile(c.In)
	if err != nil {
		return err
	}

	present, score, info, err := watermark.DetectWatermark(img)
	if err != nil {
		return fmt.Errorf("detect watermark: %w", err)
	}

	slog.Info("detection", "file", c.In, "format", format, "present", present,
		"score", fmt.Sprintf("%.2f", score), "size", info.Size, "position", info.Position)
	return nil
}

func (c *ServeCmd) Run() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	router.MaxMultipartMemory = c.MaxFileSize

	api.SetupRoutes(router, &api.Config{MaxFileSize: c.MaxFileSize})

	slog.Info("serving", "addr", c.Addr)
	srv := &http.Server{
		Addr:         c.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}

func decodeFile(path string) (img image.Image, format string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	img, format, err = watermark.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("decode input: %w", err)
	}
	return img, format, nil
}
