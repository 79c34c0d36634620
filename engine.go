package watermark

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
)

// Method selects the strategy applied to the watermark region.
type Method string

const (
	// MethodRemove reconstructs watermarked pixels from surrounding clean
	// content, guided by the alpha map. The default.
	MethodRemove Method = "remove"
	// MethodUnblend inverts the known alpha blend against the bright logo
	// color. Cheaper than remove but assumes the logo tone.
	MethodUnblend Method = "unblend"
	// MethodInpaint fills the region from a border ring sample. Needs no
	// template; also the fallback for remove/unblend.
	MethodInpaint Method = "inpaint"
	// MethodBlur obscures the region with a box blur.
	MethodBlur Method = "blur"
	// MethodFill paints the region with a solid color.
	MethodFill Method = "fill"
)

// ParseMethod converts a user-supplied string into a Method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodRemove, MethodUnblend, MethodInpaint, MethodBlur, MethodFill:
		return m, nil
	}
	return "", fmt.Errorf("unknown method %q", s)
}

// Settings configures a single Process call. Passed by value; it has no
// persistent identity.
type Settings struct {
	Method     Method
	BlurRadius int        // kernel radius for MethodBlur, 5..50 typical
	CoverColor color.RGBA // paint color for MethodFill
	Opacity    float64    // paint opacity in (0, 1] for MethodFill
	Seed       uint64     // inpaint noise seed; 0 selects the package default
}

// ParseHexColor converts "#RRGGBB" or "RRGGBB" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q, want RRGGBB", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// DefaultSettings returns the settings used when a caller has no preference.
func DefaultSettings() Settings {
	return Settings{
		Method:     MethodRemove,
		BlurRadius: 20,
		CoverColor: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Opacity:    1.0,
	}
}

// TemplateProvider supplies reference captures of the unmarked logo at the
// requested pixel size (48 or 96). Implementations may fetch from disk, the
// network, or embedded assets; errors are treated as the template being
// unavailable and trigger the inpaint fallback.
type TemplateProvider interface {
	FetchTemplate(size int) (image.Image, error)
}

const defaultNoiseSeed = 0x77726d6b // fixed so inpaint output is reproducible

// Engine holds the template provider and caches alpha maps per logo size.
type Engine struct {
	provider  TemplateProvider
	alphaMaps map[int]*AlphaMap
	alphaErrs map[int]error
	once      map[int]*sync.Once
}

// Option customizes an Engine.
type Option func(*Engine)

// WithTemplateProvider replaces the embedded-asset template source.
func WithTemplateProvider(p TemplateProvider) Option {
	return func(e *Engine) { e.provider = p }
}

// NewEngine constructs an Engine with lazily loaded, cached alpha maps.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		provider:  embeddedTemplates{},
		alphaMaps: make(map[int]*AlphaMap),
		alphaErrs: make(map[int]error),
		once: map[int]*sync.Once{
			48: new(sync.Once),
			96: new(sync.Once),
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine struct {
	once sync.Once
	eng  *Engine
}

func getDefaultEngine() *Engine {
	defaultEngine.once.Do(func() {
		defaultEngine.eng = NewEngine()
	})
	return defaultEngine.eng
}

// Process applies the default engine to the provided image.
func Process(img image.Image, settings Settings) (*image.RGBA, error) {
	return getDefaultEngine().Process(img, settings)
}

// Process locates the watermark region, prepares whatever the selected method
// needs, and applies exactly one strategy to the region. The result is
// returned as a new *image.RGBA; the input image is never modified.
//
// Remove and unblend degrade to border-sampling inpainting when the reference
// template is unavailable.
func (e *Engine) Process(img image.Image, settings Settings) (*image.RGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image provided")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	cfg := detectLogoConfig(width, height)
	rect := LocateWatermark(width, height).Add(bounds.Min)
	if err := validateRect(rect, bounds); err != nil {
		return nil, err
	}

	rgba := cloneToRGBA(img)

	switch settings.Method {
	case MethodRemove:
		am, err := e.getAlphaMap(cfg.Size)
		if errors.Is(err, ErrTemplateUnavailable) {
			BorderInpaint(rgba, rect, newNoiseSource(settings.Seed))
			return rgba, nil
		}
		if err != nil {
			return nil, err
		}
		NeighborReconstruct(rgba, rect, am)

	case MethodUnblend:
		am, err := e.getAlphaMap(cfg.Size)
		if errors.Is(err, ErrTemplateUnavailable) {
			BorderInpaint(rgba, rect, newNoiseSource(settings.Seed))
			return rgba, nil
		}
		if err != nil {
			return nil, err
		}
		ReverseBlend(rgba, rect, am)

	case MethodInpaint:
		BorderInpaint(rgba, rect, newNoiseSource(settings.Seed))

	case MethodBlur:
		if settings.BlurRadius < 1 {
			return nil, fmt.Errorf("blur radius %d out of range", settings.BlurRadius)
		}
		BoxBlur(rgba, rect, settings.BlurRadius, 2)

	case MethodFill:
		if settings.Opacity <= 0 || settings.Opacity > 1 {
			return nil, fmt.Errorf("fill opacity %g out of range (0, 1]", settings.Opacity)
		}
		SolidFill(rgba, rect, settings.CoverColor, settings.Opacity)

	default:
		return nil, fmt.Errorf("unknown method %q", settings.Method)
	}

	return rgba, nil
}

// getAlphaMap lazily fetches the template and builds the alpha map for the
// requested logo size. Provider failures surface as ErrTemplateUnavailable.
func (e *Engine) getAlphaMap(size int) (*AlphaMap, error) {
	once, ok := e.once[size]
	if !ok {
		return nil, fmt.Errorf("unsupported watermark size %d: %w", size, ErrTemplateUnavailable)
	}

	once.Do(func() {
		ref, err := e.provider.FetchTemplate(size)
		if err != nil {
			e.alphaErrs[size] = fmt.Errorf("fetch template %d: %w: %v", size, ErrTemplateUnavailable, err)
			return
		}
		e.alphaMaps[size], e.alphaErrs[size] = BuildAlphaMap(ref, size)
	})

	if err := e.alphaErrs[size]; err != nil {
		return nil, err
	}
	return e.alphaMaps[size], nil
}

func newNoiseSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultNoiseSeed
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// cloneToRGBA copies the image into a mutable RGBA buffer.
func cloneToRGBA(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
