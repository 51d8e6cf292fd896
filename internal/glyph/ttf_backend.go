//go:build !no_sdl_ttf
// +build !no_sdl_ttf

package glyph

import (
	"fmt"
	"sync"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// ttfBackend rasterizes glyphs with SDL_ttf, for callers that want a
// real system font instead of the built-in bitmap set (spec §4.2,
// modeled on the teacher's internal/ui/text_renderer_ttf.go). Each
// point size gets its own loaded ttf.Font, since SDL_ttf bakes size
// into the font handle.
type ttfBackend struct {
	mu    sync.Mutex
	path  string
	fonts map[int]*ttf.Font
}

var systemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"C:/Windows/Fonts/arial.ttf",
}

func newTTFBackend(fontFamily string) (*ttfBackend, error) {
	if err := ttf.Init(); err != nil {
		return nil, fmt.Errorf("init SDL_ttf: %w", err)
	}

	paths := systemFontPaths
	if fontFamily != "" {
		paths = append([]string{fontFamily}, systemFontPaths...)
	}

	var found string
	var lastErr error
	for _, p := range paths {
		f, err := ttf.OpenFont(p, 12)
		if err != nil {
			lastErr = err
			continue
		}
		f.Close()
		found = p
		break
	}
	if found == "" {
		ttf.Quit()
		return nil, fmt.Errorf("no usable font found among %v: %w", paths, lastErr)
	}
	return &ttfBackend{path: found, fonts: make(map[int]*ttf.Font)}, nil
}

func (tb *ttfBackend) fontAtSize(sizePt int) (*ttf.Font, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if f, ok := tb.fonts[sizePt]; ok {
		return f, nil
	}
	f, err := ttf.OpenFont(tb.path, sizePt)
	if err != nil {
		return nil, fmt.Errorf("open font %q at size %d: %w", tb.path, sizePt, err)
	}
	tb.fonts[sizePt] = f
	return f, nil
}

// rasterize renders r as white-on-transparent and thresholds each pixel
// on alpha to produce a Glyph bitmap.
func (tb *ttfBackend) rasterize(r rune, sizePt int) (Glyph, error) {
	font, err := tb.fontAtSize(sizePt)
	if err != nil {
		return Glyph{}, err
	}

	surface, err := font.RenderUTF8Solid(string(r), sdl.Color{R: 255, G: 255, B: 255, A: 255})
	if err != nil {
		return Glyph{}, fmt.Errorf("render glyph %q: %w", r, err)
	}
	defer surface.Free()

	width, height := int(surface.W), int(surface.H)
	if width == 0 || height == 0 {
		return Glyph{Width: 0, Height: height}, nil
	}

	rgba, err := surface.ConvertFormat(sdl.PIXELFORMAT_RGBA32, 0)
	if err != nil {
		return Glyph{}, fmt.Errorf("convert glyph %q surface: %w", r, err)
	}
	defer rgba.Free()

	pixels := rgba.Pixels()
	pitch := int(rgba.Pitch)

	rows := make([][]bool, height)
	for y := 0; y < height; y++ {
		row := make([]bool, width)
		for x := 0; x < width; x++ {
			off := y*pitch + x*4
			alpha := pixels[off+3]
			row[x] = alpha > 127
		}
		rows[y] = row
	}
	return Glyph{Width: width, Height: height, Rows: rows}, nil
}
