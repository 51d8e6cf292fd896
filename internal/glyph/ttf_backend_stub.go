//go:build no_sdl_ttf
// +build no_sdl_ttf

package glyph

import "fmt"

type ttfBackend struct{}

func newTTFBackend(fontFamily string) (*ttfBackend, error) {
	return nil, fmt.Errorf("SDL_ttf not available - install libsdl2-ttf-dev or drop the no_sdl_ttf build tag")
}

func (tb *ttfBackend) rasterize(r rune, sizePt int) (Glyph, error) {
	return Glyph{}, fmt.Errorf("SDL_ttf backend unavailable")
}
