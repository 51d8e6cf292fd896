package scheduler

import "cdgen/internal/glyph"

// glyphPlacement records where one character of a TrackedText was
// rasterized, so change_color can re-render just that glyph.
type glyphPlacement struct {
	originX, originY int
	g                glyph.Glyph
}

// TrackedText is the scheduler's memory of one live show_text (spec §3).
type TrackedText struct {
	Text    string
	OriginX int
	OriginY int
	Color   int // the logical color index currently applied (compile.LogicalColor)

	glyphs []glyphPlacement // per character, in text order
	tiles  map[tileCoord]bool
}

type tileCoord struct{ x, y int }
