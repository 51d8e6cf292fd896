// Package cdgerr holds the sentinel error kinds shared across the
// rendering pipeline (spec §7). Only ErrInvalidScore is fatal to a render;
// the rest are recovered locally by the component that detects them.
package cdgerr

import "errors"

var (
	// ErrInvalidScore means the input score lacks timing, has negative
	// times, or has non-monotone syllable times within a word. Fatal.
	ErrInvalidScore = errors.New("invalid score")

	// ErrPaletteExhausted means all 16 palette slots hold non-expiring
	// conflicting leases. Recovered: caller falls back to the
	// transition-text slot.
	ErrPaletteExhausted = errors.New("palette exhausted")

	// ErrGlyphMissing means a character has no glyph in any backend.
	// Recovered: substituted with a space glyph.
	ErrGlyphMissing = errors.New("glyph missing")

	// ErrReferencePreludeUnreadable means a reference CD+G file supplied
	// for prelude copying could not be read. Recovered: falls back to a
	// synthesized prelude.
	ErrReferencePreludeUnreadable = errors.New("reference prelude unreadable")

	// ErrGuardLimitReached means padding would exceed 1.1x the target
	// packet count. Recovered: further padding is suppressed.
	ErrGuardLimitReached = errors.New("guard limit reached")

	// ErrTTFUnavailable means the optional SDL_ttf glyph backend was not
	// compiled in (no_sdl_ttf build tag) or failed to initialize.
	ErrTTFUnavailable = errors.New("ttf backend unavailable")
)
