// Package config holds the renderer's external configuration surface
// (spec §6.2), with defaults set the way the teacher's cmd/emulator and
// cmd/sprite_editor flag defaults are chosen (a DefaultConfig()
// constructor rather than zero-value reliance).
package config

import "cdgen/internal/color"

// PreludeMode selects how the prelude builder produces its initial
// packet sequence (spec §4.9).
type PreludeMode int

const (
	// PreludeSynthesize builds the standard palette/border/memory-preset
	// sequence.
	PreludeSynthesize PreludeMode = iota
	// PreludeCopyReference copies the leading packets of an existing
	// CD+G stream verbatim.
	PreludeCopyReference
)

// DefaultFontSize is the point size used when Config.FontSize is unset.
const DefaultFontSize = 16

// PacketsPerSecond is the fixed CD+G playback rate (spec §6.1).
const PacketsPerSecond = 300

// Config configures one rendering job (spec §6.2).
type Config struct {
	FontFamily string // font file tried first by the TTF backend; ignored by the built-in font
	FontSize   int    // point size; 0 means DefaultFontSize

	BackgroundColor   color.RGB12
	ActiveColor       color.RGB12
	TransitionColor   color.RGB12
	BorderColor       color.RGB12
	BackgroundIndex   uint8 // palette slot holding BackgroundColor
	ActiveIndex       uint8 // reserved preferred slot for ActiveColor
	TransitionIndex   uint8 // reserved preferred slot for TransitionColor

	PreludeMode       PreludeMode
	ReferenceCDGPath  string
	ReferenceCDGBytes []byte // used instead of ReferenceCDGPath if non-nil

	UseTTF bool // selects glyph.BackendTTF instead of the built-in font
}

// DefaultConfig returns a Config with the spec's default colors and
// sizes: black background, white active-syllable color, light-gray
// transition color, 16pt built-in font, synthesized prelude.
func DefaultConfig() Config {
	pal := color.DefaultPalette()
	return Config{
		FontSize:        DefaultFontSize,
		BackgroundColor: pal[0],
		ActiveColor:     pal[3],
		TransitionColor: pal[2],
		BorderColor:     pal[0],
		BackgroundIndex: 0,
		ActiveIndex:     1,
		TransitionIndex: 2,
		PreludeMode:     PreludeSynthesize,
	}
}

// EffectiveFontSize returns FontSize or DefaultFontSize if unset.
func (c Config) EffectiveFontSize() int {
	if c.FontSize <= 0 {
		return DefaultFontSize
	}
	return c.FontSize
}
