// Package scheduler implements the renderer core (C8, spec §4.8): it
// executes a compiled command list against a VRAM model and palette
// manager, emitting the full CD+G packet stream at 300 packets/second.
// Grounded on the teacher's internal/clock.MasterClock cooperative
// single-threaded stepping model (no goroutines, no waits) and
// internal/ppu's register-write-triggers-side-effect handler dispatch
// (here, one handler per compile.Kind instead of one per MMIO address).
package scheduler

import (
	"fmt"
	"math"
	"os"
	"sort"

	"cdgen/internal/cdgerr"
	"cdgen/internal/color"
	"cdgen/internal/compile"
	"cdgen/internal/config"
	"cdgen/internal/glyph"
	"cdgen/internal/log"
	"cdgen/internal/packet"
	"cdgen/internal/palette"
	"cdgen/internal/prelude"
	"cdgen/internal/tile"
	"cdgen/internal/vram"
)

// marginPixels is the left/right-align screen margin (spec §4.8 "small
// margin"); the spec leaves the exact value unspecified.
const marginPixels = 4

// Scheduler is the renderer core: one instance per render job.
type Scheduler struct {
	vram    *vram.VRAM
	palette *palette.Manager
	raster  *glyph.Rasterizer
	cfg     config.Config
	logger  *log.Logger

	tracked map[string]*TrackedText

	packets        []packet.Packet
	packetsEmitted int64
	preludeLen     int64
	guardLimit     int64
	guardHit       bool

	colorSlot     map[compile.LogicalColor]int
	warnedMissing map[rune]bool
}

// New constructs a scheduler for one render job. logger may be nil.
func New(cfg config.Config, logger *log.Logger) (*Scheduler, error) {
	backend := glyph.BackendBuiltin
	if cfg.UseTTF {
		backend = glyph.BackendTTF
	}
	raster, err := glyph.New(backend, cfg.FontFamily)
	if err != nil {
		if logger != nil {
			logger.Logf(log.ComponentGlyph, log.LevelWarning, "ttf backend unavailable, using builtin font: %v", err)
		}
	}

	return &Scheduler{
		vram:          vram.New(cfg.BackgroundIndex),
		palette:       palette.New(logger),
		raster:        raster,
		cfg:           cfg,
		logger:        logger,
		tracked:       make(map[string]*TrackedText),
		colorSlot:     make(map[compile.LogicalColor]int),
		warnedMissing: make(map[rune]bool),
	}, nil
}

// targetPacket implements spec §4.8's time-to-packet boundary:
// target_packet(t_ms) = floor(t_ms * 300 / 1000).
func targetPacket(tMS int64) int64 {
	if tMS < 0 {
		return 0
	}
	return tMS * int64(config.PacketsPerSecond) / 1000
}

// Run executes cmds in order and returns the full packet stream for a
// render job of durationMS milliseconds, including the prelude.
// Timestamps share the same packet-index timeline as the prelude: a
// command whose target packet index falls within the prelude's span
// simply executes immediately after it, since padding only ever
// advances packetsEmitted forward (spec scenario S1 fixes a 1-second,
// 0-line job at exactly 300 packets total, prelude included, which
// pins this reading against §8 property 2's duration accounting).
// Once padding hits the guard limit, the remaining commands are not
// executed.
func (s *Scheduler) Run(cmds []compile.Command, durationMS int64) []packet.Packet {
	s.emitPrelude()
	s.preludeLen = s.packetsEmitted
	s.palette.Advance(s.packetsEmitted)

	target := targetPacket(durationMS)
	s.guardLimit = int64(math.Ceil(1.1 * float64(target)))

	for _, cmd := range cmds {
		s.padTo(targetPacket(cmd.TimestampMS))
		if s.guardHit {
			break
		}
		s.palette.Advance(s.packetsEmitted)
		s.dispatch(cmd)
	}
	s.padTo(target)
	s.palette.Advance(s.packetsEmitted)

	return s.packets
}

func (s *Scheduler) emitPrelude() {
	var pkts []packet.Packet
	if s.cfg.PreludeMode == config.PreludeCopyReference {
		raw := s.cfg.ReferenceCDGBytes
		var err error
		var ref []packet.Packet
		if raw == nil && s.cfg.ReferenceCDGPath != "" {
			if raw, err = os.ReadFile(s.cfg.ReferenceCDGPath); err != nil {
				raw = nil
				err = fmt.Errorf("read reference %q: %v: %w", s.cfg.ReferenceCDGPath, err, cdgerr.ErrReferencePreludeUnreadable)
				if s.logger != nil {
					s.logger.Logf(log.ComponentPrelude, log.LevelWarning, "%v, falling back to synthesized prelude", err)
				}
			}
		}
		if raw != nil {
			ref, err = prelude.FromReference(raw, s.logger)
		} else if err == nil {
			err = fmt.Errorf("no reference bytes supplied: %w", cdgerr.ErrReferencePreludeUnreadable)
		}
		if err == nil {
			pkts = ref
		}
	}
	if pkts == nil {
		pkts = prelude.Synthesize(color.DefaultPalette(), s.cfg.BackgroundIndex, colorIndexOf(s.cfg.BorderColor))
	}
	s.packets = append(s.packets, pkts...)
	s.packetsEmitted += int64(len(pkts))
}

// colorIndexOf finds the default-palette slot matching c, for the
// prelude's border preset (the border color is drawn from the fixed
// default table synthesized by the prelude itself, not leased
// dynamically through the palette manager).
func colorIndexOf(c color.RGB12) uint8 {
	pal := color.DefaultPalette()
	for i, p := range pal {
		if p == c {
			return uint8(i)
		}
	}
	return 0
}

// padTo emits empty packets until packetsEmitted reaches target,
// respecting the guard rail (spec §4.8).
func (s *Scheduler) padTo(target int64) {
	for s.packetsEmitted < target {
		if s.packetsEmitted >= s.guardLimit {
			if !s.guardHit {
				s.guardHit = true
				if s.logger != nil {
					s.logger.Logf(log.ComponentScheduler, log.LevelWarning, "%v: padding suppressed at packet %d", cdgerr.ErrGuardLimitReached, s.packetsEmitted)
				}
			}
			return
		}
		s.packets = append(s.packets, packet.Empty())
		s.packetsEmitted++
	}
}

func (s *Scheduler) dispatch(cmd compile.Command) {
	switch cmd.Kind {
	case compile.ClearScreen:
		s.handleClearScreen(cmd)
	case compile.ShowText:
		s.handleShowText(cmd)
	case compile.ChangeColor:
		s.handleChangeColor(cmd)
	case compile.RemoveText:
		s.handleRemoveText(cmd)
	}
}

// resolveColor maps a LogicalColor to a palette slot, leasing it from
// the palette manager on first use (lazily, so a command list that
// never references a color never perturbs the palette). Falls back to
// the transition-text slot on exhaustion (spec §7 PaletteExhausted).
func (s *Scheduler) resolveColor(c compile.LogicalColor) int {
	if slot, ok := s.colorSlot[c]; ok {
		s.flushPendingLoads()
		return slot
	}

	rgb, preferred, label := s.configFor(c)
	slot := s.palette.Lease(rgb, palette.Infinite, label, &preferred)
	if slot < 0 {
		if fallback, ok := s.colorSlot[compile.TransitionText]; ok {
			s.colorSlot[c] = fallback
			s.flushPendingLoads()
			return fallback
		}
		slot = int(s.cfg.TransitionIndex)
	}
	s.colorSlot[c] = slot
	s.flushPendingLoads()
	return slot
}

func (s *Scheduler) configFor(c compile.LogicalColor) (color.RGB12, int, string) {
	switch c {
	case compile.ActiveText:
		return s.cfg.ActiveColor, int(s.cfg.ActiveIndex), "active"
	case compile.TransitionText:
		return s.cfg.TransitionColor, int(s.cfg.TransitionIndex), "transition"
	default:
		return s.cfg.BackgroundColor, int(s.cfg.BackgroundIndex), "background"
	}
}

func (s *Scheduler) flushPendingLoads() {
	pkts := s.palette.PendingLoadPackets()
	if len(pkts) == 0 {
		return
	}
	s.packets = append(s.packets, pkts...)
	s.packetsEmitted += int64(len(pkts))
}

func (s *Scheduler) handleClearScreen(cmd compile.Command) {
	slot := s.resolveColor(cmd.Color)
	s.packets = append(s.packets, packet.MemoryPreset(uint8(slot), 0, nil))
	s.packetsEmitted++
	s.vram.Clear(uint8(slot))
	s.tracked = make(map[string]*TrackedText)
}

func (s *Scheduler) rasterizeOrSpace(r rune) glyph.Glyph {
	g, err := s.raster.Rasterize(r, s.cfg.EffectiveFontSize())
	if err == nil {
		return g
	}
	if !s.warnedMissing[r] {
		s.warnedMissing[r] = true
		if s.logger != nil {
			s.logger.Logf(log.ComponentGlyph, log.LevelWarning, "%v: %q, substituting space", cdgerr.ErrGlyphMissing, r)
		}
	}
	space, spaceErr := s.raster.Rasterize(' ', s.cfg.EffectiveFontSize())
	if spaceErr != nil {
		return glyph.Glyph{Width: 0, Height: 0}
	}
	return space
}

func (s *Scheduler) handleShowText(cmd compile.Command) {
	runes := []rune(cmd.Text)
	glyphs := make([]glyph.Glyph, len(runes))
	totalWidth := 0
	spacing := int(math.Ceil(float64(s.cfg.EffectiveFontSize()) * 0.15))
	if spacing < 1 {
		spacing = 1
	}
	for i, r := range runes {
		glyphs[i] = s.rasterizeOrSpace(r)
		totalWidth += glyphs[i].Width
	}
	if len(runes) > 1 {
		totalWidth += (len(runes) - 1) * spacing
	}

	pixelY := int(math.Round(float64(cmd.Position.Y) * float64(vram.Height) / 1000))
	var pixelX int
	switch cmd.Align {
	case compile.AlignLeft:
		pixelX = marginPixels
	case compile.AlignRight:
		pixelX = vram.Width - totalWidth - marginPixels
	default:
		pixelX = (vram.Width - totalWidth) / 2
	}

	slot := s.resolveColor(cmd.Color)

	tt := &TrackedText{Text: cmd.Text, OriginX: pixelX, OriginY: pixelY, Color: int(cmd.Color), tiles: make(map[tileCoord]bool)}
	tt.glyphs = make([]glyphPlacement, len(runes))

	dirtyTiles := make(map[tileCoord]vram.Block)
	x := pixelX
	for i, g := range glyphs {
		s.renderGlyphInto(dirtyTiles, x, pixelY, g, uint8(slot))
		tt.glyphs[i] = glyphPlacement{originX: x, originY: pixelY, g: g}
		s.markTiles(tt.tiles, x, pixelY, g)
		x += g.Width + spacing
	}

	s.flushTiles(dirtyTiles)
	s.tracked[cmd.TextID] = tt
}

func (s *Scheduler) handleChangeColor(cmd compile.Command) {
	tt, ok := s.tracked[cmd.TextID]
	if !ok {
		return
	}
	slot := s.resolveColor(cmd.Color)
	tt.Color = int(cmd.Color)

	dirtyTiles := make(map[tileCoord]vram.Block)
	for i := cmd.StartChar; i < cmd.EndChar && i < len(tt.glyphs); i++ {
		if i < 0 {
			continue
		}
		gp := tt.glyphs[i]
		s.renderGlyphInto(dirtyTiles, gp.originX, gp.originY, gp.g, uint8(slot))
	}
	s.flushTiles(dirtyTiles)
}

// handleRemoveText blanks every tile the removed text occupied. Spec
// §4.8/scenario S5 pin the emitted bytes directly: color_0=color_1=
// background_index with all twelve row-masks zero, so this writes a
// TILE_BLOCK packet by hand instead of going through tile.Encode (which
// would pick encodeMono's all-ones row-masks for a uniform block —
// visually identical since color_0==color_1, but not the documented
// wire bytes).
func (s *Scheduler) handleRemoveText(cmd compile.Command) {
	tt, ok := s.tracked[cmd.TextID]
	if !ok {
		return
	}
	bg := s.cfg.BackgroundIndex

	keys := sortedTiles(tt.tiles)
	for _, tc := range keys {
		p := packet.TileBlock(false, bg, bg, 0, tc.y, tc.x, [12]uint8{})
		s.packets = append(s.packets, p)
		s.packetsEmitted++
		s.vram.WriteBlock(tc.x, tc.y, blankBlock(bg))
	}
	delete(s.tracked, cmd.TextID)
}

func blankBlock(idx uint8) vram.Block {
	var b vram.Block
	for r := range b {
		for c := range b[r] {
			b[r][c] = idx
		}
	}
	return b
}

// renderGlyphInto overlays g's foreground pixels (fgIdx) onto the
// affected tiles' working copies in dirty, seeding each tile's working
// copy from current VRAM content on first touch (spec §4.8 step 4:
// "leaves other pixels untouched").
func (s *Scheduler) renderGlyphInto(dirty map[tileCoord]vram.Block, originX, originY int, g glyph.Glyph, fgIdx uint8) {
	for dy := 0; dy < g.Height; dy++ {
		for dx := 0; dx < g.Width; dx++ {
			if !g.Bit(dx, dy) {
				continue
			}
			px, py := originX+dx, originY+dy
			if px < 0 || px >= vram.Width || py < 0 || py >= vram.Height {
				continue
			}
			bx, by := vram.BlockAt(px, py)
			tc := tileCoord{bx, by}
			block, ok := dirty[tc]
			if !ok {
				block = s.vram.ReadBlock(bx, by)
			}
			ox, oy := vram.BlockOrigin(bx, by)
			block[py-oy][px-ox] = fgIdx
			dirty[tc] = block
		}
	}
}

func (s *Scheduler) markTiles(tiles map[tileCoord]bool, originX, originY int, g glyph.Glyph) {
	for dy := 0; dy < g.Height; dy += vram.BlockHeight {
		for dx := 0; dx < g.Width; dx += vram.BlockWidth {
			bx, by := vram.BlockAt(originX+dx, originY+dy)
			tiles[tileCoord{bx, by}] = true
		}
	}
	// Ensure the final row's and column's tiles are captured even when
	// (width, height) aren't multiples of the tile size.
	if g.Width > 0 && g.Height > 0 {
		lastX, lastY := originX+g.Width-1, originY+g.Height-1
		for dy := 0; dy < g.Height; dy += vram.BlockHeight {
			bx, by := vram.BlockAt(lastX, originY+dy)
			tiles[tileCoord{bx, by}] = true
		}
		for dx := 0; dx < g.Width; dx += vram.BlockWidth {
			bx, by := vram.BlockAt(originX+dx, lastY)
			tiles[tileCoord{bx, by}] = true
		}
		bx, by := vram.BlockAt(lastX, lastY)
		tiles[tileCoord{bx, by}] = true
	}
}

// flushTiles encodes and emits packets for every dirty tile, in
// row-major (tile_row, tile_col) order (spec §5 ordering guarantee).
func (s *Scheduler) flushTiles(dirty map[tileCoord]vram.Block) {
	keys := make([]tileCoord, 0, len(dirty))
	for k := range dirty {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].y != keys[j].y {
			return keys[i].y < keys[j].y
		}
		return keys[i].x < keys[j].x
	})
	for _, tc := range keys {
		pkts := tile.Encode(s.vram, tc.x, tc.y, dirty[tc], nil)
		s.packets = append(s.packets, pkts...)
		s.packetsEmitted += int64(len(pkts))
	}
}

func sortedTiles(tiles map[tileCoord]bool) []tileCoord {
	keys := make([]tileCoord, 0, len(tiles))
	for k := range tiles {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].y != keys[j].y {
			return keys[i].y < keys[j].y
		}
		return keys[i].x < keys[j].x
	})
	return keys
}
