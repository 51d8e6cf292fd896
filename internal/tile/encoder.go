// Package tile implements the CD+G tile-block encoder (spec §4.4): it
// turns a 6x12 target block of desired palette indices into 1-4 packets
// that will transform the current VRAM contents of that block into the
// target, choosing the COPY/XOR strategy by color cardinality. Grounded
// on the teacher's internal/ppu tile-data bitplane unpacking
// (renderBackgroundLayer's 4bpp nibble extraction) run in reverse: there
// the PPU unpacks palette indices from packed tile bytes, here the
// encoder packs a palette-index grid into row bitmasks.
package tile

import (
	"sort"

	"cdgen/internal/packet"
	"cdgen/internal/vram"
)

// Encode returns the packets needed to repaint vram's block at
// (blockX, blockY) to match target, and applies that mutation to vram.
// transparent, if non-nil, names a color index to exclude from the
// cardinality count (used by highlight overlays that only paint a
// subset of the tile). Returns an empty slice, with no VRAM mutation, if
// the block already matches target (the idempotence fast-path, spec
// property 4).
func Encode(v *vram.VRAM, blockX, blockY int, target vram.Block, transparent *uint8) []packet.Packet {
	current := v.ReadBlock(blockX, blockY)
	if current == target {
		return nil
	}

	colors, counts := distinctColors(target, transparent)

	var pkts []packet.Packet
	switch len(colors) {
	case 0:
		// Nothing but the transparent color; nothing to draw.
	case 1:
		pkts = encodeMono(colors[0], blockX, blockY, target)
	case 2:
		pkts = encodeTwoColor(colors, blockX, blockY, target)
	case 3:
		pkts = encodeThreeColor(colors, blockX, blockY, target)
	default:
		pkts = encodeBitplane(colors, blockX, blockY, target)
	}

	v.WriteBlock(blockX, blockY, target)
	_ = counts
	return pkts
}

// EncodeXOROnly emits a single XOR_FONT(0,1) packet whose mask marks
// every pixel in target not equal to bg — the highlight-overlay mode of
// spec §4.4. Returns nil, without mutating vram, if no such pixels
// exist. Unlike Encode, VRAM is not read back for an idempotence check:
// the overlay is a transient highlight flash layered over whatever the
// tile already shows, not a full repaint.
func EncodeXOROnly(v *vram.VRAM, blockX, blockY int, target vram.Block, bg uint8) []packet.Packet {
	var masks [12]uint8
	any := false
	for row := 0; row < vram.BlockHeight; row++ {
		var mask uint8
		for col := 0; col < vram.BlockWidth; col++ {
			if target[row][col] != bg {
				mask |= 1 << (5 - col)
				any = true
			}
		}
		masks[row] = mask
	}
	if !any {
		return nil
	}
	v.WriteBlock(blockX, blockY, target)
	return []packet.Packet{packet.TileBlock(true, 0, 1, 0, blockY, blockX, masks)}
}

// colorCount pairs a palette index with its frequency in the block.
type colorCount struct {
	color uint8
	count int
}

// distinctColors returns the colors present in target (excluding
// transparent if given), most frequent first. Ties break by lower
// palette index (spec §4.4's tie-breaking rule).
func distinctColors(target vram.Block, transparent *uint8) ([]uint8, map[uint8]int) {
	counts := make(map[uint8]int)
	for row := 0; row < vram.BlockHeight; row++ {
		for col := 0; col < vram.BlockWidth; col++ {
			c := target[row][col]
			if transparent != nil && c == *transparent {
				continue
			}
			counts[c]++
		}
	}
	list := make([]colorCount, 0, len(counts))
	for c, n := range counts {
		list = append(list, colorCount{c, n})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].color < list[j].color
	})
	colors := make([]uint8, len(list))
	for i, cc := range list {
		colors[i] = cc.color
	}
	return colors, counts
}

// maskWhere builds the 12-row bitmask for pixels matching pred.
func maskWhere(target vram.Block, pred func(c uint8) bool) [12]uint8 {
	var masks [12]uint8
	for row := 0; row < vram.BlockHeight; row++ {
		var mask uint8
		for col := 0; col < vram.BlockWidth; col++ {
			if pred(target[row][col]) {
				mask |= 1 << (5 - col)
			}
		}
		masks[row] = mask
	}
	return masks
}

func encodeMono(c uint8, blockX, blockY int, target vram.Block) []packet.Packet {
	var full [12]uint8
	for i := range full {
		full[i] = 0x3F
	}
	return []packet.Packet{packet.TileBlock(false, c, c, 0, blockY, blockX, full)}
}

func encodeTwoColor(colors []uint8, blockX, blockY int, target vram.Block) []packet.Packet {
	c0, c1 := colors[0], colors[1]
	mask := maskWhere(target, func(c uint8) bool { return c == c1 })
	return []packet.Packet{packet.TileBlock(false, c0, c1, 0, blockY, blockX, mask)}
}

func encodeThreeColor(colors []uint8, blockX, blockY int, target vram.Block) []packet.Packet {
	c0, c1, c2 := colors[0], colors[1], colors[2]

	first := maskWhere(target, func(c uint8) bool { return c == c0 || c == c2 })
	p1 := packet.TileBlock(false, c1, c0, 0, blockY, blockX, first)

	second := maskWhere(target, func(c uint8) bool { return c == c2 })
	p2 := packet.TileBlock(true, 0, c0^c2, 0, blockY, blockX, second)

	return []packet.Packet{p1, p2}
}

func encodeBitplane(colors []uint8, blockX, blockY int, target vram.Block) []packet.Packet {
	var orAll, andAll uint8 = 0, 0xFF
	for _, c := range colors {
		orAll |= c
		andAll &= c
	}

	var pkts []packet.Packet
	first := true
	for bit := 3; bit >= 0; bit-- {
		bitVal := uint8(1 << bit)
		if orAll&bitVal == 0 || andAll&bitVal != 0 {
			continue
		}
		mask := maskWhere(target, func(c uint8) bool { return c&bitVal != 0 })

		if first {
			c0 := andAll
			c1 := bitVal | andAll
			pkts = append(pkts, packet.TileBlock(false, c0, c1, 0, blockY, blockX, mask))
			first = false
		} else {
			pkts = append(pkts, packet.TileBlock(true, 0, bitVal, 0, blockY, blockX, mask))
		}
	}
	return pkts
}
