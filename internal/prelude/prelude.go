// Package prelude builds the deterministic initialization packet
// sequence emitted before any score-driven commands (spec §4.9): a
// default palette load, a border preset, and 16 memory-preset packets,
// the last 8 carrying an ASCII signature. An alternative path copies
// the leading packets of a reference CD+G stream verbatim, grounded on
// the teacher's os.ReadFile-based asset loading in cmd/rombuilder.
package prelude

import (
	"fmt"

	"cdgen/internal/cdgerr"
	"cdgen/internal/color"
	"cdgen/internal/log"
	"cdgen/internal/packet"
)

// Signature is stamped into each packet of the second bank of
// memory-preset packets, one character per data byte starting at data
// byte 2, encoded per spec §4.9.
const Signature = "CDGEN"

// Synthesize builds the standard prelude: two palette-load packets
// materializing pal, one border-preset packet, then 16 memory-preset
// packets (repeats 0..7 plain, repeats 0..7 again carrying Signature).
func Synthesize(pal [16]color.RGB12, backgroundIndex, borderIndex uint8) []packet.Packet {
	pkts := make([]packet.Packet, 0, 2+1+16)

	var low, high [8]color.RGB12
	copy(low[:], pal[0:8])
	copy(high[:], pal[8:16])
	pkts = append(pkts, packet.LoadColorHalf(false, pairsFrom(low)))
	pkts = append(pkts, packet.LoadColorHalf(true, pairsFrom(high)))

	pkts = append(pkts, packet.BorderPreset(borderIndex))

	for repeat := 0; repeat < 8; repeat++ {
		pkts = append(pkts, packet.MemoryPreset(backgroundIndex, uint8(repeat), nil))
	}
	sigBytes := encodeSignature(Signature)
	for repeat := 0; repeat < 8; repeat++ {
		pkts = append(pkts, packet.MemoryPreset(backgroundIndex, uint8(repeat), sigBytes))
	}
	return pkts
}

func pairsFrom(colors [8]color.RGB12) [8][2]uint8 {
	data := color.PackLoadData(colors)
	var pairs [8][2]uint8
	for i := 0; i < 8; i++ {
		pairs[i] = [2]uint8{data[i*2], data[i*2+1]}
	}
	return pairs
}

// encodeSignature packs an ASCII string into memory-preset data bytes
// 2.., each character stored as (c - 0x20) & 0x3F per spec §4.9.
func encodeSignature(s string) []byte {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = (s[i] - 0x20) & 0x3F
	}
	return out
}

// isPreludeInstruction reports whether instr is one of the packet
// kinds the prelude is made of (palette load, border, memory preset).
func isPreludeInstruction(instr uint8) bool {
	switch instr {
	case packet.InstrLoadColorLow, packet.InstrLoadColorHigh, packet.InstrBorderPreset, packet.InstrMemoryPreset:
		return true
	default:
		return false
	}
}

// FromReference copies the leading packets of a raw CD+G byte stream
// verbatim as the prelude, per spec §4.9's optional path. K is the
// index one past the last packet whose instruction is a palette/
// border/memory-preset command; scanning stops at the first packet
// that is none of those. Returns cdgerr.ErrReferencePreludeUnreadable
// if raw is not a well-formed packet stream.
func FromReference(raw []byte, logger *log.Logger) ([]packet.Packet, error) {
	if len(raw)%packet.Size != 0 || len(raw) == 0 {
		err := fmt.Errorf("reference stream length %d is not a positive multiple of %d: %w", len(raw), packet.Size, cdgerr.ErrReferencePreludeUnreadable)
		if logger != nil {
			logger.Log(log.ComponentPrelude, log.LevelWarning, "reference prelude unreadable, falling back to synthesized", map[string]interface{}{"error": err.Error()})
		}
		return nil, err
	}

	n := len(raw) / packet.Size
	k := 0
	for i := 0; i < n; i++ {
		instr := raw[i*packet.Size+1] & 0x3F
		if !isPreludeInstruction(instr) {
			break
		}
		k = i + 1
	}

	pkts := make([]packet.Packet, k)
	for i := 0; i < k; i++ {
		var p packet.Packet
		copy(p[:], raw[i*packet.Size:(i+1)*packet.Size])
		pkts[i] = p
	}
	return pkts, nil
}
