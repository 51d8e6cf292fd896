// Package packet implements the 24-byte CD+G wire record (spec §6.1),
// grounded on the teacher's internal/rom binary-encoding discipline
// (fixed-width little-endian records built with encoding/binary-style
// explicit byte offsets, internal/rom/builder.go's BuildROM header writer).
package packet

// Size is the fixed length of every CD+G packet in bytes.
const Size = 24

// Instruction codes (spec §6.1).
const (
	InstrMemoryPreset       = 1
	InstrBorderPreset       = 2
	InstrTileBlock          = 6
	InstrScrollPreset       = 20
	InstrScrollCopy         = 24
	InstrDefineTransparent  = 28
	InstrLoadColorLow       = 30
	InstrLoadColorHigh      = 31
	InstrTileBlockXOR       = 38
)

const subchannelCommand = 0x09

// Packet is one 24-byte CD+G record.
type Packet [Size]byte

// New builds a packet with the given instruction and up to 16 data
// bytes (each masked to its 6 significant bits).
func New(instruction uint8, data []byte) Packet {
	var p Packet
	p[0] = subchannelCommand
	p[1] = instruction & 0x3F
	// p[2] (parity Q) and p[3] (reserved) stay zero.
	for i := 0; i < len(data) && i < 16; i++ {
		p[4+i] = data[i] & 0x3F
	}
	// p[20:24] (parity P) stay zero.
	return p
}

// Empty returns an all-zero padding packet.
func Empty() Packet {
	return Packet{}
}

// Bytes returns the packet's 24 bytes as a slice.
func (p Packet) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, p[:])
	return out
}

// MemoryPreset builds a MEMORY_PRESET packet (spec §4.9, §6.1).
// extra, if non-empty, is packed starting at data byte 2 (used for the
// prelude's ASCII-signature memory-preset packets).
func MemoryPreset(colorIndex, repeat uint8, extra []byte) Packet {
	data := make([]byte, 2+len(extra))
	data[0] = colorIndex & 0x0F
	data[1] = repeat & 0x0F
	copy(data[2:], extra)
	return New(InstrMemoryPreset, data)
}

// BorderPreset builds a BORDER_PRESET packet.
func BorderPreset(colorIndex uint8) Packet {
	data := make([]byte, 16)
	data[0] = colorIndex & 0x0F
	return New(InstrBorderPreset, data)
}

// TileBlock builds a tile-draw packet (COPY or XOR depending on xor).
// rowMasks holds 12 row bitmasks, each 6 bits significant (one per
// pixel column in the 6-wide tile).
func TileBlock(xor bool, color0, color1 uint8, channel uint8, yBlock, xBlock int, rowMasks [12]uint8) Packet {
	instr := uint8(InstrTileBlock)
	if xor {
		instr = InstrTileBlockXOR
	}
	data := make([]byte, 16)
	data[0] = color0 | ((channel << 2) & 0x30)
	data[1] = color1 | ((channel << 4) & 0x30)
	data[2] = uint8(yBlock) & 0x3F
	data[3] = uint8(xBlock) & 0x3F
	for i := 0; i < 12; i++ {
		data[4+i] = rowMasks[i]
	}
	return New(instr, data)
}

// LoadColorHalf builds a LOAD_COLOR_LOW or LOAD_COLOR_HIGH packet from 8
// pre-packed (byte1, byte2) pairs.
func LoadColorHalf(high bool, pairs [8][2]uint8) Packet {
	instr := uint8(InstrLoadColorLow)
	if high {
		instr = InstrLoadColorHigh
	}
	data := make([]byte, 16)
	for i, pair := range pairs {
		data[i*2] = pair[0]
		data[i*2+1] = pair[1]
	}
	return New(instr, data)
}
