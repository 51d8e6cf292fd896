// Package writer implements the file writer (C10, spec §4.10): it
// concatenates packet byte buffers in emission order into a single raw
// `.cdg` byte stream, with no framing or header. Grounded on the
// teacher's internal/rom.BuildROM, which writes a flat concatenated
// byte buffer to disk with no container format.
package writer

import (
	"os"

	"cdgen/internal/packet"
)

// ToBytes concatenates pkts in order into a single byte slice.
func ToBytes(pkts []packet.Packet) []byte {
	out := make([]byte, 0, len(pkts)*packet.Size)
	for _, p := range pkts {
		out = append(out, p.Bytes()...)
	}
	return out
}

// WriteFile concatenates pkts and writes them to path.
func WriteFile(path string, pkts []packet.Packet) error {
	return os.WriteFile(path, ToBytes(pkts), 0644)
}
