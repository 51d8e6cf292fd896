package writer

import (
	"testing"

	"cdgen/internal/packet"
)

func TestToBytesConcatenatesInOrder(t *testing.T) {
	pkts := []packet.Packet{
		packet.BorderPreset(3),
		packet.Empty(),
	}
	out := ToBytes(pkts)
	if len(out) != 2*packet.Size {
		t.Fatalf("got %d bytes, want %d", len(out), 2*packet.Size)
	}
	if out[1] != 2 { // BORDER_PRESET instruction
		t.Errorf("byte 1 = %d, want 2", out[1])
	}
	if out[packet.Size] != 0 {
		t.Errorf("second packet's byte 0 = %d, want 0 (empty packet)", out[packet.Size])
	}
}
