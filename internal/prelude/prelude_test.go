package prelude

import (
	"testing"

	"cdgen/internal/color"
	"cdgen/internal/packet"
)

// TestMinimalPreludeLayout matches spec scenario S1: byte 1 of packet 0
// is LOAD_COLOR_LOW (30), packet 1 is LOAD_COLOR_HIGH (31), packet 2 is
// BORDER_PRESET (2), packets 3-18 are MEMORY_PRESET (1).
func TestMinimalPreludeLayout(t *testing.T) {
	pkts := Synthesize(color.DefaultPalette(), 0, 0)
	if len(pkts) != 19 {
		t.Fatalf("got %d prelude packets, want 19", len(pkts))
	}
	want := []uint8{30, 31, 2}
	for i, w := range want {
		if got := pkts[i].Bytes()[1]; got != w {
			t.Errorf("packet %d instruction = %d, want %d", i, got, w)
		}
	}
	for i := 3; i <= 18; i++ {
		if got := pkts[i].Bytes()[1]; got != 1 {
			t.Errorf("packet %d instruction = %d, want 1 (MEMORY_PRESET)", i, got)
		}
	}
	for _, p := range pkts {
		if b := p.Bytes(); b[0] != 0x09 {
			t.Errorf("subchannel byte = %#x, want 0x09", b[0])
		}
	}
}

func TestSignatureEncodedInSecondBank(t *testing.T) {
	pkts := Synthesize(color.DefaultPalette(), 5, 0)
	p := pkts[3+8] // first packet of the signature bank
	data := p.Bytes()[4:]
	for i, c := range Signature {
		want := (uint8(c) - 0x20) & 0x3F
		if data[2+i] != want {
			t.Errorf("signature byte %d = %d, want %d", i, data[2+i], want)
		}
	}
}

func TestFromReferenceStopsAtFirstNonPreludeInstruction(t *testing.T) {
	var raw []byte
	raw = append(raw, packet.BorderPreset(3).Bytes()...)
	raw = append(raw, packet.MemoryPreset(1, 0, nil).Bytes()...)
	tileData := [12]uint8{}
	raw = append(raw, packet.TileBlock(false, 1, 2, 0, 0, 0, tileData).Bytes()...)
	raw = append(raw, packet.BorderPreset(7).Bytes()...) // after a tile block, should not be included

	pkts, err := FromReference(raw, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pkts) != 2 {
		t.Fatalf("got %d packets, want 2 (stopping before the tile block)", len(pkts))
	}
}

func TestFromReferenceRejectsMalformedLength(t *testing.T) {
	_, err := FromReference(make([]byte, 10), nil)
	if err == nil {
		t.Fatal("expected an error for a non-multiple-of-24 byte stream")
	}
}
