package color

import "testing"

// TestRGBRoundTrip checks spec property 5: rgb_to_cdg(r*17, g*17, b*17)
// equals (r<<8)|(g<<4)|b for r,g,b in [0,15].
func TestRGBRoundTrip(t *testing.T) {
	for r := 0; r <= 15; r++ {
		for g := 0; g <= 15; g++ {
			for b := 0; b <= 15; b++ {
				got := ToCDG(uint8(r*17), uint8(g*17), uint8(b*17))
				want := RGB12((r << 8) | (g << 4) | b)
				if got != want {
					t.Fatalf("ToCDG(%d,%d,%d) = %04X, want %04X", r*17, g*17, b*17, got, want)
				}
			}
		}
	}
}

func TestPackLoadData(t *testing.T) {
	var colors [8]RGB12
	colors[0] = ToCDG(255, 0, 0) // r4=15 g4=0 b4=0 -> 0xF00
	data := PackLoadData(colors)

	// r4=15 g4=0 -> byte1 = (15<<2)|(0>>2) = 60 = 0x3C
	if data[0] != 0x3C {
		t.Errorf("byte1 = %#x, want 0x3C", data[0])
	}
	// g4=0 b4=0 -> byte2 = 0
	if data[1] != 0x00 {
		t.Errorf("byte2 = %#x, want 0x00", data[1])
	}
	for _, b := range data {
		if b > 0x3F {
			t.Errorf("byte %#x exceeds 6-bit range", b)
		}
	}
}

func TestDefaultPaletteSize(t *testing.T) {
	p := DefaultPalette()
	if len(p) != 16 {
		t.Fatalf("expected 16 entries, got %d", len(p))
	}
	if p[0] != 0 {
		t.Errorf("palette[0] should be black (0), got %#x", p[0])
	}
}
