package glyph

import "testing"

func TestBuiltinWidths(t *testing.T) {
	cases := map[rune]int{' ': 3, 'i': 2, 'W': 6, 'A': 5}
	for r, want := range cases {
		if got := builtinWidth(r); got != want {
			t.Errorf("builtinWidth(%q) = %d, want %d", r, got, want)
		}
	}
}

func TestRasterizeBuiltinBaseSize(t *testing.T) {
	rz, err := New(BackendBuiltin, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, err := rz.Rasterize('A', baseHeight)
	if err != nil {
		t.Fatalf("rasterize A: %v", err)
	}
	if g.Width != 5 || g.Height != baseHeight {
		t.Fatalf("got %dx%d, want 5x%d", g.Width, g.Height, baseHeight)
	}
	// 'A' row 0 is ..#.. -> only column 2 set.
	for x := 0; x < g.Width; x++ {
		want := x == 2
		if g.Bit(x, 0) != want {
			t.Errorf("row0 bit %d = %v, want %v", x, g.Bit(x, 0), want)
		}
	}
}

func TestRasterizeMissingGlyph(t *testing.T) {
	rz, _ := New(BackendBuiltin, "")
	if _, err := rz.Rasterize('$', baseHeight); err == nil {
		t.Fatal("expected ErrGlyphMissing for unsupported rune")
	}
}

func TestSupersampleDeterministic(t *testing.T) {
	rz, _ := New(BackendBuiltin, "")
	g1, err := rz.Rasterize('M', 24)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	g2, err := rz.Rasterize('M', 24)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if g1.Width != g2.Width || g1.Height != g2.Height {
		t.Fatalf("dimensions differ across calls: %dx%d vs %dx%d", g1.Width, g1.Height, g2.Width, g2.Height)
	}
	for y := 0; y < g1.Height; y++ {
		for x := 0; x < g1.Width; x++ {
			if g1.Bit(x, y) != g2.Bit(x, y) {
				t.Fatalf("pixel (%d,%d) differs across identical calls", x, y)
			}
		}
	}
	if g1.Height != 24 {
		t.Errorf("Height = %d, want 24", g1.Height)
	}
	if g1.Width <= 8 {
		t.Errorf("expected supersampled width > 8 for a wide glyph at size 24, got %d", g1.Width)
	}
}

func TestLowercaseFoldsToUppercaseShape(t *testing.T) {
	rz, _ := New(BackendBuiltin, "")
	upper, err := rz.Rasterize('A', baseHeight)
	if err != nil {
		t.Fatalf("rasterize A: %v", err)
	}
	lower, err := rz.Rasterize('a', baseHeight)
	if err != nil {
		t.Fatalf("rasterize a: %v", err)
	}
	for y := 0; y < baseHeight; y++ {
		for x := 0; x < upper.Width; x++ {
			if upper.Bit(x, y) != lower.Bit(x, y) {
				t.Fatalf("lowercase 'a' should match uppercase 'A' shape at (%d,%d)", x, y)
			}
		}
	}
}
