package vram

import "testing"

func TestClampedAccess(t *testing.T) {
	v := New(0)
	v.SetPixel(-1, -1, 5)
	v.SetPixel(Width, Height, 5)
	if got := v.GetPixel(-1, 0); got != 0 {
		t.Errorf("out-of-range read = %d, want 0", got)
	}
	v.SetPixel(10, 10, 7)
	if got := v.GetPixel(10, 10); got != 7 {
		t.Errorf("in-range read = %d, want 7", got)
	}
}

func TestWriteReadBlock(t *testing.T) {
	v := New(0)
	var grid Block
	for r := 0; r < BlockHeight; r++ {
		for c := 0; c < BlockWidth; c++ {
			grid[r][c] = uint8((r + c) % 16)
		}
	}
	v.WriteBlock(3, 2, grid)
	got := v.ReadBlock(3, 2)
	if got != grid {
		t.Fatalf("ReadBlock after WriteBlock mismatch: got %v want %v", got, grid)
	}

	ox, oy := BlockOrigin(3, 2)
	if ox != 18 || oy != 24 {
		t.Errorf("BlockOrigin(3,2) = (%d,%d), want (18,24)", ox, oy)
	}
}

func TestBlockAt(t *testing.T) {
	bx, by := BlockAt(19, 25)
	if bx != 3 || by != 2 {
		t.Errorf("BlockAt(19,25) = (%d,%d), want (3,2)", bx, by)
	}
}

func TestClear(t *testing.T) {
	v := New(2)
	if got := v.GetPixel(0, 0); got != 2 {
		t.Errorf("New(2) should fill background, got %d", got)
	}
	v.Clear(9)
	if got := v.GetPixel(299, 215); got != 9 {
		t.Errorf("Clear(9) should reach last pixel, got %d", got)
	}
}
