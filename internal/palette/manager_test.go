package palette

import (
	"testing"

	"cdgen/internal/color"
)

func TestNoOverlappingLeasesPerSlot(t *testing.T) {
	m := New(nil)
	slot := m.Lease(color.ToCDG(255, 0, 0), 100, "red", nil)
	if slot < 0 {
		t.Fatal("expected a valid slot")
	}
	m.Advance(50)
	// A second, conflicting color on the same preferred slot while the
	// first lease is still active must not silently overlap it; it
	// should either reuse (same color) or land elsewhere.
	other := m.Lease(color.ToCDG(0, 255, 0), 100, "green", &slot)
	if other == slot {
		t.Fatalf("different color should not silently overlap an active lease on slot %d", slot)
	}
}

// TestPaletteReload matches spec scenario S6: two leaseColor calls at
// packet 50 (red to slot 8) and packet 60 (cyan to slot 11) should
// produce a LOAD_COLOR_HIGH packet whose offsets 0-1 encode red and
// 6-7 encode cyan.
func TestPaletteReload(t *testing.T) {
	m := New(nil)
	m.Advance(50)
	red := color.ToCDG(255, 0, 0)
	eight := 8
	got := m.Lease(red, Infinite, "red", &eight)
	if got != 8 {
		t.Fatalf("expected slot 8, got %d", got)
	}

	m.Advance(60)
	cyan := color.ToCDG(0, 255, 255)
	eleven := 11
	got2 := m.Lease(cyan, Infinite, "cyan", &eleven)
	if got2 != 11 {
		t.Fatalf("expected slot 11, got %d", got2)
	}

	pkts := m.PendingLoadPackets()
	var high []byte
	for _, p := range pkts {
		b := p.Bytes()
		if b[1] == 31 { // LOAD_COLOR_HIGH
			high = b
		}
	}
	if high == nil {
		t.Fatal("expected a LOAD_COLOR_HIGH packet")
	}
	wantRed := color.PackLoadData([8]color.RGB12{red})
	if high[4] != wantRed[0] || high[5] != wantRed[1] {
		t.Errorf("red bytes = %v, want %v", high[4:6], wantRed[:2])
	}
	// slot 11 is the 4th entry (index 3) in the high half -> offsets 6,7
	var cyanColors [8]color.RGB12
	cyanColors[3] = cyan
	wantCyan := color.PackLoadData(cyanColors)
	if high[10] != wantCyan[6] || high[11] != wantCyan[7] {
		t.Errorf("cyan bytes = %v, want %v", high[10:12], wantCyan[6:8])
	}
}

func TestPreferredSlotReuse(t *testing.T) {
	m := New(nil)
	red := color.ToCDG(255, 0, 0)
	slot := m.Lease(red, Infinite, "bg", nil)
	m.PendingLoadPackets() // clear dirty
	again := m.Lease(red, Infinite, "bg-again", &slot)
	if again != slot {
		t.Fatalf("same color on preferred slot should reuse it, got %d want %d", again, slot)
	}
}

func TestExhaustionReturnsNegativeOne(t *testing.T) {
	m := New(nil)
	for i := 0; i < NumSlots; i++ {
		c := color.ToCDG(uint8(i*17), 0, 0) // r4 = i: 16 distinct colors
		if got := m.Lease(c, Infinite, "x", nil); got < 0 {
			t.Fatalf("slot %d allocation unexpectedly failed", i)
		}
	}
	extra := color.ToCDG(0, 255, 0) // held by no slot
	if got := m.Lease(extra, Infinite, "overflow", nil); got != -1 {
		t.Errorf("expected -1 once all 16 infinite slots are taken, got %d", got)
	}
}
