// Package palette implements the palette manager (C6, spec §4.6): leased
// allocation of the 16 CD+G palette slots to logical colors across
// packet-index time, producing LOAD_COLOR_LOW/HIGH packets when slots
// change. Grounded on the teacher's internal/ppu CGRAM slot model (16
// palettes x 16 colors addressed by an auto-incrementing CGRAMAddr) and
// on internal/rom/banked_builder.go's per-bank bookkeeping-plus-relocation
// shape: here each of 16 slots owns its own chronological lease chain
// instead of a bank owning a code stream.
package palette

import (
	"math"

	"cdgen/internal/color"
	"cdgen/internal/log"
	"cdgen/internal/packet"
)

const (
	NumSlots = 16
	// Infinite marks a lease with no expiry (spec §3: "end_packet_or_infinity").
	Infinite = math.MaxInt64
)

// slotLease is one reservation on a palette slot.
type slotLease struct {
	start, end int64 // packet indices; end may be Infinite
	color      color.RGB12
	label      string
}

func (l slotLease) activeAt(p int64) bool {
	return l.start <= p && p < l.end
}

type slot struct {
	leases []slotLease
}

func (s *slot) activeLease(p int64) *slotLease {
	for i := len(s.leases) - 1; i >= 0; i-- {
		if s.leases[i].activeAt(p) {
			return &s.leases[i]
		}
	}
	return nil
}

// Manager owns the 16 palette slots and tracks the current packet index.
type Manager struct {
	slots   [NumSlots]slot
	current int64
	logger  *log.Logger

	// dirty change-tracking for get_pending_load_packets (spec §4.6 step 5).
	lowerChanged bool
	upperChanged bool
}

// New creates a palette manager; logger may be nil.
func New(logger *log.Logger) *Manager {
	return &Manager{logger: logger}
}

// Advance moves the manager's notion of "now" forward to packetIndex.
// Must be non-decreasing; the scheduler is the sole caller (spec §4.6:
// "Current packet index is advanced monotonically by C8").
func (m *Manager) Advance(packetIndex int64) {
	if packetIndex > m.current {
		m.current = packetIndex
	}
}

// Lease reserves a slot for color for duration packets (or Infinite),
// returning the slot index or -1 if every slot is exhausted by
// conflicting leases (spec §4.6). preferredSlot, if non-nil, is tried
// first.
func (m *Manager) Lease(c color.RGB12, durationPackets int64, label string, preferredSlot *int) int {
	end := durationPackets
	if end != Infinite {
		end = m.current + durationPackets
	}

	// Step 1: preferred slot reuse.
	if preferredSlot != nil {
		idx := *preferredSlot
		if idx >= 0 && idx < NumSlots {
			active := m.slots[idx].activeLease(m.current)
			if active == nil || active.color == c {
				m.allocate(idx, c, end, label)
				return idx
			}
		}
	}

	// Step 2: reuse an existing slot already holding this color whose
	// lease covers the new request.
	for idx := 0; idx < NumSlots; idx++ {
		active := m.slots[idx].activeLease(m.current)
		if active != nil && active.color == c && active.end >= end {
			return idx
		}
	}

	// Step 3: pick a free slot. Infinite-duration requests prefer 0-7,
	// bounded requests prefer 8-15; within a half, lowest index first,
	// skipping slots whose active lease does not end before the new
	// start.
	halves := [][2]int{{0, 8}, {8, 16}}
	if end != Infinite {
		halves = [][2]int{{8, 16}, {0, 8}}
	}
	for _, half := range halves {
		for idx := half[0]; idx < half[1]; idx++ {
			active := m.slots[idx].activeLease(m.current)
			if active != nil && active.end > m.current {
				continue
			}
			m.allocate(idx, c, end, label)
			return idx
		}
	}

	if m.logger != nil {
		m.logger.Logf(log.ComponentPalette, log.LevelWarning, "palette exhausted requesting color %04X (%s)", c, label)
	}
	return -1
}

func (m *Manager) allocate(idx int, c color.RGB12, end int64, label string) {
	m.slots[idx].leases = append(m.slots[idx].leases, slotLease{
		start: m.current,
		end:   end,
		color: c,
		label: label,
	})
	if idx < 8 {
		m.lowerChanged = true
	} else {
		m.upperChanged = true
	}
}

// Resolve returns the color currently active on slot idx, or the zero
// color if none.
func (m *Manager) Resolve(idx int) color.RGB12 {
	if idx < 0 || idx >= NumSlots {
		return 0
	}
	if active := m.slots[idx].activeLease(m.current); active != nil {
		return active.color
	}
	return 0
}

// PendingLoadPackets merges change events since the last call and
// returns one packet for the low half and/or high half as needed,
// resetting the dirty marks (spec §4.6 step "get_pending_load_packets").
func (m *Manager) PendingLoadPackets() []packet.Packet {
	var pkts []packet.Packet
	if m.lowerChanged {
		pkts = append(pkts, m.buildHalf(false))
		m.lowerChanged = false
	}
	if m.upperChanged {
		pkts = append(pkts, m.buildHalf(true))
		m.upperChanged = false
	}
	return pkts
}

func (m *Manager) buildHalf(high bool) packet.Packet {
	var colors [8]color.RGB12
	base := 0
	if high {
		base = 8
	}
	for i := 0; i < 8; i++ {
		colors[i] = m.Resolve(base + i)
	}
	data := color.PackLoadData(colors)
	var pairs [8][2]uint8
	for i := 0; i < 8; i++ {
		pairs[i] = [2]uint8{data[i*2], data[i*2+1]}
	}
	return packet.LoadColorHalf(high, pairs)
}
