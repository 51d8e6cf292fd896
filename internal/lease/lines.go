// Package lease implements the line-lease allocator (C5, spec §4.5): it
// assigns a lyric line to one of N on-screen row positions for the
// duration of its visibility, rotating a buffer slot forward on each
// allocation to keep a blank row between old and new lines. Structured
// like the teacher's small owned-resource-pool types (e.g.
// internal/memory.Cartridge's bank bookkeeping): a fixed-size slice of
// positions plus a rotating cursor, exposed through a constructor and a
// handful of exported methods.
package lease

// Pool is the default count of abstract Y row positions (spec §3 example:
// 7 positions spaced across the screen).
const Pool = 7

// Line is one reserved row for the lifetime of a lyric line.
type Line struct {
	ID        string
	StartMS   int64
	EndMS     int64
	YPosition int
}

// Allocator tracks the pool of Y positions and the active leases on them.
type Allocator struct {
	positions    []int // abstract Y coordinates, evenly spaced
	nextPosition int   // rotating cursor index into positions
	buffer       int   // index of the current buffer (always-skipped) slot
	active       []Line
}

// New creates an allocator over n evenly spaced Y positions in [0,1000).
func New(n int) *Allocator {
	if n < 2 {
		n = 2
	}
	positions := make([]int, n)
	for i := range positions {
		positions[i] = (i * 1000) / n
	}
	return &Allocator{
		positions: positions,
		buffer:    0,
	}
}

// expire drops leases whose end predates the new lease's start.
func (a *Allocator) expire(startMS int64) {
	kept := a.active[:0]
	for _, l := range a.active {
		if l.EndMS >= startMS {
			kept = append(kept, l)
		}
	}
	a.active = kept
}

// conflicts reports whether any active lease on positionIdx overlaps
// [startMS, endMS].
func (a *Allocator) conflicts(positionIdx int, startMS, endMS int64) bool {
	y := a.positions[positionIdx]
	for _, l := range a.active {
		if l.YPosition == y && l.StartMS <= endMS && startMS <= l.EndMS {
			return true
		}
	}
	return false
}

func (a *Allocator) advance(past int) {
	n := len(a.positions)
	a.buffer = (past + 1) % n
	a.nextPosition = (past + 1) % n
}

func (a *Allocator) reserve(lineID string, idx int, startMS, endMS int64) int {
	y := a.positions[idx]
	a.active = append(a.active, Line{ID: lineID, StartMS: startMS, EndMS: endMS, YPosition: y})
	return y
}

// Lease assigns groupSize contiguous, non-buffer, non-conflicting
// positions to lineID for [startMS, endMS] and returns their Y
// coordinates. On exhaustion it falls back to the cursor position,
// permitting overlap, per spec §4.5 step 4.
func (a *Allocator) Lease(lineID string, startMS, endMS int64, groupSize int) []int {
	if groupSize < 1 {
		groupSize = 1
	}
	a.expire(startMS)
	n := len(a.positions)

	if groupSize == 1 {
		for step := 0; step < n; step++ {
			idx := (a.nextPosition + step) % n
			if idx == a.buffer {
				continue
			}
			if a.conflicts(idx, startMS, endMS) {
				continue
			}
			y := a.reserve(lineID, idx, startMS, endMS)
			a.advance(idx)
			return []int{y}
		}
		// Exhausted: allocate the cursor position anyway.
		idx := a.nextPosition
		y := a.reserve(lineID, idx, startMS, endMS)
		a.advance(idx)
		return []int{y}
	}

	for step := 0; step < n; step++ {
		start := (a.nextPosition + step) % n
		ok := true
		indices := make([]int, groupSize)
		for g := 0; g < groupSize; g++ {
			idx := (start + g) % n
			if idx == a.buffer || a.conflicts(idx, startMS, endMS) {
				ok = false
				break
			}
			indices[g] = idx
		}
		if !ok {
			continue
		}
		ys := make([]int, groupSize)
		for i, idx := range indices {
			ys[i] = a.reserve(lineID, idx, startMS, endMS)
		}
		a.advance(indices[len(indices)-1])
		return ys
	}

	// Exhausted: reserve groupSize positions starting at the cursor,
	// permitting overlap.
	ys := make([]int, groupSize)
	idx := a.nextPosition
	for g := 0; g < groupSize; g++ {
		gi := (idx + g) % n
		ys[g] = a.reserve(lineID, gi, startMS, endMS)
	}
	a.advance((idx + groupSize - 1) % n)
	return ys
}

// ActiveAt returns the leases active at time t, for testing the
// no-two-leases-share-a-Y invariant (spec property 8).
func (a *Allocator) ActiveAt(t int64) []Line {
	var out []Line
	for _, l := range a.active {
		if l.StartMS <= t && t <= l.EndMS {
			out = append(out, l)
		}
	}
	return out
}
