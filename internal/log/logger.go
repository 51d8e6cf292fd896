package log

import (
	"fmt"
	"sync"
	"time"
)

// Logger is a small component-tagged ring buffer, adapted from the
// teacher's debug.Logger. The renderer is single-threaded and cooperative
// (spec §5: no internal waits), so unlike the teacher this Logger writes
// synchronously under a mutex instead of fanning entries through a
// background goroutine + channel.
type Logger struct {
	mu               sync.Mutex
	entries          []Entry
	maxEntries       int
	writeIndex       int
	entryCount       int
	componentEnabled map[Component]bool
	minLevel         Level
}

// NewLogger creates a logger with the given ring-buffer capacity.
// All components are enabled by default (unlike the teacher, whose
// console components are opt-in) since cdgen's components are cheap to
// log and a render job is expected to capture everything it logs.
func NewLogger(maxEntries int) *Logger {
	if maxEntries < 64 {
		maxEntries = 64
	}
	return &Logger{
		entries:          make([]Entry, maxEntries),
		maxEntries:       maxEntries,
		componentEnabled: make(map[Component]bool),
		minLevel:         LevelInfo,
	}
}

func (l *Logger) enabled(c Component) bool {
	if v, ok := l.componentEnabled[c]; ok {
		return v
	}
	return true
}

// Log records an entry if the component is enabled and the level clears
// the configured minimum (levels are ordered most severe first, so an
// entry is kept when level <= minLevel).
func (l *Logger) Log(component Component, level Level, message string, data map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled(component) || level > l.minLevel {
		return
	}

	l.entries[l.writeIndex] = Entry{
		Timestamp: time.Now(),
		Component: component,
		Level:     level,
		Message:   message,
		Data:      data,
	}
	l.writeIndex = (l.writeIndex + 1) % l.maxEntries
	if l.entryCount < l.maxEntries {
		l.entryCount++
	}
}

// Logf records a formatted entry.
func (l *Logger) Logf(component Component, level Level, format string, args ...interface{}) {
	l.Log(component, level, fmt.Sprintf(format, args...), nil)
}

// SetComponentEnabled toggles logging for a single component.
func (l *Logger) SetComponentEnabled(component Component, enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.componentEnabled[component] = enabled
}

// SetMinLevel sets the minimum level that will be recorded.
func (l *Logger) SetMinLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// Entries returns a copy of recorded entries, oldest first.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.entryCount == 0 {
		return nil
	}
	out := make([]Entry, l.entryCount)
	if l.entryCount < l.maxEntries {
		copy(out, l.entries[:l.entryCount])
		return out
	}
	for i := 0; i < l.entryCount; i++ {
		out[i] = l.entries[(l.writeIndex+i)%l.maxEntries]
	}
	return out
}

// Clear empties the ring buffer.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entryCount = 0
	l.writeIndex = 0
}
