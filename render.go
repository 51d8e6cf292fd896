// Package cdgen compiles timed karaoke scores into CD+Graphics (CD+G)
// packet streams (spec §1): a deterministic, bit-exact 24-byte-packet
// binary format played at 300 packets/second. RenderToBytes and
// RenderIncremental are the two external entry points (spec §6.3);
// everything else is internal pipeline machinery (presentation
// compiler, scheduler, tile encoder, palette/line-lease allocators).
package cdgen

import (
	"fmt"

	"cdgen/internal/compile"
	"cdgen/internal/config"
	"cdgen/internal/lease"
	"cdgen/internal/log"
	"cdgen/internal/packet"
	"cdgen/internal/scheduler"
	"cdgen/internal/score"
	"cdgen/internal/writer"
)

// Config re-exports the renderer's external configuration surface.
type Config = config.Config

// DefaultConfig returns the spec's documented default configuration.
func DefaultConfig() config.Config { return config.DefaultConfig() }

// Logger re-exports the ring-buffer logger so callers can inspect
// recovered errors (PaletteExhausted, GlyphMissing, ...) after a render.
type Logger = log.Logger

// NewLogger constructs a logger with the given ring-buffer capacity.
func NewLogger(capacity int) *Logger { return log.NewLogger(capacity) }

// RenderToBytes compiles s into a complete CD+G byte stream of
// durationMS milliseconds (spec §6.3's render_to_bytes). s is checked
// with s.Validate() first; an invalid score returns
// cdgerr.ErrInvalidScore and no bytes.
func RenderToBytes(s score.Score, durationMS int64, cfg config.Config, logger *log.Logger) ([]byte, error) {
	pkts, err := render(s, durationMS, cfg, logger)
	if err != nil {
		return nil, err
	}
	return writer.ToBytes(pkts), nil
}

// Sink receives one chunk of finished bytes at a time in
// RenderIncremental (spec §6.3's render_incremental).
type Sink func(chunk []byte) error

// RenderIncremental compiles and schedules s, then invokes sink once
// per chunkPackets-sized group of packets (or once at the end with the
// remainder). chunkPackets <= 0 yields the whole stream as one chunk.
func RenderIncremental(s score.Score, durationMS int64, cfg config.Config, logger *log.Logger, chunkPackets int, sink Sink) error {
	pkts, err := render(s, durationMS, cfg, logger)
	if err != nil {
		return err
	}
	if chunkPackets <= 0 {
		return sink(writer.ToBytes(pkts))
	}
	for i := 0; i < len(pkts); i += chunkPackets {
		end := i + chunkPackets
		if end > len(pkts) {
			end = len(pkts)
		}
		if err := sink(writer.ToBytes(pkts[i:end])); err != nil {
			return fmt.Errorf("incremental sink: %w", err)
		}
	}
	return nil
}

func render(s score.Score, durationMS int64, cfg config.Config, logger *log.Logger) ([]packet.Packet, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	allocator := lease.New(lease.Pool)
	cmds := compile.Compile(s, allocator)

	sched, err := scheduler.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("construct scheduler: %w", err)
	}
	return sched.Run(cmds, durationMS), nil
}
