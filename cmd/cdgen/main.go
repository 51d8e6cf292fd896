// Command cdgen compiles a timed karaoke score into a CD+Graphics
// (.cdg) packet stream (spec §6.4).
//
// Usage: cdgen <score.json> [<out.cdg>] [duration_seconds] [reserved_start] [reference.cdg]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	cdgen "cdgen"
	"cdgen/internal/config"
	"cdgen/internal/log"
	"cdgen/internal/score"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <score.json> [<out.cdg>] [duration_seconds] [reserved_start] [reference.cdg]\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	args := flag.Args()
	scorePath := args[0]

	outPath := "out.cdg"
	if len(args) > 1 {
		outPath = args[1]
	}

	durationSeconds := 180.0
	if len(args) > 2 {
		var parsed float64
		if _, err := fmt.Sscanf(args[2], "%f", &parsed); err != nil {
			fmt.Fprintf(os.Stderr, "invalid duration_seconds %q: %v\n", args[2], err)
			os.Exit(2)
		}
		durationSeconds = parsed
	}

	// args[3] (reserved_start) is accepted for CLI-surface compatibility
	// (spec §6.4) but unused by the core renderer.

	cfg := cdgen.DefaultConfig()
	if len(args) > 4 {
		refBytes, err := os.ReadFile(args[4])
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot read reference CD+G %q, falling back to synthesized prelude: %v\n", args[4], err)
		} else {
			cfg.PreludeMode = config.PreludeCopyReference
			cfg.ReferenceCDGBytes = refBytes
		}
	}

	s, err := loadScore(scorePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading score: %v\n", err)
		os.Exit(2)
	}

	logger := log.NewLogger(256)
	durationMS := int64(durationSeconds * 1000)
	out, err := cdgen.RenderToBytes(*s, durationMS, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render error: %v\n", err)
		os.Exit(2)
	}

	if err := os.WriteFile(outPath, out, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %q: %v\n", outPath, err)
		os.Exit(2)
	}

	fmt.Printf("Wrote %s (%d bytes, %d packets)\n", outPath, len(out), len(out)/24)
	for _, e := range logger.Entries() {
		if e.Level <= log.LevelWarning {
			fmt.Fprintf(os.Stderr, "%s\n", e.Format())
		}
	}
}

func loadScore(path string) (*score.Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	var s score.Score
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return &s, nil
}
