// Package config holds the single configuration envelope described in
// spec.md §4.6, parsed once at startup and then passed explicitly to every
// task instead of living in package-level globals (DESIGN NOTES §9, "Global
// mutable state").
package config

import (
	"flag"
	"fmt"
	"os"

	"bmpconv/internal/filter"
	"bmpconv/internal/tile"
)

// Default bounds for pipeline mode, per spec.md §6.
const (
	DefaultQueueCapacity = 20
	DefaultQueueMemMB    = 500
)

// Config is the parsed, validated set of run parameters. Exactly one of
// (ThreadNum set, single-image) or (R,W,T set, pipeline) applies, selected
// by Pipeline.
type Config struct {
	FilterID  filter.ID
	Mode      tile.Mode
	BlockSize int

	Pipeline bool

	// Single-image mode.
	ThreadNum int

	// Pipeline mode.
	Readers      int
	Workers      int
	Writers      int
	QueueCap     int
	QueueMemCap  int64 // bytes

	Files        []string
	OutputPrefix string
	LogEnabled   bool
}

// Parse parses args (excluding argv[0]) into a validated Config, following
// the CLI contract of spec.md §6. Presence of --rww selects pipeline mode.
func Parse(args []string) (*Config, error) {
	fs := flag.NewFlagSet("bmpconv", flag.ContinueOnError)

	filterFlag := fs.String("filter", "", "filter id: bb, mb, em, gg, gb, co, sh, mm, bo, mg")
	modeFlag := fs.String("mode", "", "partition mode: row, column, grid, pixel")
	blockFlag := fs.Int("block", 1, "block size (strip height/width or grid side)")
	threadFlag := fs.Int("threadnum", 0, "worker count for single-image mode")
	outputFlag := fs.String("output", "", "output name (single-image) or prefix (pipeline)")
	logFlag := fs.Int("log", 0, "enable timing log: 0 or 1")
	rwwFlag := fs.String("rww", "", "pipeline thread counts: R,W,T (each 1..255)")
	limFlag := fs.Int("lim", DefaultQueueMemMB, "pipeline queue memory cap, in MB")
	capFlag := fs.Int("capacity", DefaultQueueCapacity, "pipeline queue length cap")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		BlockSize:    *blockFlag,
		OutputPrefix: *outputFlag,
		LogEnabled:   *logFlag != 0,
		Files:        fs.Args(),
	}

	if *filterFlag == "" {
		return nil, fmt.Errorf("config: --filter is required")
	}
	id := filter.ID(*filterFlag)
	if !filter.Valid(id) {
		return nil, fmt.Errorf("config: invalid filter %q, valid ids: %v", *filterFlag, filter.ValidIDs())
	}
	cfg.FilterID = id

	if *modeFlag == "" {
		return nil, fmt.Errorf("config: --mode is required")
	}
	mode, ok := tile.ParseMode(*modeFlag)
	if !ok {
		return nil, fmt.Errorf("config: invalid mode %q, valid modes: row, column, grid, pixel", *modeFlag)
	}
	cfg.Mode = mode

	if cfg.BlockSize < 1 {
		return nil, fmt.Errorf("config: --block must be >= 1")
	}

	if len(cfg.Files) == 0 {
		return nil, fmt.Errorf("config: at least one input filename is required")
	}

	if *rwwFlag != "" {
		cfg.Pipeline = true
		r, w, t, err := parseRWW(*rwwFlag)
		if err != nil {
			return nil, err
		}
		cfg.Readers, cfg.Workers, cfg.Writers = r, w, t
		cfg.QueueCap = *capFlag
		if cfg.QueueCap < 1 {
			return nil, fmt.Errorf("config: --capacity must be >= 1")
		}
		if *limFlag < 0 {
			return nil, fmt.Errorf("config: --lim must be >= 0")
		}
		cfg.QueueMemCap = int64(*limFlag) * 1024 * 1024
		return cfg, nil
	}

	cfg.ThreadNum = *threadFlag
	if cfg.ThreadNum < 1 {
		return nil, fmt.Errorf("config: --threadnum must be >= 1 in single-image mode")
	}
	if len(cfg.Files) != 1 {
		return nil, fmt.Errorf("config: single-image mode accepts exactly one input file")
	}
	return cfg, nil
}

func parseRWW(s string) (r, w, t int, err error) {
	if _, err = fmt.Sscanf(s, "%d,%d,%d", &r, &w, &t); err != nil {
		return 0, 0, 0, fmt.Errorf("config: invalid --rww=%q, expected R,W,T", s)
	}
	for _, n := range []int{r, w, t} {
		if n < 1 || n > 255 {
			return 0, 0, 0, fmt.Errorf("config: --rww counts must be in 1..255, got %q", s)
		}
	}
	return r, w, t, nil
}

// ParseArgs is a convenience wrapper over Parse using os.Args[1:].
func ParseArgs() (*Config, error) {
	return Parse(os.Args[1:])
}
