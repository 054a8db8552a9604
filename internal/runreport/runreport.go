// Package runreport writes a plain-text summary of one bmpconv invocation,
// adapted from the teacher's pkg/stats.WritePerformanceResults: that function
// combined three in-process algorithm runs into one file because the
// teacher's main.go ran sequential, tile-parallel, and pipelined passes back
// to back in a single process. bmpconv runs exactly one mode per invocation
// (spec.md §6), so this package writes one record per call instead of
// collecting a slice first.
package runreport

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Record describes one completed run, single-image or pipeline.
type Record struct {
	Mode      string // "single-image" or "pipeline"
	FilterID  string
	Partition string // tile.Mode.String()
	BlockSize int
	Files     []string
	Elapsed   time.Duration

	// Single-image mode only.
	ThreadNum int

	// Pipeline mode only.
	Readers int
	Workers int
	Writers int
}

// Write appends rec to logs/run_<timestamp>.txt. Failures are logged and
// otherwise ignored: a missing run report must never fail the conversion
// itself.
func Write(rec Record) {
	if err := write(rec); err != nil {
		log.Printf("runreport: %v", err)
	}
}

func write(rec Record) error {
	if err := os.MkdirAll("logs", 0755); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}

	ts := time.Now()
	path := fmt.Sprintf("logs/run_%s.txt", ts.Format("2006-01-02_15-04-05"))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	fmt.Fprintf(f, "=== bmpconv run report ===\n")
	fmt.Fprintf(f, "Timestamp: %s\n", ts.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f, "Mode: %s\n", rec.Mode)
	fmt.Fprintf(f, "Filter: %s\n", rec.FilterID)
	fmt.Fprintf(f, "Partition: %s (block %d)\n", rec.Partition, rec.BlockSize)
	fmt.Fprintf(f, "Elapsed: %.6fs\n", rec.Elapsed.Seconds())

	if rec.Mode == "single-image" {
		fmt.Fprintf(f, "Workers: %d\n", rec.ThreadNum)
	} else {
		fmt.Fprintf(f, "Readers: %d, Workers: %d, Writers: %d\n", rec.Readers, rec.Workers, rec.Writers)
	}

	fmt.Fprintf(f, "\nFiles:\n")
	for i, p := range rec.Files {
		fmt.Fprintf(f, "  %d. %s\n", i+1, p)
	}

	return nil
}
