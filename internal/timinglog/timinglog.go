// Package timinglog appends the run's timing records to a plain-text log
// file, per spec.md §6: one line per record, best-effort (spec.md §7 —
// "Timing logs are best-effort; a failed open is warned once and then
// silenced").
package timinglog

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Event tags used by pipeline mode records.
const (
	QPush  = "QPUSH"
	QPop   = "QPOP"
	Reader = "READER"
	Worker = "WORKER"
	Writer = "WRITER"
)

// Sink appends timing records to a file. A Sink with a nil file silently
// discards writes, which is how disabled logging (--log=0) is represented.
type Sink struct {
	mu      sync.Mutex
	f       *os.File
	warned  bool
	path    string
	enabled bool
}

// Open creates a Sink appending to path. If enabled is false, the returned
// Sink discards every write without ever touching the filesystem.
func Open(path string, enabled bool) *Sink {
	s := &Sink{path: path, enabled: enabled}
	if !enabled {
		return s
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("timinglog: failed to open %s, timing disabled: %v", path, err)
		s.warned = true
		return s
	}
	s.f = f
	return s
}

// Close closes the underlying file, if any.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	return s.f.Close()
}

func (s *Sink) write(line string) {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		if !s.warned {
			log.Printf("timinglog: sink for %s unavailable, dropping further records", s.path)
			s.warned = true
		}
		return
	}
	if _, err := fmt.Fprintln(s.f, line); err != nil && !s.warned {
		log.Printf("timinglog: write to %s failed, dropping further records: %v", s.path, err)
		s.warned = true
	}
}

// SingleImage appends a single-image-mode record:
// <filter> <threadnum> <mode> <block> <seconds>.
func (s *Sink) SingleImage(filterID string, threadNum int, mode string, block int, seconds float64) {
	s.write(fmt.Sprintf("%s %d %s %d %.6f", filterID, threadNum, mode, block, seconds))
}

// PipelineEvent appends a pipeline per-event record: <event_tag> <seconds>.
func (s *Sink) PipelineEvent(tag string, seconds float64) {
	s.write(fmt.Sprintf("%s %.6f", tag, seconds))
}
