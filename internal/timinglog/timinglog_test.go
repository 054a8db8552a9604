package timinglog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledSinkWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timing.log")

	s := Open(path, false)
	s.SingleImage("co", 1, "row", 1, 0.5)
	s.Close()

	if _, err := os.Stat(path); err == nil {
		t.Fatal("disabled sink should never create its file")
	}
}

func TestEnabledSinkAppendsRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timing.log")

	s := Open(path, true)
	s.SingleImage("gb", 4, "grid", 8, 1.25)
	s.PipelineEvent(Reader, 0.01)
	s.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "gb 4 grid 8") {
		t.Fatalf("unexpected single-image record: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], Reader+" ") {
		t.Fatalf("unexpected pipeline record: %q", lines[1])
	}
}

func TestOpenFailureIsSilentAfterFirstWarning(t *testing.T) {
	// A directory path can never be opened as a file; Open should not panic,
	// and subsequent writes should be silently dropped rather than erroring.
	dir := t.TempDir()
	s := Open(dir, true)
	s.SingleImage("co", 1, "row", 1, 0.1)
	s.SingleImage("co", 1, "row", 1, 0.1)
	s.Close()
}
