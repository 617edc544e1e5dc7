package service

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/yokitheyo/logsweep/internal/model"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.Local)
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(Options{})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// writeLog creates path with content and pins its modification time.
func writeLog(t *testing.T, path, content string, mtime time.Time) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	return path
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func rangeOf(from, to time.Time) model.DateRange {
	return model.DateRange{From: from, To: to}
}

// scenarioRoot builds a.log (day 1) and b.log (day 5).
func scenarioRoot(t *testing.T) (root, a, b string) {
	t.Helper()
	root = t.TempDir()
	a = writeLog(t, filepath.Join(root, "a.log"), "ERROR x\n", day(1))
	b = writeLog(t, filepath.Join(root, "b.log"), "ERROR x\nERROR y\n", day(5))
	return root, a, b
}
