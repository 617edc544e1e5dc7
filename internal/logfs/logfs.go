// Package logfs discovers log files under a directory tree and reads them.
package logfs

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	logerr "github.com/yokitheyo/logsweep/internal/errors"
	"github.com/yokitheyo/logsweep/internal/model"
)

const (
	DefaultPattern      = "*.log"
	DefaultMaxLineBytes = 10 * 1024 * 1024
)

// Scanner finds files whose base name matches a glob pattern.
type Scanner struct {
	pattern      string
	maxLineBytes int
}

// New returns a Scanner for pattern, e.g. "*.log". Empty values fall back to
// the defaults.
func New(pattern string, maxLineBytes int) (*Scanner, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, logerr.Newf(logerr.InvalidInput, "invalid log file pattern %q", pattern)
	}
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	return &Scanner{pattern: pattern, maxLineBytes: maxLineBytes}, nil
}

// Pattern returns the base name pattern.
func (s *Scanner) Pattern() string {
	return s.pattern
}

// Match reports whether a base file name is a log file.
func (s *Scanner) Match(name string) bool {
	ok, _ := doublestar.Match(s.pattern, name)
	return ok
}

// MatchEntry reports whether the directory entry at path is a log file.
// Directories never match, nor do symlinks that resolve to a directory.
func (s *Scanner) MatchEntry(path string, d fs.DirEntry) bool {
	if d.IsDir() || !s.Match(d.Name()) {
		return false
	}
	if d.Type()&fs.ModeSymlink != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return false
		}
	}
	return true
}

// CheckRoot fails with DirectoryNotFound unless root is an existing directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return logerr.FromDir(err, root, logerr.UnknownFailure)
	}
	if !info.IsDir() {
		return logerr.Newf(logerr.DirectoryNotFound, "not a directory: %s", root)
	}
	return nil
}

// Walk calls fn with the absolute path of every log file under root, at any
// depth. Symlinked directories are not followed, so each file is visited
// once. A subdirectory that cannot be listed is passed to skipped (which may
// be nil) and its subtree is left out; an unlistable root is returned.
func (s *Scanner) Walk(root string, fn func(path string), skipped func(dir string, err error)) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return logerr.New(logerr.UnknownFailure, root, err)
	}
	if err := CheckRoot(abs); err != nil {
		return err
	}

	return fs.WalkDir(os.DirFS(abs), ".", func(p string, d fs.DirEntry, err error) error {
		path := filepath.Join(abs, filepath.FromSlash(p))
		if err != nil {
			if p == "." {
				return logerr.FromDir(err, abs, logerr.UnknownFailure)
			}
			if skipped != nil {
				skipped(path, logerr.FromDir(err, path, logerr.FileReadError))
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if s.MatchEntry(path, d) {
			fn(path)
		}
		return nil
	})
}

// Stat reads the size and modification time of one file.
func Stat(path string) (model.LogFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.LogFile{}, logerr.New(logerr.FileReadError, path, err)
	}
	return model.LogFile{Path: path, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// ReadLines calls fn for every line of the file at path. Lines are not
// trimmed. Any failure aborts this file only and is returned as a
// FileReadError.
func (s *Scanner) ReadLines(path string, fn func(line model.LogLine)) error {
	f, err := os.Open(path)
	if err != nil {
		return logerr.New(logerr.FileReadError, path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, min(64*1024, s.maxLineBytes))
	scanner.Buffer(buf, s.maxLineBytes)

	for scanner.Scan() {
		fn(model.LogLine{Path: path, Text: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return logerr.New(logerr.FileReadError, path, err)
	}
	return nil
}
