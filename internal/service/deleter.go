package service

import (
	"os"
	"path/filepath"

	logerr "github.com/yokitheyo/logsweep/internal/errors"
	"github.com/yokitheyo/logsweep/internal/logfs"
	"github.com/yokitheyo/logsweep/internal/model"
)

type DeleteOutcome struct {
	Deleted  []string        `json:"deleted"`
	Failures []model.Failure `json:"failures"`
}

// DeleteLogs removes every log file under root, at any depth, whose
// modification time lies in rng. A missing root is DirectoryNotFound and an
// unlistable root is AccessDenied. Failures below the root are recorded and
// skipped.
func (e *Engine) DeleteLogs(root string, rng model.DateRange) (*DeleteOutcome, error) {
	if err := requireRoot(root); err != nil {
		return nil, err
	}
	if err := requireRange(rng); err != nil {
		return nil, err
	}

	r := e.newRun("delete-logs")
	out := &DeleteOutcome{Deleted: []string{}}
	if err := e.deleteRoot(r, root, rng, "", out); err != nil {
		return nil, err
	}
	out.Failures = r.failures
	return out, nil
}

// deleteRoot deletes below root. keep, when set, is an absolute path that is
// never removed even if it matches.
func (e *Engine) deleteRoot(r *run, root string, rng model.DateRange, keep string, out *DeleteOutcome) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return logerr.New(logerr.UnknownFailure, root, err)
	}
	if err := logfs.CheckRoot(abs); err != nil {
		return err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return logerr.FromDir(err, abs, logerr.UnknownFailure)
	}
	e.deleteTree(r, abs, entries, rng, keep, out)
	return nil
}

// deleteTree deletes the matching files directly in dir, then descends into
// each subdirectory. A subdirectory that cannot be listed is recorded and
// its subtree skipped.
func (e *Engine) deleteTree(r *run, dir string, entries []os.DirEntry, rng model.DateRange, keep string, out *DeleteOutcome) {
	var subdirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			subdirs = append(subdirs, path)
			continue
		}
		if path == keep || !e.scanner.MatchEntry(path, entry) {
			continue
		}
		f, err := logfs.Stat(path)
		if err != nil {
			r.fail(path, err)
			continue
		}
		if !rng.Contains(f.ModTime) {
			continue
		}
		if err := os.Remove(path); err != nil {
			r.fail(path, logerr.New(logerr.FileDeleteError, path, err))
			continue
		}
		out.Deleted = append(out.Deleted, path)
	}

	for _, sub := range subdirs {
		children, err := os.ReadDir(sub)
		if err != nil {
			r.fail(sub, logerr.FromDir(err, sub, logerr.FileReadError))
			continue
		}
		e.deleteTree(r, sub, children, rng, keep, out)
	}
}
