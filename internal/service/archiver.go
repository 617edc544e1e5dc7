package service

import (
	"path/filepath"

	"github.com/yokitheyo/logsweep/internal/archive"
	"github.com/yokitheyo/logsweep/internal/logfs"
	"github.com/yokitheyo/logsweep/internal/model"
)

type ArchiveOutcome struct {
	ArchiveName string          `json:"archive_name"`
	Archives    []string        `json:"archives"`
	Deleted     []string        `json:"deleted"`
	Failures    []model.Failure `json:"failures"`
}

// ArchiveLogs writes, inside each root, a zip of the log files modified in
// rng and then deletes those files. Every root gets its own artifact under
// the same name. Entries are stored under their base name only.
func (e *Engine) ArchiveLogs(roots []string, rng model.DateRange) (*ArchiveOutcome, error) {
	if err := requireRoots(roots); err != nil {
		return nil, err
	}
	if err := requireRange(rng); err != nil {
		return nil, err
	}

	r := e.newRun("archive")
	out := &ArchiveOutcome{
		ArchiveName: archive.Name(rng, e.nameLayout),
		Archives:    []string{},
		Deleted:     []string{},
	}
	r.eachRoot(roots, func(root string) error {
		return e.archiveRoot(r, root, rng, out)
	})
	out.Failures = r.failures
	return out, nil
}

func (e *Engine) archiveRoot(r *run, root string, rng model.DateRange, out *ArchiveOutcome) error {
	var paths []string
	err := e.scanner.Walk(root, func(path string) {
		f, err := logfs.Stat(path)
		if err != nil {
			r.fail(path, err)
			return
		}
		if rng.Contains(f.ModTime) {
			paths = append(paths, path)
		}
	}, r.fail)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	dest := filepath.Join(abs, out.ArchiveName)
	entries := archive.Flatten(paths)
	if err := archive.Write(dest, entries); err != nil {
		return err
	}
	out.Archives = append(out.Archives, dest)
	r.logger.Info("archive written", "path", dest, "entries", len(entries))

	deleted := &DeleteOutcome{}
	if err := e.deleteRoot(r, abs, rng, dest, deleted); err != nil {
		return err
	}
	out.Deleted = append(out.Deleted, deleted.Deleted...)
	return nil
}
