package service

import (
	logerr "github.com/yokitheyo/logsweep/internal/errors"
	"github.com/yokitheyo/logsweep/internal/logfs"
	"github.com/yokitheyo/logsweep/internal/model"
)

type SizeOutcome struct {
	Results  []model.SizeResult `json:"results"`
	Failures []model.Failure    `json:"failures"`
}

// SearchBySize returns the log files whose size in whole kilobytes lies in
// [minKB, maxKB].
func (e *Engine) SearchBySize(roots []string, minKB, maxKB int64) (*SizeOutcome, error) {
	if err := requireRoots(roots); err != nil {
		return nil, err
	}
	if minKB < 0 || maxKB < minKB {
		return nil, logerr.Newf(logerr.InvalidInput, "size range [%d, %d] is invalid", minKB, maxKB)
	}

	r := e.newRun("search-by-size")
	out := &SizeOutcome{Results: []model.SizeResult{}}
	r.eachRoot(roots, func(root string) error {
		return e.scanner.Walk(root, func(path string) {
			f, err := logfs.Stat(path)
			if err != nil {
				r.fail(path, err)
				return
			}
			if kb := f.SizeKB(); kb >= minKB && kb <= maxKB {
				out.Results = append(out.Results, model.SizeResult{FilePath: path, SizeKB: kb})
			}
		}, r.fail)
	})
	out.Failures = r.failures
	return out, nil
}
