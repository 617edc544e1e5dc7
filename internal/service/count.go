package service

import (
	"github.com/yokitheyo/logsweep/internal/logfs"
	"github.com/yokitheyo/logsweep/internal/model"
)

type CountOutcome struct {
	Total    int             `json:"total"`
	Failures []model.Failure `json:"failures"`
}

// CountTotalLogs counts log files modified within rng across all roots. A
// failed root contributes nothing.
func (e *Engine) CountTotalLogs(roots []string, rng model.DateRange) (*CountOutcome, error) {
	if err := requireRoots(roots); err != nil {
		return nil, err
	}
	if err := requireRange(rng); err != nil {
		return nil, err
	}

	r := e.newRun("total-logs")
	out := &CountOutcome{}
	r.eachRoot(roots, func(root string) error {
		n := 0
		err := e.scanner.Walk(root, func(path string) {
			f, err := logfs.Stat(path)
			if err != nil {
				r.fail(path, err)
				return
			}
			if rng.Contains(f.ModTime) {
				n++
			}
		}, r.fail)
		if err != nil {
			return err
		}
		out.Total += n
		return nil
	})
	out.Failures = r.failures
	return out, nil
}
