package service

import (
	"log/slog"
	"strings"

	logerr "github.com/yokitheyo/logsweep/internal/errors"
	"github.com/yokitheyo/logsweep/internal/model"
)

// run is the failure accumulator of one request.
type run struct {
	op       string
	logger   *slog.Logger
	failures []model.Failure
	reported map[string]struct{}
}

func (e *Engine) newRun(op string) *run {
	return &run{op: op, logger: e.logger.With("op", op), reported: map[string]struct{}{}}
}

// fail records err against unit and logs it. Repeated reports of the same
// unit and kind are dropped.
func (r *run) fail(unit string, err error) {
	f := model.NewFailure(unit, err)
	key := string(f.Kind) + "\x00" + unit
	if _, ok := r.reported[key]; ok {
		return
	}
	r.reported[key] = struct{}{}
	r.failures = append(r.failures, f)
	r.logger.Warn("skipped after failure", "unit", unit, "kind", string(f.Kind), "error", err)
}

// eachRoot runs fn for every root in order. An error from fn is recorded
// against that root and never stops the loop.
func (r *run) eachRoot(roots []string, fn func(root string) error) {
	for _, root := range roots {
		if strings.TrimSpace(root) == "" {
			r.fail(root, logerr.Newf(logerr.InvalidInput, "empty directory path"))
			continue
		}
		if err := fn(root); err != nil {
			r.fail(root, err)
		}
	}
	r.logger.Debug("request finished", "roots", len(roots), "failures", len(r.failures))
}

func requireRoots(roots []string) error {
	if len(roots) == 0 {
		return logerr.Newf(logerr.InvalidInput, "at least one directory is required")
	}
	return nil
}

func requireRoot(root string) error {
	if strings.TrimSpace(root) == "" {
		return logerr.Newf(logerr.InvalidInput, "directory is required")
	}
	return nil
}

func requireRange(rng model.DateRange) error {
	if rng.From.IsZero() || rng.To.IsZero() {
		return logerr.Newf(logerr.InvalidInput, "from and to dates are required")
	}
	return nil
}
