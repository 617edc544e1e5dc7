package service

import (
	"fmt"
	"strings"

	logerr "github.com/yokitheyo/logsweep/internal/errors"
	"github.com/yokitheyo/logsweep/internal/model"
)

// Policy selects how repeated lines are counted.
type Policy int

const (
	// AllOccurrences counts every occurrence of a line.
	AllOccurrences Policy = iota
	// DuplicatesOnly skips the first occurrence of each line, so a line
	// seen n times counts n-1 and a line seen once is absent.
	DuplicatesOnly
)

type FrequencyOutcome struct {
	Table    *model.FrequencyTable `json:"-"`
	Counts   map[string]int        `json:"counts"`
	Report   string                `json:"report"`
	Failures []model.Failure       `json:"failures"`
}

// CountErrors counts every distinct line across all roots.
func (e *Engine) CountErrors(roots []string) (*FrequencyOutcome, error) {
	return e.aggregate("count", roots, AllOccurrences)
}

// CountDuplicateErrors counts repeats of every distinct line across all roots.
func (e *Engine) CountDuplicateErrors(roots []string) (*FrequencyOutcome, error) {
	return e.aggregate("count-duplicates", roots, DuplicatesOnly)
}

func (e *Engine) aggregate(op string, roots []string, policy Policy) (*FrequencyOutcome, error) {
	if err := requireRoots(roots); err != nil {
		return nil, err
	}

	r := e.newRun(op)
	table := model.NewFrequencyTable()
	var seen model.DuplicateTracker
	if policy == DuplicatesOnly {
		seen = model.DuplicateTracker{}
	}

	r.eachRoot(roots, func(root string) error {
		return e.scanner.Walk(root, func(path string) {
			err := e.scanner.ReadLines(path, func(line model.LogLine) {
				if seen != nil && !seen.Seen(line.Text) {
					return
				}
				table.Inc(line.Text)
			})
			if err != nil {
				r.fail(path, err)
			}
		}, r.fail)
	})

	report, err := FormatReport(table)
	if err != nil {
		return nil, err
	}
	return &FrequencyOutcome{
		Table:    table,
		Counts:   table.Map(),
		Report:   report,
		Failures: r.failures,
	}, nil
}

// FormatReport renders one "Error: <line>, Count: <n>" line per entry in
// insertion order.
func FormatReport(table *model.FrequencyTable) (string, error) {
	if table == nil {
		return "", logerr.Newf(logerr.AggregationFailure, "no frequency table to report")
	}
	var b strings.Builder
	table.Each(func(line string, count int) {
		fmt.Fprintf(&b, "Error: %s, Count: %d\n", line, count)
	})
	return b.String(), nil
}
