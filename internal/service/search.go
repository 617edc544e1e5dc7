package service

import (
	"strings"

	logerr "github.com/yokitheyo/logsweep/internal/errors"
	"github.com/yokitheyo/logsweep/internal/model"
)

type SearchOutcome struct {
	Results  []model.SearchResult `json:"results"`
	Failures []model.Failure      `json:"failures"`
}

// Search returns every line under roots that contains query, trimmed.
// Matching is a literal, case-sensitive substring test.
func (e *Engine) Search(roots []string, query string) (*SearchOutcome, error) {
	if err := requireRoots(roots); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, logerr.Newf(logerr.InvalidInput, "query is required")
	}

	r := e.newRun("search")
	out := &SearchOutcome{Results: []model.SearchResult{}}
	r.eachRoot(roots, func(root string) error {
		return e.searchRoot(r, root, query, out)
	})
	out.Failures = r.failures
	return out, nil
}

// SearchDirectory searches a single root. A missing root is returned as
// DirectoryNotFound instead of being skipped.
func (e *Engine) SearchDirectory(root, query string) (*SearchOutcome, error) {
	if err := requireRoot(root); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, logerr.Newf(logerr.InvalidInput, "query is required")
	}

	r := e.newRun("search-by-directory")
	out := &SearchOutcome{Results: []model.SearchResult{}}
	if err := e.searchRoot(r, root, query, out); err != nil {
		return nil, err
	}
	out.Failures = r.failures
	return out, nil
}

func (e *Engine) searchRoot(r *run, root, query string, out *SearchOutcome) error {
	return e.scanner.Walk(root, func(path string) {
		err := e.scanner.ReadLines(path, func(line model.LogLine) {
			if strings.Contains(line.Text, query) {
				out.Results = append(out.Results, model.SearchResult{
					FilePath: line.Path,
					Line:     strings.TrimSpace(line.Text),
				})
			}
		})
		if err != nil {
			r.fail(path, err)
		}
	}, r.fail)
}
