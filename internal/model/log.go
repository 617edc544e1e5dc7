package model

import (
	"strings"
	"time"

	logerr "github.com/yokitheyo/logsweep/internal/errors"
)

// LogFile is a read-only view of a log file on disk. It is re-read on every
// access and never cached.
type LogFile struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// SizeKB returns the size in whole kilobytes, truncated.
func (f LogFile) SizeKB() int64 {
	return f.Size / 1024
}

// LogLine is the raw text of one line and the file it came from.
type LogLine struct {
	Path string
	Text string
}

type SearchResult struct {
	FilePath string `json:"file_path"`
	Line     string `json:"line"`
}

type SizeResult struct {
	FilePath string `json:"file_path"`
	SizeKB   int64  `json:"size_kb"`
}

// DateRange is inclusive on both ends. From after To matches nothing.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether from <= t <= to.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

var dateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// ParseDate accepts a calendar date, a local date-time or RFC 3339. Values
// without a zone are read in local time, like file modification times.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, logerr.Newf(logerr.InvalidInput, "date is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, logerr.Newf(logerr.InvalidInput, "unrecognized date %q", s)
}
