// Package service implements the log-processing operations over sets of
// directory trees.
package service

import (
	"log/slog"

	"github.com/yokitheyo/logsweep/internal/archive"
	"github.com/yokitheyo/logsweep/internal/logfs"
	"github.com/yokitheyo/logsweep/internal/logging"
)

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	Pattern           string
	MaxLineBytes      int
	ArchiveNameLayout string
	Logger            *slog.Logger
}

// Engine runs the operations. It holds no per-request state and may be used
// by several goroutines at once; each call is itself sequential.
type Engine struct {
	scanner    *logfs.Scanner
	nameLayout string
	logger     *slog.Logger
}

func NewEngine(opts Options) (*Engine, error) {
	scanner, err := logfs.New(opts.Pattern, opts.MaxLineBytes)
	if err != nil {
		return nil, err
	}
	layout := opts.ArchiveNameLayout
	if layout == "" {
		layout = archive.DefaultNameLayout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{scanner: scanner, nameLayout: layout, logger: logger}, nil
}
