package model

import (
	"time"

	logerr "github.com/yokitheyo/logsweep/internal/errors"
)

type TaskStatus string

const (
	StatusDone    TaskStatus = "done"
	StatusPartial TaskStatus = "partial"
	StatusError   TaskStatus = "error"
)

// Failure is one absorbed per-file or per-directory failure.
type Failure struct {
	Unit   string      `json:"unit"`
	Kind   logerr.Kind `json:"kind"`
	Reason string      `json:"reason,omitempty"`
}

// NewFailure records err against unit.
func NewFailure(unit string, err error) Failure {
	return Failure{Unit: unit, Kind: logerr.KindOf(err), Reason: err.Error()}
}

// Task is the record of one completed engine request.
type Task struct {
	ID        string     `json:"id"`
	Operation string     `json:"operation"`
	CreatedAt time.Time  `json:"created_at"`
	Status    TaskStatus `json:"status"`
	Error     string     `json:"error,omitempty"`
	Failures  []Failure  `json:"failures"`
}
