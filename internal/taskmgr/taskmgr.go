package taskmgr

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yokitheyo/logsweep/internal/model"
)

const defaultRetain = 100

// TaskManager keeps the most recent completed requests so their failure
// lists can be fetched after the response has been sent.
type TaskManager struct {
	mu     sync.Mutex
	tasks  map[string]*model.Task
	order  []string // oldest first
	retain int
}

func NewTaskManager(retain int) *TaskManager {
	if retain <= 0 {
		retain = defaultRetain
	}
	return &TaskManager{
		tasks:  make(map[string]*model.Task),
		retain: retain,
	}
}

// Record stores the outcome of one request and returns it. A non-nil err
// marks the task as failed.
func (tm *TaskManager) Record(operation string, failures []model.Failure, err error) *model.Task {
	task := &model.Task{
		ID:        uuid.New().String(),
		Operation: operation,
		CreatedAt: time.Now(),
		Status:    model.StatusDone,
		Failures:  failures,
	}
	if task.Failures == nil {
		task.Failures = []model.Failure{}
	}
	switch {
	case err != nil:
		task.Status = model.StatusError
		task.Error = err.Error()
	case len(failures) > 0:
		task.Status = model.StatusPartial
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.tasks[task.ID] = task
	tm.order = append(tm.order, task.ID)
	for len(tm.order) > tm.retain {
		delete(tm.tasks, tm.order[0])
		tm.order = tm.order[1:]
	}
	return task
}

func (tm *TaskManager) GetTask(taskID string) (*model.Task, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	task, ok := tm.tasks[taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// Len returns the number of retained tasks.
func (tm *TaskManager) Len() int {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return len(tm.tasks)
}

var ErrTaskNotFound = fmt.Errorf("task not found")
