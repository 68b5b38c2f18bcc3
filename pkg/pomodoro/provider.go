package pomodoro

import (
	"errors"

	"github.com/harrisonrobin/pomo/pkg/model"
)

var (
	// ErrAlreadyCompleted is returned by Start and Resume once every
	// estimated interval of the bound task has been worked.
	ErrAlreadyCompleted = errors.New("already completed all pomodoros for this task")
	// ErrNoEstimateSet is returned by Controller.Start for a task whose estimate is 0.
	ErrNoEstimateSet = errors.New("please set an estimated number of pomodoros first")
	// ErrNoTaskBound is returned when a command needs a task and none is selected.
	ErrNoTaskBound = errors.New("no task selected")
	// ErrUnknownTask is returned by providers for ids they do not own.
	ErrUnknownTask = errors.New("unknown task")
)

// Provider owns the canonical interval counts of tasks. The engine never
// changes a task except through these calls.
type Provider interface {
	// Task returns a fresh snapshot of the task.
	Task(id string) (model.Task, error)
	// RecordIntervalCompletion increments the completed count by exactly one.
	RecordIntervalCompletion(id string) error
	// AdjustEstimatedIntervals sets estimated = max(1, estimated+delta).
	// An empty id is a no-op.
	AdjustEstimatedIntervals(id string, delta int) error
	// ResetTaskProgress zeroes both counters. An empty id is a no-op.
	ResetTaskProgress(id string) error
}

// Catalog lists the tasks a user can bind the timer to.
type Catalog interface {
	Tasks() ([]model.Task, error)
}

// ClampEstimate applies the floor of one used by every estimate adjustment.
func ClampEstimate(estimated, delta int) int {
	if n := estimated + delta; n > 1 {
		return n
	}
	return 1
}
