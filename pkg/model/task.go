package model

// Task is a snapshot of a task as seen by the timer. The task source owns the
// canonical state; a Task value is never written back directly.
type Task struct {
	ID        string
	Label     string
	Project   string
	Completed int // completed work intervals
	Estimated int // estimated work intervals
}

// Done reports whether the task has reached its estimate.
func (t Task) Done() bool {
	return t.Estimated > 0 && t.Completed >= t.Estimated
}
