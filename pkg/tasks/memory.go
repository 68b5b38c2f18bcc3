package tasks

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/harrisonrobin/pomo/pkg/model"
	"github.com/harrisonrobin/pomo/pkg/pomodoro"
)

// Memory is a Provider and Catalog that keeps tasks in process memory.
type Memory struct {
	mu    sync.RWMutex
	tasks map[string]*model.Task
	order []string
}

func NewMemory() *Memory {
	return &Memory{tasks: make(map[string]*model.Task)}
}

// Add stores a new task and returns its generated id.
func (m *Memory) Add(label string, estimated int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New().String()
	m.tasks[id] = &model.Task{ID: id, Label: label, Estimated: estimated}
	m.order = append(m.order, id)
	return id
}

// ParseSpec parses "label:estimate" as accepted by the --task flag. When the
// text after the last colon is not a number the whole spec is the label. A
// spec without an estimate gets 0, which Start will reject until adjusted.
func ParseSpec(spec string) (string, int, error) {
	label, est := strings.TrimSpace(spec), 0
	if i := strings.LastIndex(spec, ":"); i >= 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(spec[i+1:])); err == nil {
			if n < 0 {
				return "", 0, fmt.Errorf("invalid estimate in task spec %q", spec)
			}
			label, est = strings.TrimSpace(spec[:i]), n
		}
	}
	if label == "" {
		return "", 0, fmt.Errorf("empty label in task spec %q", spec)
	}
	return label, est, nil
}

func (m *Memory) Task(id string) (model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %s", pomodoro.ErrUnknownTask, id)
	}
	return *t, nil
}

// Tasks returns all tasks in insertion order.
func (m *Memory) Tasks() ([]model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Task, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.tasks[id])
	}
	return out, nil
}

func (m *Memory) RecordIntervalCompletion(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return fmt.Errorf("%w: %s", pomodoro.ErrUnknownTask, id)
	}
	t.Completed++
	return nil
}

func (m *Memory) AdjustEstimatedIntervals(id string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		t.Estimated = pomodoro.ClampEstimate(t.Estimated, delta)
	}
	return nil
}

func (m *Memory) ResetTaskProgress(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		t.Completed = 0
		t.Estimated = 0
	}
	return nil
}
