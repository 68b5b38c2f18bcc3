package taskwarrior

import (
	"errors"
	"strings"
	"testing"

	"github.com/harrisonrobin/pomo/pkg/pomodoro"
)

func TestGetTasks_DecodesExport(t *testing.T) {
	output := `[{
		"uuid": "f45a05b3-c12e-42e5-9c9c-333333333333",
		"description": "Buy milk",
		"status": "pending",
		"due": "not a date",
		"project": "Groceries",
		"tags": ["buy", "food"],
		"est": "PT1H",
		"pomodone": 2,
		"pomoest": 3
	}]`
	client := NewClientWithRunner(func(args ...string) ([]byte, error) {
		return []byte(output), nil
	})

	tasks, err := client.GetTasks(nil)
	if err != nil {
		t.Fatalf("GetTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.UUID != "f45a05b3-c12e-42e5-9c9c-333333333333" {
		t.Errorf("Expected UUID f45a05b3-c12e-42e5-9c9c-333333333333, got %s", task.UUID)
	}
	if task.Description != "Buy milk" || task.Project != "Groceries" || task.Est != "PT1H" {
		t.Errorf("unexpected task %+v", task)
	}
	if task.PomoDone != 2 || task.PomoEst == nil || *task.PomoEst != 3 {
		t.Errorf("Expected pomodoros 2/3, got %d/%v", task.PomoDone, task.PomoEst)
	}
}

func TestGetTasks_Args(t *testing.T) {
	var got []string
	client := NewClientWithRunner(func(args ...string) ([]byte, error) {
		got = args
		return []byte(`[{"uuid":"a","description":"x","status":"pending"}]`), nil
	})

	filter := []string{"status:pending"}
	tasks, err := client.GetTasks(filter)
	if err != nil {
		t.Fatalf("GetTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].UUID != "a" {
		t.Errorf("unexpected tasks %+v", tasks)
	}
	if strings.Join(got, " ") != "status:pending export rc.hooks=0" {
		t.Errorf("unexpected args %q", got)
	}
	if len(filter) != 1 {
		t.Errorf("filter slice was modified: %q", filter)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	client := NewClientWithRunner(func(args ...string) ([]byte, error) {
		return []byte(`[]`), nil
	})
	if _, err := client.GetTask("missing"); !errors.Is(err, pomodoro.ErrUnknownTask) {
		t.Errorf("expected ErrUnknownTask, got %v", err)
	}
}

func TestModify_PropagatesError(t *testing.T) {
	boom := errors.New("exit code 2")
	client := NewClientWithRunner(func(args ...string) ([]byte, error) {
		return nil, boom
	})
	if err := client.Modify("a", "pomodone:1"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
