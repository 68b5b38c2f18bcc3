package taskwarrior

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"

	"github.com/harrisonrobin/pomo/pkg/pomodoro"
)

// Runner executes the task binary with args and returns its stdout.
type Runner func(args ...string) ([]byte, error)

type Client struct {
	run Runner
}

func NewClient() *Client {
	return &Client{run: execTask}
}

// NewClientWithRunner returns a client that shells out through run instead
// of the task binary.
func NewClientWithRunner(run Runner) *Client {
	return &Client{run: run}
}

func execTask(args ...string) ([]byte, error) {
	output, err := exec.Command("task", args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("taskwarrior command failed: exit code %d, %s, stderr: %s",
				exitErr.ExitCode(), err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("taskwarrior command failed: %w", err)
	}
	return output, nil
}

func (c *Client) GetTasks(filter []string) ([]Task, error) {
	args := append(append([]string{}, filter...), "export", "rc.hooks=0")
	output, err := c.run(args...)
	if err != nil {
		return nil, err
	}

	var tasks []Task
	if err := json.Unmarshal(output, &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal taskwarrior output: %w", err)
	}
	return tasks, nil
}

// GetTask exports the task with the given UUID.
func (c *Client) GetTask(uuid string) (Task, error) {
	tasks, err := c.GetTasks([]string{"uuid:" + uuid})
	if err != nil {
		return Task{}, err
	}
	if len(tasks) == 0 {
		return Task{}, fmt.Errorf("%w: %s", pomodoro.ErrUnknownTask, uuid)
	}
	return tasks[0], nil
}

// Modify sets attributes ("name:value") on a single task. Hooks stay enabled
// so other on-modify integrations see the change.
func (c *Client) Modify(uuid string, attrs ...string) error {
	args := append([]string{"rc.verbose=nothing", "rc.confirmation=off", uuid, "modify"}, attrs...)
	if _, err := c.run(args...); err != nil {
		return fmt.Errorf("modify task %s: %w", uuid, err)
	}
	return nil
}
