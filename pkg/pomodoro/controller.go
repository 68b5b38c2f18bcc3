package pomodoro

import (
	"fmt"

	"github.com/harrisonrobin/pomo/pkg/model"
)

// Controller is the command-issuing side of the timer. It validates commands
// against the bound task before handing them to the engine.
type Controller struct {
	engine   *Engine
	provider Provider
	mode     BindMode
}

// NewController wraps an engine. mode is applied on every Select.
func NewController(e *Engine, p Provider, mode BindMode) *Controller {
	return &Controller{engine: e, provider: p, mode: mode}
}

func (c *Controller) Engine() *Engine { return c.engine }

// Select binds the timer to a task after checking that the provider knows it.
func (c *Controller) Select(id string) error {
	if id != "" {
		if _, err := c.provider.Task(id); err != nil {
			return fmt.Errorf("select task %s: %w", id, err)
		}
	}
	c.engine.Select(id, c.mode)
	return nil
}

// Task returns a fresh snapshot of the bound task.
func (c *Controller) Task() (model.Task, error) {
	id := c.engine.TaskID()
	if id == "" {
		return model.Task{}, ErrNoTaskBound
	}
	return c.provider.Task(id)
}

// Start rejects a session without a task or without an estimate.
func (c *Controller) Start() error {
	task, err := c.Task()
	if err != nil {
		return err
	}
	if task.Estimated == 0 {
		return ErrNoEstimateSet
	}
	return c.engine.Start()
}

func (c *Controller) Pause() { c.engine.Pause() }

func (c *Controller) Resume() error { return c.engine.Resume() }

func (c *Controller) Reset() error { return c.engine.Reset() }

func (c *Controller) Tick() error { return c.engine.Tick() }

// AdjustEstimate moves the bound task's estimate by delta, never below one.
func (c *Controller) AdjustEstimate(delta int) error {
	id := c.engine.TaskID()
	if id == "" {
		return ErrNoTaskBound
	}
	return c.provider.AdjustEstimatedIntervals(id, delta)
}
