package pomodoro

import (
	"fmt"
	"time"
)

// Phase is the kind of interval being counted down.
type Phase int

const (
	Work Phase = iota
	Break
)

func (p Phase) String() string {
	switch p {
	case Work:
		return "work"
	case Break:
		return "break"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// BindMode controls what Select does to a session in flight.
type BindMode int

const (
	// BindReset returns the engine to its defaults when switching to a
	// different task. Task counters are left alone.
	BindReset BindMode = iota
	// BindContinue keeps the countdown and phase across the switch.
	BindContinue
)

// CompletionMessage is shown once all estimated intervals of a task are done.
const CompletionMessage = "Congratulations! You've completed all estimated Pomodoros for this task!"

// State is a read-only view of the engine for presentation.
type State struct {
	TaskID            string
	Remaining         int // seconds
	Phase             Phase
	Running           bool
	Paused            bool
	Completed         bool
	CompletionMessage string
}

// Engine is the work/break countdown bound to at most one task. It has no
// clock of its own: the host calls Tick once per second while Active.
// An Engine is not safe for concurrent use.
type Engine struct {
	provider Provider
	work     int
	brk      int

	taskID    string
	remaining int
	phase     Phase
	running   bool
	paused    bool
	completed bool
	message   string
}

// NewEngine creates an idle engine in the work phase. Durations are
// truncated to whole seconds with a minimum of one second.
func NewEngine(p Provider, work, brk time.Duration) *Engine {
	e := &Engine{
		provider: p,
		work:     toSeconds(work),
		brk:      toSeconds(brk),
	}
	e.resetState()
	return e
}

func toSeconds(d time.Duration) int {
	if s := int(d / time.Second); s > 0 {
		return s
	}
	return 1
}

func (e *Engine) resetState() {
	e.running = false
	e.paused = false
	e.phase = Work
	e.remaining = e.work
	e.completed = false
	e.message = ""
}

// Select binds the engine to the task with the given id. An empty id unbinds.
// With BindReset, switching to a different task discards the session in
// flight so a countdown started for one task cannot credit another.
func (e *Engine) Select(id string, mode BindMode) {
	if id == e.taskID {
		return
	}
	e.taskID = id
	if mode == BindReset {
		e.resetState()
	}
}

// Start begins or continues counting.
func (e *Engine) Start() error {
	if e.completed {
		return ErrAlreadyCompleted
	}
	e.running = true
	e.paused = false
	return nil
}

// Pause suspends the countdown. It is valid in any state.
func (e *Engine) Pause() {
	e.paused = true
}

// Resume lifts a pause.
func (e *Engine) Resume() error {
	if e.completed {
		return ErrAlreadyCompleted
	}
	e.paused = false
	return nil
}

// Reset returns the engine to its defaults and zeroes the progress of the
// bound task. The engine is reset even when the provider call fails.
func (e *Engine) Reset() error {
	e.resetState()
	if e.taskID == "" {
		return nil
	}
	if err := e.provider.ResetTaskProgress(e.taskID); err != nil {
		return fmt.Errorf("reset progress of task %s: %w", e.taskID, err)
	}
	return nil
}

// Active reports whether Tick would advance the countdown. Hosts stop their
// clock while it is false.
func (e *Engine) Active() bool {
	return e.running && !e.paused && !e.completed
}

// Tick advances the countdown by one second and evaluates the phase
// transition when it reaches zero. It is a no-op unless Active.
//
// If the provider fails while closing a work interval, the engine stays at
// zero without crediting the task and the next Tick retries.
func (e *Engine) Tick() error {
	if !e.Active() {
		return nil
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining > 0 {
		return nil
	}
	return e.expire()
}

func (e *Engine) expire() error {
	if e.phase == Break {
		e.phase = Work
		e.remaining = e.work
		return nil
	}

	if e.taskID == "" {
		e.phase = Break
		e.remaining = e.brk
		return nil
	}

	task, err := e.provider.Task(e.taskID)
	if err != nil {
		return fmt.Errorf("read task %s: %w", e.taskID, err)
	}
	next := task.Completed + 1
	if err := e.provider.RecordIntervalCompletion(e.taskID); err != nil {
		return fmt.Errorf("record interval for task %s: %w", e.taskID, err)
	}

	if next >= task.Estimated {
		e.completed = true
		e.running = false
		e.remaining = 0
		e.message = CompletionMessage
		return nil
	}
	e.phase = Break
	e.remaining = e.brk
	return nil
}

// TaskID returns the bound task id, or "" when unbound.
func (e *Engine) TaskID() string { return e.taskID }

func (e *Engine) Remaining() int { return e.remaining }

func (e *Engine) Phase() Phase { return e.phase }

func (e *Engine) Running() bool { return e.running }

func (e *Engine) Paused() bool { return e.paused }

func (e *Engine) Completed() bool { return e.completed }

func (e *Engine) CompletionMessage() string { return e.message }

// WorkDuration and BreakDuration return the configured phase lengths.
func (e *Engine) WorkDuration() time.Duration { return time.Duration(e.work) * time.Second }

func (e *Engine) BreakDuration() time.Duration { return time.Duration(e.brk) * time.Second }

// Display renders the countdown, or the completion glyph once completed.
func (e *Engine) Display() string {
	if e.completed {
		return CompletedGlyph
	}
	return FormatClock(e.remaining)
}

// Snapshot copies the observable state.
func (e *Engine) Snapshot() State {
	return State{
		TaskID:            e.taskID,
		Remaining:         e.remaining,
		Phase:             e.phase,
		Running:           e.running,
		Paused:            e.paused,
		Completed:         e.completed,
		CompletionMessage: e.message,
	}
}
