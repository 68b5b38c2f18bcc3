package tui

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harrisonrobin/pomo/pkg/model"
	"github.com/harrisonrobin/pomo/pkg/pomodoro"
)

// tickMsg is one second of the external clock. gen ties it to the clock
// chain that produced it so a chain left over from before a pause dies out.
type tickMsg struct {
	gen int
}

type tasksLoadedMsg struct {
	tasks []model.Task
	err   error
}

// Model is the bubbletea host of the timer. It owns the clock: exactly one
// tick chain runs while the engine is active and none otherwise.
type Model struct {
	ctrl    *pomodoro.Controller
	catalog pomodoro.Catalog
	keys    KeyMap
	help    help.Model
	bar     progress.Model

	tasks     []model.Task
	cursor    int
	status    string
	statusErr bool
	tickGen   int
	width     int
}

func New(ctrl *pomodoro.Controller, catalog pomodoro.Catalog) Model {
	return Model{
		ctrl:    ctrl,
		catalog: catalog,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadTasks()
}

func (m Model) loadTasks() tea.Cmd {
	catalog := m.catalog
	return func() tea.Msg {
		tasks, err := catalog.Tasks()
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

// startClock begins a new tick chain, orphaning any previous one.
func (m *Model) startClock() tea.Cmd {
	m.tickGen++
	return m.nextTick()
}

func (m *Model) nextTick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = describe(err)
	m.statusErr = true
}

func describe(err error) string {
	switch {
	case errors.Is(err, pomodoro.ErrAlreadyCompleted):
		return "You've already completed all Pomodoros for this task!"
	case errors.Is(err, pomodoro.ErrNoEstimateSet):
		return "Please set an estimated Pomodoros first!"
	case errors.Is(err, pomodoro.ErrNoTaskBound):
		return "Select a task first (enter)."
	}
	return err.Error()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = min(40, max(10, msg.Width-8))
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			log.Printf("loading tasks: %v", msg.err)
			m.setError(fmt.Errorf("could not load tasks: %w", msg.err))
			return m, nil
		}
		m.tasks = msg.tasks
		if m.cursor >= len(m.tasks) {
			m.cursor = max(0, len(m.tasks)-1)
		}
		return m, nil

	case tickMsg:
		return m.tick(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) tick(msg tickMsg) (tea.Model, tea.Cmd) {
	engine := m.ctrl.Engine()
	if msg.gen != m.tickGen || !engine.Active() {
		return m, nil
	}

	before := engine.Snapshot()
	if err := m.ctrl.Tick(); err != nil {
		log.Printf("tick: %v", err)
		m.setError(err)
	}
	after := engine.Snapshot()

	var cmds []tea.Cmd
	if before.Phase != after.Phase || before.Completed != after.Completed {
		cmds = append(cmds, m.loadTasks())
		switch {
		case after.Completed:
			m.setStatus(after.CompletionMessage)
		case after.Phase == pomodoro.Break:
			m.setStatus("Pomodoro done. Take a break.")
		default:
			m.setStatus("Break over. Back to work.")
		}
	}
	if engine.Active() {
		cmds = append(cmds, m.nextTick())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	engine := m.ctrl.Engine()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.tasks) == 0 {
			return m, nil
		}
		t := m.tasks[m.cursor]
		if err := m.ctrl.Select(t.ID); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Current Task: " + t.Label)

	case key.Matches(msg, m.keys.Start):
		if err := m.ctrl.Start(); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Work time started.")
		return m, m.startClock()

	case key.Matches(msg, m.keys.Pause):
		m.ctrl.Pause()
		m.setStatus("Paused.")

	case key.Matches(msg, m.keys.Resume):
		if err := m.ctrl.Resume(); err != nil {
			m.setError(err)
			return m, nil
		}
		if engine.Active() {
			m.setStatus("Resumed.")
			return m, m.startClock()
		}

	case key.Matches(msg, m.keys.Reset):
		if err := m.ctrl.Reset(); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Timer reset.")
		}
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.More), key.Matches(msg, m.keys.Less):
		delta := 1
		if key.Matches(msg, m.keys.Less) {
			delta = -1
		}
		if err := m.ctrl.AdjustEstimate(delta); err != nil {
			m.setError(err)
			return m, nil
		}
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// boundTask finds the bound task in the last loaded list.
func (m Model) boundTask() (model.Task, bool) {
	id := m.ctrl.Engine().TaskID()
	if id == "" {
		return model.Task{}, false
	}
	for _, t := range m.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("🍅 pomo"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.viewTasks(), " ", m.viewTimer()))
	b.WriteString("\n")

	if m.status != "" {
		style := StatusStyle
		if m.statusErr {
			style = ErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewTasks() string {
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Tasks"))
	b.WriteString("\n")
	if len(m.tasks) == 0 {
		b.WriteString(StatusStyle.Render("no pending tasks"))
	}
	bound := m.ctrl.Engine().TaskID()
	for i, t := range m.tasks {
		prefix := "  "
		style := TaskStyle
		if i == m.cursor {
			prefix = "❯ "
			style = TaskCursorStyle
		}
		if t.Done() {
			style = TaskDoneStyle
		}
		marker := " "
		if t.ID == bound {
			marker = "●"
		}
		line := fmt.Sprintf("%s%s %s %s", prefix, marker, style.Render(t.Label),
			CountStyle.Render(fmt.Sprintf("%d/%d", t.Completed, t.Estimated)))
		b.WriteString(line)
		if i < len(m.tasks)-1 {
			b.WriteString("\n")
		}
	}
	return PanelStyle.Render(b.String())
}

func (m Model) viewTimer() string {
	engine := m.ctrl.Engine()
	var lines []string

	clock := ClockStyle
	if engine.Completed() {
		clock = ClockDoneStyle
	}
	lines = append(lines, clock.Render(engine.Display()), "")

	if t, ok := m.boundTask(); ok {
		lines = append(lines, "Current Task: "+t.Label)
		percent := 0.0
		if t.Estimated > 0 {
			percent = min(1, float64(t.Completed)/float64(t.Estimated))
		}
		lines = append(lines,
			m.bar.ViewAs(percent)+" "+CountStyle.Render(fmt.Sprintf("%d/%d", t.Completed, t.Estimated)))
	}

	if msg := engine.CompletionMessage(); msg != "" {
		lines = append(lines, CompletionStyle.Render(msg))
	}
	lines = append(lines, PhaseStyle.Render(phaseLabel(engine.Snapshot())))
	return PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func phaseLabel(s pomodoro.State) string {
	switch {
	case s.Completed:
		return "All Pomodoros completed!"
	case s.Phase == pomodoro.Break:
		if s.Paused {
			return "Break (paused)"
		}
		return "It's break time"
	case s.Running && s.Paused:
		return "Work time (paused)"
	case s.Running:
		return "Work time"
	}
	return "Press s to start work time"
}
