package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonrobin/pomo/pkg/pomodoro"
	"github.com/harrisonrobin/pomo/pkg/tasks"
)

func newTestModel(t *testing.T, est int) (Model, *tasks.Memory, string) {
	t.Helper()
	mem := tasks.NewMemory()
	id := mem.Add("Write report", est)
	engine := pomodoro.NewEngine(mem, 2*time.Second, time.Second)
	m := New(pomodoro.NewController(engine, mem, pomodoro.BindReset), mem)
	m = update(t, m, m.Init()())
	return m, mem, id
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	if k == "enter" {
		return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func TestModel_LoadsTasks(t *testing.T) {
	m, _, id := newTestModel(t, 2)
	require.Len(t, m.tasks, 1)
	assert.Equal(t, id, m.tasks[0].ID)
	assert.Contains(t, m.View(), "Write report")
	assert.Contains(t, m.View(), "Press s to start work time")
}

func TestModel_StartWithoutTask(t *testing.T) {
	m, _, _ := newTestModel(t, 2)
	m = press(t, m, "s")
	assert.True(t, m.statusErr)
	assert.Equal(t, "Select a task first (enter).", m.status)
	assert.False(t, m.ctrl.Engine().Running())
}

func TestModel_StartWithoutEstimate(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	m = press(t, m, "enter")
	m = press(t, m, "s")
	assert.Equal(t, "Please set an estimated Pomodoros first!", m.status)

	m = press(t, m, "+")
	m = update(t, m, m.loadTasks()())
	assert.Equal(t, 1, m.tasks[0].Estimated)
	m = press(t, m, "s")
	assert.False(t, m.statusErr)
	assert.True(t, m.ctrl.Engine().Running())
}

func TestModel_RunsToCompletion(t *testing.T) {
	m, mem, id := newTestModel(t, 1)
	m = press(t, m, "enter")
	m = press(t, m, "s")
	require.Equal(t, 1, m.tickGen)

	for i := 0; i < 10 && m.ctrl.Engine().Active(); i++ {
		m = update(t, m, tickMsg{gen: m.tickGen})
	}

	task, err := mem.Task(id)
	require.NoError(t, err)
	assert.Equal(t, 1, task.Completed)
	assert.True(t, m.ctrl.Engine().Completed())
	assert.Equal(t, pomodoro.CompletionMessage, m.status)

	m = update(t, m, m.loadTasks()())
	view := m.View()
	assert.Contains(t, view, pomodoro.CompletedGlyph)
	assert.Contains(t, view, "All Pomodoros completed!")
}

func TestModel_StaleTickIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, 2)
	m = press(t, m, "enter")
	m = press(t, m, "s")
	stale := m.tickGen

	m = press(t, m, "p")
	m = press(t, m, "r")
	require.Greater(t, m.tickGen, stale)

	before := m.ctrl.Engine().Remaining()
	m = update(t, m, tickMsg{gen: stale})
	assert.Equal(t, before, m.ctrl.Engine().Remaining())

	m = update(t, m, tickMsg{gen: m.tickGen})
	assert.Equal(t, before-1, m.ctrl.Engine().Remaining())
}

func TestModel_PausedTickIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, 2)
	m = press(t, m, "enter")
	m = press(t, m, "s")
	m = press(t, m, "p")

	before := m.ctrl.Engine().Remaining()
	m = update(t, m, tickMsg{gen: m.tickGen})
	assert.Equal(t, before, m.ctrl.Engine().Remaining())
	assert.Contains(t, m.View(), "Work time (paused)")
}

func TestModel_Reset(t *testing.T) {
	m, mem, id := newTestModel(t, 3)
	require.NoError(t, mem.RecordIntervalCompletion(id))
	m = press(t, m, "enter")
	m = press(t, m, "s")
	m = press(t, m, "x")
	m = update(t, m, m.loadTasks()())

	assert.False(t, m.ctrl.Engine().Running())
	assert.Equal(t, 0, m.tasks[0].Completed)
	assert.Equal(t, 0, m.tasks[0].Estimated)
}

func TestModel_CursorBounds(t *testing.T) {
	mem := tasks.NewMemory()
	mem.Add("a", 1)
	mem.Add("b", 1)
	engine := pomodoro.NewEngine(mem, time.Second, time.Second)
	m := New(pomodoro.NewController(engine, mem, pomodoro.BindReset), mem)
	m = update(t, m, m.Init()())

	m = press(t, m, "k")
	assert.Equal(t, 0, m.cursor)
	m = press(t, m, "j")
	m = press(t, m, "j")
	assert.Equal(t, 1, m.cursor)
	m = press(t, m, "enter")
	assert.Equal(t, m.tasks[1].ID, m.ctrl.Engine().TaskID())
}
