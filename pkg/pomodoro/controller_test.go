package pomodoro_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonrobin/pomo/pkg/pomodoro"
	"github.com/harrisonrobin/pomo/pkg/tasks"
)

func newController(mode pomodoro.BindMode) (*pomodoro.Controller, *tasks.Memory) {
	mem := tasks.NewMemory()
	e := pomodoro.NewEngine(mem, 2*time.Second, time.Second)
	return pomodoro.NewController(e, mem, mode), mem
}

func TestController_StartRequiresTask(t *testing.T) {
	c, _ := newController(pomodoro.BindReset)

	assert.ErrorIs(t, c.Start(), pomodoro.ErrNoTaskBound)
	assert.False(t, c.Engine().Running())
}

func TestController_StartRequiresEstimate(t *testing.T) {
	c, mem := newController(pomodoro.BindReset)
	id := mem.Add("Inbox zero", 0)
	require.NoError(t, c.Select(id))

	assert.ErrorIs(t, c.Start(), pomodoro.ErrNoEstimateSet)
	assert.False(t, c.Engine().Running())

	require.NoError(t, c.AdjustEstimate(1))
	assert.NoError(t, c.Start())
	assert.True(t, c.Engine().Active())
}

func TestController_SelectUnknownTask(t *testing.T) {
	c, _ := newController(pomodoro.BindReset)

	err := c.Select("nope")
	assert.ErrorIs(t, err, pomodoro.ErrUnknownTask)
	assert.Empty(t, c.Engine().TaskID())
}

func TestController_SelectEmptyUnbinds(t *testing.T) {
	c, mem := newController(pomodoro.BindReset)
	require.NoError(t, c.Select(mem.Add("a", 2)))

	require.NoError(t, c.Select(""))

	assert.Empty(t, c.Engine().TaskID())
	_, err := c.Task()
	assert.ErrorIs(t, err, pomodoro.ErrNoTaskBound)
}

func TestController_AdjustEstimate(t *testing.T) {
	c, mem := newController(pomodoro.BindReset)
	assert.ErrorIs(t, c.AdjustEstimate(1), pomodoro.ErrNoTaskBound)

	id := mem.Add("Refactor", 5)
	require.NoError(t, c.Select(id))

	require.NoError(t, c.AdjustEstimate(-1))
	task, _ := c.Task()
	assert.Equal(t, 4, task.Estimated)

	for i := 0; i < 10; i++ {
		require.NoError(t, c.AdjustEstimate(-1))
	}
	task, _ = c.Task()
	assert.Equal(t, 1, task.Estimated)
}

func TestController_FullSession(t *testing.T) {
	c, mem := newController(pomodoro.BindReset)
	id := mem.Add("Write tests", 2)
	require.NoError(t, c.Select(id))
	require.NoError(t, c.Start())

	for c.Engine().Active() {
		require.NoError(t, c.Tick())
	}

	task, err := c.Task()
	require.NoError(t, err)
	assert.Equal(t, 2, task.Completed)
	assert.True(t, c.Engine().Completed())
	assert.ErrorIs(t, c.Start(), pomodoro.ErrAlreadyCompleted)
	assert.ErrorIs(t, c.Resume(), pomodoro.ErrAlreadyCompleted)

	require.NoError(t, c.Reset())
	task, _ = c.Task()
	assert.Zero(t, task.Completed)
	assert.ErrorIs(t, c.Start(), pomodoro.ErrNoEstimateSet)
}
