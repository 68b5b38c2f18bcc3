package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonrobin/pomo/pkg/pomodoro"
)

func TestMemory_Lifecycle(t *testing.T) {
	m := NewMemory()
	a := m.Add("Write report", 3)
	b := m.Add("Review PR", 1)

	list, err := m.Tasks()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a, list[0].ID)
	assert.Equal(t, b, list[1].ID)

	require.NoError(t, m.RecordIntervalCompletion(a))
	require.NoError(t, m.AdjustEstimatedIntervals(a, -1))
	task, err := m.Task(a)
	require.NoError(t, err)
	assert.Equal(t, 1, task.Completed)
	assert.Equal(t, 2, task.Estimated)

	require.NoError(t, m.ResetTaskProgress(a))
	task, _ = m.Task(a)
	assert.Zero(t, task.Completed)
	assert.Zero(t, task.Estimated)
}

func TestMemory_UnknownIDs(t *testing.T) {
	m := NewMemory()

	_, err := m.Task("missing")
	assert.ErrorIs(t, err, pomodoro.ErrUnknownTask)
	assert.ErrorIs(t, m.RecordIntervalCompletion("missing"), pomodoro.ErrUnknownTask)
	assert.NoError(t, m.AdjustEstimatedIntervals("", 1))
	assert.NoError(t, m.ResetTaskProgress(""))
}

func TestMemory_EstimateFloor(t *testing.T) {
	m := NewMemory()
	id := m.Add("x", 1)

	require.NoError(t, m.AdjustEstimatedIntervals(id, -1))
	task, _ := m.Task(id)
	assert.Equal(t, 1, task.Estimated)
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		spec    string
		label   string
		est     int
		wantErr bool
	}{
		{"Write report:4", "Write report", 4, false},
		{"Write report", "Write report", 0, false},
		{"ratio 1:2:3", "ratio 1:2", 3, false},
		{"fix: login", "fix: login", 0, false},
		{"bad:x", "bad:x", 0, false},
		{"", "", 0, true},
		{":3", "", 0, true},
		{"neg:-1", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			label, est, err := ParseSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.label, label)
			assert.Equal(t, tt.est, est)
		})
	}
}
