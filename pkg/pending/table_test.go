package pending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonrobin/pomo/pkg/model"
)

func interval(id string, end time.Time) model.Interval {
	return model.Interval{ID: id, TaskID: "task", Label: "Write", Number: 1, Estimated: 2, Start: end.Add(-time.Minute), End: end}
}

func TestTable_ListOrdersByEnd(t *testing.T) {
	table, err := NewTable(t.TempDir())
	require.NoError(t, err)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	table.Add(interval("late", now.Add(time.Hour)))
	table.Add(interval("early", now))
	table.Add(interval("mid", now.Add(time.Minute)))

	list := table.List()
	require.Len(t, list, 3)
	assert.Equal(t, "early", list[0].ID)
	assert.Equal(t, "mid", list[1].ID)
	assert.Equal(t, "late", list[2].ID)
	assert.Equal(t, 3, table.Len())

	table.Remove("mid")
	list = table.List()
	require.Len(t, list, 2)
	assert.Equal(t, "late", list[1].ID)
}

func TestTable_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	table, err := NewTable(dir)
	require.NoError(t, err)
	end := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	table.Add(interval("a", end))
	table.Add(interval("b", end))
	table.Remove("b")
	table.Remove("missing")
	require.NoError(t, table.Save())

	reopened, err := NewTable(dir)
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Len())
	got := reopened.List()[0]
	assert.Equal(t, "a", got.ID)
	assert.True(t, got.End.Equal(end))
}

func TestTable_AddReplaces(t *testing.T) {
	table, err := NewTable(t.TempDir())
	require.NoError(t, err)
	iv := interval("a", time.Now())
	table.Add(iv)
	iv.Number = 2
	table.Add(iv)

	list := table.List()
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Number)
}
