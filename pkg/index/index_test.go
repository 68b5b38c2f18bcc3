package index

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventIndex_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	idx, err := NewEventIndex(dir)
	require.NoError(t, err)
	assert.Empty(t, idx.Get("iv-1"))

	idx.Set("iv-1", "evt-1")
	idx.Set("iv-2", "evt-2")
	idx.Remove("iv-2")
	require.NoError(t, idx.Save())

	reopened, err := NewEventIndex(dir)
	require.NoError(t, err)
	assert.Equal(t, "evt-1", reopened.Get("iv-1"))
	assert.Empty(t, reopened.Get("iv-2"))
}

func TestEventIndex_SaveSkipsCleanIndex(t *testing.T) {
	dir := t.TempDir()
	idx, err := NewEventIndex(dir)
	require.NoError(t, err)

	require.NoError(t, idx.Save())

	_, err = os.Stat(idx.Path)
	assert.True(t, os.IsNotExist(err), "clean index should not be written")
}

func TestEventIndex_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	idx, err := NewEventIndex(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(idx.Path, []byte("{not json"), 0600))

	_, err = NewEventIndex(dir)
	assert.Error(t, err)
}
