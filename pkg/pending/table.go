package pending

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/harrisonrobin/pomo/pkg/model"
)

const tableFile = "pending_intervals.json"

// Table holds finished intervals that have not reached the calendar yet.
// Entries survive restarts until a sync succeeds.
type Table struct {
	Entries map[string]model.Interval `json:"entries"`
	Path    string                    `json:"-"`
	mu      sync.Mutex
	dirty   bool
}

func NewTable(dir string) (*Table, error) {
	t := &Table{
		Path:    filepath.Join(dir, tableFile),
		Entries: make(map[string]model.Interval),
	}

	if _, err := os.Stat(t.Path); err == nil {
		if err := t.Load(); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Table) Load() error {
	f, err := os.Open(t.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := json.NewDecoder(f).Decode(t); err != nil {
		return err
	}
	if t.Entries == nil {
		t.Entries = make(map[string]model.Interval)
	}
	return nil
}

func (t *Table) Save() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(t.Path), 0700); err != nil {
		return err
	}

	f, err := os.Create(t.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(t)
	if err == nil {
		t.dirty = false
	}
	return err
}

// Add queues an interval, replacing any entry with the same id.
func (t *Table) Add(iv model.Interval) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Entries[iv.ID] = iv
	t.dirty = true
}

// Remove drops a delivered interval.
func (t *Table) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.Entries[id]; exists {
		delete(t.Entries, id)
		t.dirty = true
	}
}

func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Entries)
}

// List returns every queued interval, oldest first. Entries stay queued
// until Remove is called for them.
func (t *Table) List() []model.Interval {
	t.mu.Lock()
	defer t.mu.Unlock()
	list := make([]model.Interval, 0, len(t.Entries))
	for _, iv := range t.Entries {
		list = append(list, iv)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].End.Before(list[j].End) })
	return list
}
