package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/pomo/pkg/auth"
	"github.com/harrisonrobin/pomo/pkg/config"
	"github.com/harrisonrobin/pomo/pkg/google"
	"github.com/harrisonrobin/pomo/pkg/index"
	"github.com/harrisonrobin/pomo/pkg/model"
	"github.com/harrisonrobin/pomo/pkg/pending"
	"github.com/harrisonrobin/pomo/pkg/pomodoro"
	"github.com/harrisonrobin/pomo/pkg/tasks"
	"github.com/harrisonrobin/pomo/pkg/taskwarrior"
)

var errNotAuthorized = errors.New("not authorized with Google Calendar, run `pomo auth`")

// taskStore is a provider that can also list tasks.
type taskStore interface {
	pomodoro.Provider
	pomodoro.Catalog
}

// calendarClient is the part of the calendar client the commands use.
type calendarClient interface {
	google.Syncer
	ListTaskIntervals(ctx context.Context, taskID string, timeMin time.Time) ([]*calendar.Event, error)
}

type calendarFactory func(ctx context.Context, dir, name string, idx *index.EventIndex) (calendarClient, error)

// connectCalendar never starts the browser flow; that is left to pomo auth.
func connectCalendar(ctx context.Context, dir, name string, idx *index.EventIndex) (calendarClient, error) {
	if !auth.HasToken(dir) {
		return nil, errNotAuthorized
	}
	client, err := google.NewClient(ctx, dir, name, idx)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// offlineSyncer keeps every interval pending when the calendar is
// unreachable at startup.
type offlineSyncer struct {
	err error
}

func (s offlineSyncer) SyncInterval(context.Context, model.Interval) (*calendar.Event, error) {
	return nil, s.err
}

// backend is the provider stack a command works against.
type backend struct {
	provider pomodoro.Provider
	catalog  pomodoro.Catalog
	recorder *google.Recorder
}

// Close waits for background calendar writes.
func (b *backend) Close() {
	if b.recorder != nil {
		b.recorder.Close()
	}
}

func (a *app) openStore(cfg *config.Config) (taskStore, error) {
	switch cfg.Provider {
	case config.ProviderMemory:
		mem := tasks.NewMemory()
		for _, spec := range a.tasks {
			label, est, err := tasks.ParseSpec(spec)
			if err != nil {
				return nil, err
			}
			mem.Add(label, est)
		}
		return mem, nil
	default:
		client := taskwarrior.NewClient()
		if a.runner != nil {
			client = taskwarrior.NewClientWithRunner(a.runner)
		}
		return taskwarrior.NewProvider(client, cfg.WorkDuration), nil
	}
}

// openBackend builds the provider stack. With calendar_log set the store is
// wrapped in a Recorder; if the calendar cannot be reached the Recorder still
// queues intervals for a later pomo sync.
func (a *app) openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	store, err := a.openStore(cfg)
	if err != nil {
		return nil, err
	}
	b := &backend{provider: store, catalog: store}
	if !cfg.CalendarLog {
		return b, nil
	}

	dir, err := a.home()
	if err != nil {
		return nil, err
	}
	table, err := pending.NewTable(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending intervals: %w", err)
	}

	var syncer google.Syncer
	if client, err := a.openCalendar(ctx, cfg); err != nil {
		log.Printf("Warning: calendar unavailable, intervals will be kept for pomo sync: %v", err)
		syncer = offlineSyncer{err: err}
	} else {
		syncer = client
	}

	b.recorder = google.NewRecorder(ctx, store, syncer, table, cfg.WorkDuration)
	b.provider = b.recorder
	return b, nil
}

func (a *app) openCalendar(ctx context.Context, cfg *config.Config) (calendarClient, error) {
	dir, err := a.home()
	if err != nil {
		return nil, err
	}
	idx, err := index.NewEventIndex(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load event index: %w", err)
	}
	return a.connect(ctx, dir, cfg.Calendar, idx)
}
