package google

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/pomo/pkg/model"
	"github.com/harrisonrobin/pomo/pkg/pending"
	"github.com/harrisonrobin/pomo/pkg/pomodoro"
)

const flushConcurrency = 4

// Syncer delivers a finished interval to a calendar.
type Syncer interface {
	SyncInterval(ctx context.Context, iv model.Interval) (*calendar.Event, error)
}

// Recorder is a Provider that logs every recorded work interval to a
// calendar. The task mutation happens first and alone decides the result;
// calendar delivery runs in the background and failed deliveries stay in the
// pending table until the next Flush.
type Recorder struct {
	pomodoro.Provider
	syncer  Syncer
	pending *pending.Table
	work    time.Duration
	now     func() time.Time

	ctx     context.Context
	wg      sync.WaitGroup
	flushMu sync.Mutex
}

func NewRecorder(ctx context.Context, inner pomodoro.Provider, syncer Syncer, table *pending.Table, work time.Duration) *Recorder {
	return &Recorder{
		Provider: inner,
		syncer:   syncer,
		pending:  table,
		work:     work,
		now:      time.Now,
		ctx:      ctx,
	}
}

func (r *Recorder) RecordIntervalCompletion(id string) error {
	if err := r.Provider.RecordIntervalCompletion(id); err != nil {
		return err
	}

	task, err := r.Provider.Task(id)
	if err != nil {
		log.Printf("Warning: interval recorded but task %s could not be read for the calendar: %v", id, err)
		return nil
	}
	end := r.now()
	r.pending.Add(model.Interval{
		ID:        uuid.New().String(),
		TaskID:    id,
		Label:     task.Label,
		Project:   task.Project,
		Number:    task.Completed,
		Estimated: task.Estimated,
		Start:     end.Add(-r.work),
		End:       end,
	})
	if err := r.pending.Save(); err != nil {
		log.Printf("Warning: failed to save pending intervals: %v", err)
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if _, err := r.Flush(r.ctx); err != nil {
			log.Printf("Calendar sync deferred: %v", err)
		}
	}()
	return nil
}

// Flush delivers every pending interval and returns how many made it.
// An interval leaves the pending table only once the calendar has it.
func (r *Recorder) Flush(ctx context.Context) (int, error) {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	var synced atomic.Int64
	var g errgroup.Group
	g.SetLimit(flushConcurrency)
	for _, iv := range r.pending.List() {
		g.Go(func() error {
			if _, err := r.syncer.SyncInterval(ctx, iv); err != nil {
				return fmt.Errorf("sync interval %s of task %s: %w", iv.ID, iv.TaskID, err)
			}
			r.pending.Remove(iv.ID)
			synced.Add(1)
			return nil
		})
	}
	err := g.Wait()

	if saveErr := r.pending.Save(); saveErr != nil {
		log.Printf("Warning: failed to save pending intervals: %v", saveErr)
	}
	return int(synced.Load()), err
}

// Close waits for background deliveries to finish.
func (r *Recorder) Close() {
	r.wg.Wait()
}
