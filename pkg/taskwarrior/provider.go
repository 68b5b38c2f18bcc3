package taskwarrior

import (
	"log"
	"strconv"
	"time"

	"github.com/harrisonrobin/pomo/pkg/model"
	"github.com/harrisonrobin/pomo/pkg/pomodoro"
	"github.com/harrisonrobin/pomo/pkg/util"
)

// Provider keeps interval counts in Taskwarrior UDAs.
type Provider struct {
	client *Client
	work   time.Duration
}

// NewProvider returns a Provider. work is used to turn an "est" duration into
// an interval estimate for tasks that never had one set.
func NewProvider(client *Client, work time.Duration) *Provider {
	return &Provider{client: client, work: work}
}

// ToModel converts an exported task.
func (p *Provider) ToModel(t Task) model.Task {
	m := model.Task{
		ID:        t.UUID,
		Label:     t.Description,
		Project:   t.Project,
		Completed: t.PomoDone,
	}
	if t.PomoEst != nil {
		m.Estimated = *t.PomoEst
		return m
	}
	if t.Est != "" {
		est, err := util.ParseDuration(t.Est)
		if err != nil {
			log.Printf("Warning: task %s has unreadable est %q: %v", t.UUID, t.Est, err)
			return m
		}
		m.Estimated = util.EstimateIntervals(est, p.work)
	}
	return m
}

func (p *Provider) Task(id string) (model.Task, error) {
	t, err := p.client.GetTask(id)
	if err != nil {
		return model.Task{}, err
	}
	return p.ToModel(t), nil
}

// Tasks lists pending tasks.
func (p *Provider) Tasks() ([]model.Task, error) {
	tasks, err := p.client.GetTasks([]string{"status:" + PENDING})
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, p.ToModel(t))
	}
	return out, nil
}

func (p *Provider) RecordIntervalCompletion(id string) error {
	t, err := p.Task(id)
	if err != nil {
		return err
	}
	return p.client.Modify(id, attr(UDADone, t.Completed+1))
}

func (p *Provider) AdjustEstimatedIntervals(id string, delta int) error {
	if id == "" {
		return nil
	}
	t, err := p.Task(id)
	if err != nil {
		return err
	}
	return p.client.Modify(id, attr(UDAEstimate, pomodoro.ClampEstimate(t.Estimated, delta)))
}

func (p *Provider) ResetTaskProgress(id string) error {
	if id == "" {
		return nil
	}
	return p.client.Modify(id, attr(UDADone, 0), attr(UDAEstimate, 0))
}

func attr(name string, value int) string {
	return name + ":" + strconv.Itoa(value)
}
