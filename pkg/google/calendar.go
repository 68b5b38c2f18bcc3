package google

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/harrisonrobin/pomo/pkg/index"
	"github.com/harrisonrobin/pomo/pkg/model"
	"github.com/harrisonrobin/pomo/pkg/util"
	"google.golang.org/api/calendar/v3"
)

// eventCancelled is the status of an event deleted in the calendar UI.
const eventCancelled = "cancelled"

// CalendarClient is a Google Calendar API client.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	index      *index.EventIndex
}

// NewCalendarClient creates a new Google Calendar client. idx may be nil.
func NewCalendarClient(srv *calendar.Service, calendarID string, idx *index.EventIndex) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID, index: idx}
}

// SyncInterval creates the event for a finished interval, or patches the
// existing one if it drifted. Calling it again for the same interval is safe.
func (c *CalendarClient) SyncInterval(ctx context.Context, iv model.Interval) (*calendar.Event, error) {
	event, err := util.ConvertIntervalToCalendarEvent(&iv)
	if err != nil {
		return nil, err
	}

	var existingEvent *calendar.Event
	if c.index != nil {
		if eventID := c.index.Get(iv.ID); eventID != "" {
			existingEvent, err = c.srv.Events.Get(c.calendarID, eventID).Context(ctx).Do()
			if err != nil || existingEvent.Status == eventCancelled {
				// The mapped event is gone; fall back to the property search.
				c.forget(iv.ID)
				existingEvent = nil
			}
		}
	}

	if existingEvent == nil {
		existingEvent, err = c.GetEventByIntervalID(ctx, iv.ID)
		if err != nil {
			return nil, fmt.Errorf("error searching for event: %w", err)
		}
	}

	if existingEvent != nil {
		patch, err := util.EventNeedsUpdate(existingEvent, event)
		if err != nil {
			return nil, fmt.Errorf("could not compare interval with its calendar event: %w", err)
		}
		if patch == nil {
			c.remember(iv.ID, existingEvent.Id)
			return existingEvent, nil
		}
		updated, err := c.PatchEvent(ctx, existingEvent.Id, patch)
		if err != nil {
			return nil, err
		}
		c.remember(iv.ID, updated.Id)
		return updated, nil
	}

	created, err := c.srv.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	c.remember(iv.ID, created.Id)
	return created, nil
}

func (c *CalendarClient) remember(intervalID, eventID string) {
	if c.index == nil {
		return
	}
	c.index.Set(intervalID, eventID)
	if err := c.index.Save(); err != nil {
		log.Printf("Warning: failed to save event index: %v", err)
	}
}

func (c *CalendarClient) forget(intervalID string) {
	if c.index == nil {
		return
	}
	c.index.Remove(intervalID)
	if err := c.index.Save(); err != nil {
		log.Printf("Warning: failed to save event index: %v", err)
	}
}

// PatchEvent performs a partial update on an event.
func (c *CalendarClient) PatchEvent(ctx context.Context, eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, eventID, patch).Context(ctx).Do()
}

// ListTaskIntervals returns the logged intervals of a task since timeMin,
// ordered by start time across all result pages.
func (c *CalendarClient) ListTaskIntervals(ctx context.Context, taskID string, timeMin time.Time) ([]*calendar.Event, error) {
	var items []*calendar.Event
	err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", util.PropTask, taskID)).
		TimeMin(timeMin.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Pages(ctx, func(page *calendar.Events) error {
			items = append(items, page.Items...)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events from calendar: %w", err)
	}
	return items, nil
}

// GetEventByIntervalID searches for the event carrying the interval id.
func (c *CalendarClient) GetEventByIntervalID(ctx context.Context, intervalID string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", util.PropInterval, intervalID)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}
