package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/pomo/pkg/model"
	"google.golang.org/api/calendar/v3"
)

const (
	// Calendar color ids: Tomato for intervals, Basil once the estimate is met.
	ColorInterval = "11"
	ColorDone     = "10"

	// Private extended properties used to find logged intervals again.
	PropInterval = "pomo_interval"
	PropTask     = "pomo_task"
)

var durationPart = regexp.MustCompile(`(\d+)([HMS])`)

// ParseDuration parses ISO 8601 duration format (PT1H30M) from Taskwarrior JSON export
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	if len(s) < 2 || s[0] != 'P' {
		return 0, fmt.Errorf("invalid ISO 8601 duration format: %s", s)
	}

	s = s[1:]
	if len(s) == 0 || s[0] != 'T' {
		return 0, fmt.Errorf("invalid ISO 8601 duration (missing T): P%s", s)
	}
	s = s[1:]

	var total time.Duration
	for _, match := range durationPart.FindAllStringSubmatch(s, -1) {
		value, _ := strconv.Atoi(match[1])
		switch match[2] {
		case "H":
			total += time.Duration(value) * time.Hour
		case "M":
			total += time.Duration(value) * time.Minute
		case "S":
			total += time.Duration(value) * time.Second
		}
	}

	if total == 0 {
		return 0, fmt.Errorf("invalid ISO 8601 duration: PT%s", s)
	}

	return total, nil
}

// EstimateIntervals converts a time estimate into a number of work
// intervals, rounding up. Non-positive inputs yield 0.
func EstimateIntervals(estimate, work time.Duration) int {
	if estimate <= 0 || work <= 0 {
		return 0
	}
	n := estimate / work
	if estimate%work != 0 {
		n++
	}
	return int(n)
}

// IntervalSummary is the event title for an interval, e.g. "🍅 Write report (2/4)".
func IntervalSummary(iv model.Interval) string {
	prefix := "🍅"
	if iv.Estimated > 0 && iv.Number >= iv.Estimated {
		prefix = "✓"
	}
	return fmt.Sprintf("%s %s (%d/%d)", prefix, iv.Label, iv.Number, iv.Estimated)
}

// ConvertIntervalToCalendarEvent builds the calendar event for a finished work interval.
func ConvertIntervalToCalendarEvent(iv *model.Interval) (*calendar.Event, error) {
	if iv == nil {
		return nil, fmt.Errorf("could not convert nil Interval")
	}
	if iv.ID == "" || iv.TaskID == "" {
		return nil, fmt.Errorf("interval is missing its id or task id")
	}
	if iv.End.IsZero() || !iv.Start.Before(iv.End) {
		return nil, fmt.Errorf("interval %s has no usable time range", iv.ID)
	}

	colorID := ColorInterval
	if iv.Estimated > 0 && iv.Number >= iv.Estimated {
		colorID = ColorDone
	}

	var desc strings.Builder
	if iv.Project != "" {
		desc.WriteString(fmt.Sprintf("Project: %s\n", iv.Project))
	}
	desc.WriteString(fmt.Sprintf("Task ID: %s\n", iv.TaskID))
	desc.WriteString("\nAccounting:\n")
	desc.WriteString(fmt.Sprintf("• interval: %d of %d\n", iv.Number, iv.Estimated))
	desc.WriteString(fmt.Sprintf("• focused: %s\n", iv.End.Sub(iv.Start).Round(time.Second)))
	if remaining := iv.Estimated - iv.Number; remaining > 0 {
		desc.WriteString(fmt.Sprintf("• remaining: %d\n", remaining))
	}

	return &calendar.Event{
		Summary: IntervalSummary(*iv),
		ColorId: colorID,
		Start: &calendar.EventDateTime{
			DateTime: iv.Start.UTC().Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: iv.End.UTC().Format(time.RFC3339),
		},
		Description: desc.String(),
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				PropInterval: iv.ID,
				PropTask:     iv.TaskID,
			},
		},
	}, nil
}

// EventNeedsUpdate returns a patch event if the fields shared between the
// existing calendar event and the freshly converted one differ, or nil.
func EventNeedsUpdate(existingEvent *calendar.Event, targetEvent *calendar.Event) (*calendar.Event, error) {
	patch := &calendar.Event{}
	needsUpdate := false

	if existingEvent.Summary != targetEvent.Summary {
		patch.Summary = targetEvent.Summary
		needsUpdate = true
	}

	if existingEvent.Description != targetEvent.Description {
		patch.Description = targetEvent.Description
		needsUpdate = true
	}

	if existingEvent.ColorId != targetEvent.ColorId {
		patch.ColorId = targetEvent.ColorId
		needsUpdate = true
	}

	if existingEvent.Start == nil || existingEvent.End == nil {
		patch.Start = targetEvent.Start
		patch.End = targetEvent.End
		return patch, nil
	}

	existingStartTime, err := time.Parse(time.RFC3339, existingEvent.Start.DateTime)
	if err != nil {
		return nil, err
	}
	targetStartTime, err := time.Parse(time.RFC3339, targetEvent.Start.DateTime)
	if err != nil {
		return nil, err
	}
	existingEndTime, err := time.Parse(time.RFC3339, existingEvent.End.DateTime)
	if err != nil {
		return nil, err
	}
	targetEndTime, err := time.Parse(time.RFC3339, targetEvent.End.DateTime)
	if err != nil {
		return nil, err
	}

	if !existingStartTime.Equal(targetStartTime) || !existingEndTime.Equal(targetEndTime) {
		patch.Start = targetEvent.Start
		patch.End = targetEvent.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch, nil
	}
	return nil, nil
}
