package google

import (
	"context"
	"fmt"

	"github.com/harrisonrobin/pomo/pkg/auth"
	"github.com/harrisonrobin/pomo/pkg/index"
	"google.golang.org/api/calendar/v3"
)

// NewClient authenticates with the credentials in dir and resolves the
// calendar named calendarName.
func NewClient(ctx context.Context, dir, calendarName string, idx *index.EventIndex) (*CalendarClient, error) {
	srv, err := auth.GetCalendarService(ctx, dir)
	if err != nil {
		return nil, err
	}

	calendarID, err := FindCalendarID(ctx, srv, calendarName)
	if err != nil {
		return nil, err
	}
	return NewCalendarClient(srv, calendarID, idx), nil
}

// FindCalendarID returns the id of the calendar whose summary is name.
func FindCalendarID(ctx context.Context, srv *calendar.Service, name string) (string, error) {
	calendarList, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}

	for _, item := range calendarList.Items {
		if item.Summary == name {
			return item.Id, nil
		}
	}
	return "", fmt.Errorf("calendar '%s' not found", name)
}
