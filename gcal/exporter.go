// Package gcal exports dated goals to Google Calendar as all-day events.
package gcal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fmizzell/simplecal"
	"google.golang.org/api/calendar/v3"
)

// EntryIDProperty is the private extended property linking an event to an entry
const EntryIDProperty = "simplecal_id"

// Result counts what an export did
type Result struct {
	Inserted  int
	Updated   int
	Unchanged int
}

// Exporter writes entries to one calendar
type Exporter struct {
	srv        *calendar.Service
	calendarID string
	logger     *slog.Logger
}

// NewExporter creates an exporter for calendarID
func NewExporter(srv *calendar.Service, calendarID string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{srv: srv, calendarID: calendarID, logger: logger}
}

// ResolveCalendarID finds the id of the calendar whose summary is name.
// "primary" is returned as is.
func ResolveCalendarID(ctx context.Context, srv *calendar.Service, name string) (string, error) {
	if name == "" || name == "primary" {
		return "primary", nil
	}

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

// ExportDay creates or updates one all-day event per entry on date's day
func (e *Exporter) ExportDay(ctx context.Context, date time.Time, entries []simplecal.Entry) (Result, error) {
	var res Result
	for _, entry := range entries {
		event := eventFor(date, entry)

		existing, err := e.findEvent(ctx, entry.ID)
		if err != nil {
			return res, fmt.Errorf("error searching for event: %w", err)
		}

		if existing == nil {
			if _, err := e.srv.Events.Insert(e.calendarID, event).Context(ctx).Do(); err != nil {
				return res, fmt.Errorf("failed to insert event for %s: %w", entry.ShortID(), err)
			}
			res.Inserted++
			e.logger.Debug("event inserted", "entry", entry.ID, "date", simplecal.DateKey(date))
			continue
		}

		patch := eventPatch(existing, event)
		if patch == nil {
			res.Unchanged++
			continue
		}
		if _, err := e.srv.Events.Patch(e.calendarID, existing.Id, patch).Context(ctx).Do(); err != nil {
			return res, fmt.Errorf("failed to patch event %s: %w", existing.Id, err)
		}
		res.Updated++
		e.logger.Debug("event patched", "entry", entry.ID, "event", existing.Id)
	}
	return res, nil
}

// findEvent looks for an event carrying the entry id in its private properties
func (e *Exporter) findEvent(ctx context.Context, entryID string) (*calendar.Event, error) {
	events, err := e.srv.Events.List(e.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", EntryIDProperty, entryID)).
		ShowDeleted(false).
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

func eventFor(date time.Time, entry simplecal.Entry) *calendar.Event {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	var desc []string
	if entry.IsPriority {
		desc = append(desc, "Priority")
	}
	if entry.IsCompleted {
		desc = append(desc, "Completed")
	}

	return &calendar.Event{
		Summary:      entry.Text,
		Description:  strings.Join(desc, "\n"),
		Start:        &calendar.EventDateTime{Date: simplecal.DateKey(day)},
		End:          &calendar.EventDateTime{Date: simplecal.DateKey(day.AddDate(0, 0, 1))},
		Transparency: "transparent",
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{EntryIDProperty: entry.ID},
		},
	}
}

// eventPatch returns the fields of want that differ from have, nil if none do
func eventPatch(have, want *calendar.Event) *calendar.Event {
	patch := &calendar.Event{}
	changed := false

	if have.Summary != want.Summary {
		patch.Summary = want.Summary
		changed = true
	}
	if have.Description != want.Description {
		patch.Description = want.Description
		if want.Description == "" {
			patch.ForceSendFields = append(patch.ForceSendFields, "Description")
		}
		changed = true
	}
	if have.Start == nil || have.Start.Date != want.Start.Date || have.End == nil || have.End.Date != want.End.Date {
		patch.Start = want.Start
		patch.End = want.End
		changed = true
	}

	if !changed {
		return nil
	}
	return patch
}
