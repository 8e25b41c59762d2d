package gcal

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

// EventInput describes a timed study event to create.
type EventInput struct {
	Summary         string
	Description     string
	StartTime       time.Time
	EndTime         time.Time
	ReminderMinutes int
}

// DeadlineInput describes an all-day deadline to create.
type DeadlineInput struct {
	Summary         string
	Description     string
	Date            time.Time
	ReminderMinutes int
}

// CreatedEvent is the outcome of creating an event or deadline.
type CreatedEvent struct {
	ID       string
	HTMLLink string
}

// EventSummary is one upcoming event for schedule listings.
type EventSummary struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	StartTime time.Time `json:"start_time"`
	AllDay    bool      `json:"all_day"`
}

func popupReminder(minutes int) *calendar.EventReminders {
	return &calendar.EventReminders{
		UseDefault: false,
		Overrides: []*calendar.EventReminder{
			{Method: "popup", Minutes: int64(minutes)},
		},
		ForceSendFields: []string{"UseDefault"},
	}
}

// CreateEvent creates a timed event in the primary calendar.
func (c *Client) CreateEvent(input EventInput) (*CreatedEvent, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start: &calendar.EventDateTime{
			DateTime: input.StartTime.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: input.EndTime.Format(time.RFC3339),
		},
	}
	if input.ReminderMinutes > 0 {
		event.Reminders = popupReminder(input.ReminderMinutes)
	}

	created, err := c.service.Events.Insert("primary", event).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return &CreatedEvent{ID: created.Id, HTMLLink: created.HtmlLink}, nil
}

// CreateDeadline creates an all-day event for a deadline. Google requires the
// exclusive end date, so End is the day after Date.
func (c *Client) CreateDeadline(input DeadlineInput) (*CreatedEvent, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}

	const dateLayout = "2006-01-02"
	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start: &calendar.EventDateTime{
			Date: input.Date.Format(dateLayout),
		},
		End: &calendar.EventDateTime{
			Date: input.Date.AddDate(0, 0, 1).Format(dateLayout),
		},
	}
	if input.ReminderMinutes > 0 {
		event.Reminders = popupReminder(input.ReminderMinutes)
	}

	created, err := c.service.Events.Insert("primary", event).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create deadline: %w", err)
	}

	return &CreatedEvent{ID: created.Id, HTMLLink: created.HtmlLink}, nil
}

// ListUpcomingEvents returns events in the next daysAhead days, at most max
// entries, ordered by start time.
func (c *Client) ListUpcomingEvents(daysAhead, max int) ([]EventSummary, error) {
	if c.service == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}
	if daysAhead <= 0 {
		daysAhead = 7
	}
	if max <= 0 {
		max = 10
	}

	now := time.Now()
	events, err := c.service.Events.List("primary").
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.AddDate(0, 0, daysAhead).Format(time.RFC3339)).
		SingleEvents(true).
		ShowDeleted(false).
		OrderBy("startTime").
		MaxResults(int64(max)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming events: %w", err)
	}

	result := make([]EventSummary, 0, len(events.Items))
	for _, item := range events.Items {
		if item == nil || item.Status == "cancelled" {
			continue
		}

		summary := EventSummary{ID: item.Id, Summary: item.Summary}
		if item.Start != nil && item.Start.Date != "" {
			startDate, parseErr := time.ParseInLocation("2006-01-02", item.Start.Date, now.Location())
			if parseErr != nil {
				continue
			}
			summary.AllDay = true
			summary.StartTime = startDate
		} else if item.Start != nil && item.Start.DateTime != "" {
			startTime, parseErr := time.Parse(time.RFC3339, item.Start.DateTime)
			if parseErr != nil {
				continue
			}
			summary.StartTime = startTime
		} else {
			continue
		}

		result = append(result, summary)
	}

	return result, nil
}
