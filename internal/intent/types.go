package intent

// Action is one of the calendar operations a message can resolve to.
type Action string

const (
	ActionCreateEvent    Action = "create_event"
	ActionCreateDeadline Action = "create_deadline"
	ActionListEvents     Action = "list_events"
	ActionDeleteEvent    Action = "delete_event"
	ActionNone           Action = "none"
)

// IsValid reports whether a is one of the known actions.
func (a Action) IsValid() bool {
	switch a {
	case ActionCreateEvent, ActionCreateDeadline, ActionListEvents, ActionDeleteEvent, ActionNone:
		return true
	}
	return false
}

// IsCreate reports whether a creates something on the calendar.
func (a Action) IsCreate() bool {
	return a == ActionCreateEvent || a == ActionCreateDeadline
}

// Default field values shared by the extraction client and the fallback parser.
const (
	DefaultTime             = "09:00"
	DefaultDurationMinutes  = 60
	DefaultReminderMinutes  = 15
	DeadlineReminderMinutes = 60
)

// ParsedIntent is the structured interpretation of a free-text calendar request.
// It is created once per parse and never mutated after being returned.
type ParsedIntent struct {
	Action          Action  `json:"action"`
	Title           string  `json:"title"`
	Date            string  `json:"date"` // YYYY-MM-DD
	Time            string  `json:"time"` // HH:MM, 24-hour
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	ReminderMinutes int     `json:"reminder_minutes"`
	Confidence      float64 `json:"confidence"`
	RawMessage      string  `json:"raw_message,omitempty"`
}

// completeness scores how many fields are filled in. The weights are the ones
// the confidence contract promises (title 0.3, date 0.3, time 0.2, description 0.2).
func (p *ParsedIntent) completeness() float64 {
	score := 0.0
	if p.Title != "" {
		score += 0.3
	}
	if p.Date != "" {
		score += 0.3
	}
	if p.Time != "" {
		score += 0.2
	}
	if p.Description != "" {
		score += 0.2
	}
	return score
}

// ScoreConfidence raises Confidence to the completeness score when an action is
// set. A confidence already reported by the extraction step is never lowered.
func (p *ParsedIntent) ScoreConfidence() {
	if p.Action == ActionNone {
		return
	}
	if c := p.completeness(); c > p.Confidence {
		p.Confidence = c
	}
}
