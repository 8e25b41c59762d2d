package intent

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/minhvu-ng/studybot/internal/llm"
)

// TextGenerator is the text-generation capability the extractor depends on.
// Implemented by llm.Client and mocked in tests.
type TextGenerator interface {
	Complete(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error)
}

// calendarKeywords gate the extraction call: without one of these in the
// message, no model round trip is made at all.
var calendarKeywords = []string{
	"lịch", "deadline", "hẹn", "cuộc họp", "sự kiện", "nhắc nhở",
	"meeting", "event", "reminder", "schedule", "appointment",
	"tạo lịch", "đặt lịch", "thêm lịch", "lên lịch",
}

// HasCalendarKeywords reports whether the message passes the calendar
// keyword gate. Callers use it to route between tutoring and calendar
// handling without resolving the full intent.
func HasCalendarKeywords(message string) bool {
	return containsAny(strings.ToLower(message), calendarKeywords)
}

// Extractor turns a free-text message into a ParsedIntent using a single
// model call with a deterministic rule-based fallback. It never returns an
// error: every failure mode degrades to ParseFallback, and the worst case is
// action=none with confidence 0.
type Extractor struct {
	generator TextGenerator
}

func NewExtractor(generator TextGenerator) *Extractor {
	return &Extractor{generator: generator}
}

// Parse extracts a calendar intent from the message. now anchors all
// relative date resolution so a parse is deterministic end-to-end.
func (e *Extractor) Parse(ctx context.Context, message string, now time.Time) *ParsedIntent {
	if !HasCalendarKeywords(message) {
		return &ParsedIntent{Action: ActionNone, RawMessage: message}
	}

	if e.generator == nil {
		return ParseFallback(message, now)
	}

	prompt := buildExtractionPrompt(message, now)
	text, err := e.generator.Complete(ctx, []llm.Message{{Role: "user", Content: prompt}}, llm.Options{
		Temperature: 0.1,
		MaxTokens:   500,
	})
	if err != nil {
		log.Printf("calendar extraction failed, using rule-based fallback: %v", err)
		return ParseFallback(message, now)
	}

	raw, ok := decodeIntentJSON(text)
	if !ok {
		return ParseFallback(message, now)
	}

	return validateAndEnhance(raw, message, now)
}

// validateAndEnhance merges the decoded fields over the defaults, repairs
// invalid values and recomputes confidence from field completeness.
func validateAndEnhance(raw *rawIntent, message string, now time.Time) *ParsedIntent {
	p := &ParsedIntent{
		Action:          Action(raw.Action),
		Title:           strings.TrimSpace(raw.Title),
		Date:            strings.TrimSpace(raw.Date),
		Time:            DefaultTime,
		Description:     raw.Description,
		DurationMinutes: DefaultDurationMinutes,
		ReminderMinutes: DefaultReminderMinutes,
		Confidence:      clamp01(raw.Confidence),
		RawMessage:      message,
	}

	if !p.Action.IsValid() {
		p.Action = ActionNone
	}
	// The model sometimes answers "none" for messages that plainly carry an
	// action verb; re-derive from keywords in that case.
	if p.Action == ActionNone {
		p.Action = detectAction(strings.ToLower(message))
	}

	if raw.Time != nil && *raw.Time != "" {
		p.Time = NormalizeTime(*raw.Time)
	}
	if raw.DurationMinutes != nil && *raw.DurationMinutes > 0 {
		p.DurationMinutes = *raw.DurationMinutes
	}
	if raw.ReminderMinutes != nil && *raw.ReminderMinutes >= 0 {
		p.ReminderMinutes = *raw.ReminderMinutes
	} else if p.Action == ActionCreateDeadline {
		p.ReminderMinutes = DeadlineReminderMinutes
	}

	if p.Date != "" {
		p.Date = NormalizeDate(p.Date, message, now)
	} else if p.Action.IsCreate() {
		p.Date = now.AddDate(0, 0, 1).Format(dateLayout)
	}

	if p.Title == "" && p.Action.IsCreate() {
		p.Title = ExtractTitle(message)
	}

	p.ScoreConfidence()
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
