package intent

import (
	"regexp"
	"strings"
	"time"
)

const (
	placeholderTitle = "Sự kiện mới"
	maxTitleLen      = 50
	maxDescription   = 200
)

// Action keyword buckets, checked in order: creation first, then listing,
// then deletion.
var (
	createKeywords = []string{"tạo", "đặt", "thêm", "lên lịch", "create", "add"}
	listKeywords   = []string{"xem", "hiện", "list", "show"}
	deleteKeywords = []string{"xóa", "hủy", "delete", "cancel"}
)

// titleStopPatterns match calendar phrases, case-insensitively, that are
// stripped out of a message before it is used as an event title. Matching
// runs on compiled patterns: case folding can change rune width, so byte
// indexes into a lowered copy of the message do not line up with the
// original.
var titleStopPatterns = compileStopPhrases(
	"tạo lịch", "đặt lịch", "thêm lịch", "lên lịch", "nhắc nhở",
	"create", "schedule", "add", "meeting", "event", "deadline",
)

func compileStopPhrases(phrases ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(phrases))
	for i, phrase := range phrases {
		patterns[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase))
	}
	return patterns
}

// titleDatePatterns remove date/time fragments from candidate titles.
var titleDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`),
	regexp.MustCompile(`\d{1,2}:\d{2}`),
	regexp.MustCompile(`(?i)ngày mai`),
	regexp.MustCompile(`(?i)hôm nay`),
	regexp.MustCompile(`(?i)tuần sau`),
}

var (
	// Unicode-aware: Vietnamese letters must survive the punctuation strip.
	nonWordPattern    = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// detectAction classifies the lower-cased message into an action using the
// ordered keyword buckets. A creation verb plus "deadline" means
// create_deadline rather than create_event.
func detectAction(lower string) Action {
	switch {
	case containsAny(lower, createKeywords):
		if strings.Contains(lower, "deadline") {
			return ActionCreateDeadline
		}
		return ActionCreateEvent
	case containsAny(lower, listKeywords):
		return ActionListEvents
	case containsAny(lower, deleteKeywords):
		return ActionDeleteEvent
	}
	return ActionNone
}

// ExtractTitle derives an event title from a message by stripping calendar
// phrases and date/time fragments, collapsing whitespace and truncating to
// 50 runes. An empty result becomes a generic placeholder.
func ExtractTitle(message string) string {
	cleaned := message
	for _, pattern := range titleStopPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}
	for _, pattern := range titleDatePatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	cleaned = nonWordPattern.ReplaceAllString(cleaned, " ")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	title := strings.TrimSpace(cleaned)

	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen]) + "..."
	}
	if title == "" {
		return placeholderTitle
	}
	return title
}

// ParseFallback is the deterministic rule-based parser. It is used when
// model extraction is unavailable or returned unusable output, and behaves
// identically when invoked standalone.
func ParseFallback(message string, now time.Time) *ParsedIntent {
	action := detectAction(strings.ToLower(message))

	p := &ParsedIntent{
		Action:          action,
		Title:           ExtractTitle(message),
		Date:            ExtractDate(message, now),
		Time:            ExtractTime(message),
		Description:     truncateRunes(message, maxDescription),
		DurationMinutes: DefaultDurationMinutes,
		ReminderMinutes: DefaultReminderMinutes,
		RawMessage:      message,
	}
	if action != ActionNone {
		p.Confidence = 0.6
	}
	return p
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
