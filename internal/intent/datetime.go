package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// dayMonthPattern matches numeric D/M or D-M dates ("15/12", "3-9").
var dayMonthPattern = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})`)

// timePatterns are tried in order; the first match wins. "14h30" must be
// tested before "14h" or the minutes are lost.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})h(\d{2})`),         // 9h30
	regexp.MustCompile(`(\d{1,2})h`),                // 9h
	regexp.MustCompile(`(\d{1,2}):(\d{2})`),         // 9:30
	regexp.MustCompile(`(\d{1,2})\s*giờ\s*(\d{2})`), // 9 giờ 30
	regexp.MustCompile(`(\d{1,2})\s*giờ`),           // 9 giờ
}

// weekdayNames maps localized weekday names to Go weekdays. Evaluated in
// order, first name present in the text wins.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"chủ nhật", time.Sunday},
	{"sunday", time.Sunday},
	{"thứ hai", time.Monday},
	{"monday", time.Monday},
	{"thứ ba", time.Tuesday},
	{"tuesday", time.Tuesday},
	{"thứ tư", time.Wednesday},
	{"wednesday", time.Wednesday},
	{"thứ năm", time.Thursday},
	{"thursday", time.Thursday},
	{"thứ sáu", time.Friday},
	{"friday", time.Friday},
	{"thứ bảy", time.Saturday},
	{"saturday", time.Saturday},
}

// ExtractDate resolves a date expression in text against now and returns a
// YYYY-MM-DD string. It recognizes relative terms, numeric D/M dates and
// weekday names, and defaults to tomorrow. It never fails.
func ExtractDate(text string, now time.Time) string {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, []string{"hôm nay", "today"}):
		return now.Format(dateLayout)
	case containsAny(lower, []string{"ngày mai", "tomorrow"}):
		return now.AddDate(0, 0, 1).Format(dateLayout)
	case containsAny(lower, []string{"ngày kia", "day after tomorrow"}):
		return now.AddDate(0, 0, 2).Format(dateLayout)
	case containsAny(lower, []string{"tuần sau", "next week"}):
		return now.AddDate(0, 0, 7).Format(dateLayout)
	}

	// Numeric D/M dates take the current year. Impossible constructions
	// ("31/2") are discarded rather than normalized into the next month.
	if m := dayMonthPattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if d, ok := calendarDate(now.Year(), month, day); ok {
			return d.Format(dateLayout)
		}
	}

	// Weekday names map to the next occurrence strictly after now.
	for _, w := range weekdayNames {
		if strings.Contains(lower, w.name) {
			daysAhead := (int(w.day) - int(now.Weekday()) + 7) % 7
			if daysAhead == 0 {
				daysAhead = 7
			}
			return now.AddDate(0, 0, daysAhead).Format(dateLayout)
		}
	}

	return now.AddDate(0, 0, 1).Format(dateLayout)
}

// ExtractTime finds a time expression in text and returns a 24-hour HH:MM
// string. Day-period words adjust ambiguous 12-hour values; if no pattern
// matches, the period alone picks a default, ultimately 09:00. It never
// fails and never returns an out-of-range value.
func ExtractTime(text string) string {
	lower := strings.ToLower(text)

	for _, pattern := range timePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if len(m) > 2 && m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}

		// "3 giờ chiều" means 15:00; "12 giờ sáng" means midnight.
		if containsAny(lower, []string{"pm", "chiều", "tối"}) {
			if hour < 12 {
				hour += 12
			}
		} else if containsAny(lower, []string{"am", "sáng"}) {
			if hour == 12 {
				hour = 0
			}
		}

		if hour > 23 || minute > 59 {
			continue
		}
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}

	switch {
	case strings.Contains(lower, "sáng"):
		return "09:00"
	case strings.Contains(lower, "trưa"):
		return "12:00"
	case strings.Contains(lower, "chiều"):
		return "14:00"
	case strings.Contains(lower, "tối"):
		return "19:00"
	}

	return DefaultTime
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// dateFormats are the non-ISO layouts NormalizeDate is willing to accept
// from model output.
var dateFormats = []string{
	"02/01/2006",
	"02-01-2006",
	"01/02/2006",
}

// NormalizeDate coerces a date string to YYYY-MM-DD. Already-normalized
// values pass through unchanged; other common formats are re-parsed; if
// nothing works the date is re-extracted from the original message.
func NormalizeDate(dateStr, originalMessage string, now time.Time) string {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return ""
	}

	if isoDatePattern.MatchString(dateStr) {
		if _, err := time.Parse(dateLayout, dateStr); err == nil {
			return dateStr
		}
	}

	for _, format := range dateFormats {
		if d, err := time.Parse(format, dateStr); err == nil {
			return d.Format(dateLayout)
		}
	}

	return ExtractDate(originalMessage, now)
}

var (
	amPMSuffixPattern = regexp.MustCompile(`[ap]m$`)
	hourMinutePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)
	bareHourPattern   = regexp.MustCompile(`(\d{1,2})`)
)

// NormalizeTime coerces a time string to 24-hour HH:MM, extracting a bare
// hour when no full pattern is present and defaulting to 09:00.
func NormalizeTime(timeStr string) string {
	timeStr = strings.ToLower(strings.ReplaceAll(timeStr, " ", ""))
	timeStr = amPMSuffixPattern.ReplaceAllString(timeStr, "")
	if timeStr == "" {
		return DefaultTime
	}

	if m := hourMinutePattern.FindStringSubmatch(timeStr); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour <= 23 && minute <= 59 {
			return fmt.Sprintf("%02d:%02d", hour, minute)
		}
	}

	if m := bareHourPattern.FindStringSubmatch(timeStr); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour <= 23 {
			return fmt.Sprintf("%02d:00", hour)
		}
	}

	return DefaultTime
}

// calendarDate builds a date and reports whether the month/day combination
// actually exists (time.Date silently normalizes overflow).
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func containsAny(text string, values []string) bool {
	for _, v := range values {
		if strings.Contains(text, v) {
			return true
		}
	}
	return false
}
