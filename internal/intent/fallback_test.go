package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFallback_ActionDetection(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected Action
	}{
		{"create event", "tạo lịch họp nhóm ngày mai", ActionCreateEvent},
		{"create english", "create a study session", ActionCreateEvent},
		{"deadline over event", "đặt deadline dự án 15/12", ActionCreateDeadline},
		{"deadline english", "add deadline for homework", ActionCreateDeadline},
		{"list", "xem lịch tuần này", ActionListEvents},
		{"list english", "show my schedule", ActionListEvents},
		{"delete", "xóa sự kiện họp nhóm", ActionDeleteEvent},
		{"cancel", "hủy cuộc họp chiều nay", ActionDeleteEvent},
		{"no action", "hello bạn khỏe không", ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseFallback(tt.message, testNow)
			assert.Equal(t, tt.expected, p.Action)
		})
	}
}

func TestParseFallback_Confidence(t *testing.T) {
	withAction := ParseFallback("tạo lịch họp ngày mai", testNow)
	assert.InDelta(t, 0.6, withAction.Confidence, 1e-9)

	noAction := ParseFallback("hello", testNow)
	assert.Zero(t, noAction.Confidence)
}

func TestParseFallback_FieldDefaults(t *testing.T) {
	p := ParseFallback("đặt deadline dự án 15/12", testNow)

	assert.Equal(t, ActionCreateDeadline, p.Action)
	assert.Equal(t, "2024-12-15", p.Date)
	assert.Equal(t, "09:00", p.Time)
	assert.Equal(t, DefaultDurationMinutes, p.DurationMinutes)
	assert.Equal(t, DefaultReminderMinutes, p.ReminderMinutes)
	assert.Equal(t, "đặt deadline dự án 15/12", p.RawMessage)
	assert.NotEmpty(t, p.Title)
}

func TestParseFallback_CreateEventWithTime(t *testing.T) {
	p := ParseFallback("tạo lịch họp nhóm ngày mai 14:30", testNow)

	require.Equal(t, ActionCreateEvent, p.Action)
	assert.Equal(t, "2024-06-11", p.Date)
	assert.Equal(t, "14:30", p.Time)
	assert.Equal(t, "họp nhóm", p.Title)
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{"strips calendar phrases and dates", "Tạo lịch họp nhóm ngày mai", "họp nhóm"},
		{"strips time fragments", "đặt lịch ôn thi 14:30 hôm nay", "ôn thi"},
		{"vietnamese letters survive punctuation strip", "tạo lịch ôn tập giải tích!", "ôn tập giải tích"},
		{"phrase strip ignores case", "Create MEETING với nhóm", "với nhóm"},
		{"empty becomes placeholder", "tạo lịch", "Sự kiện mới"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractTitle(tt.message))
		})
	}
}

func TestExtractTitle_CaseFoldChangesByteWidth(t *testing.T) {
	// 'Ⱥ' (two bytes) lower-cases to 'ⱥ' (three bytes), so the message and
	// its lower-cased form have different byte lengths.
	prefix := strings.Repeat("Ⱥ", 10)

	assert.Equal(t, prefix+" xyz", ExtractTitle(prefix+" meeting xyz"))
}

func TestParseFallback_WidthChangingRunes(t *testing.T) {
	prefix := strings.Repeat("Ⱥ", 10)
	p := ParseFallback(prefix+" tạo lịch họp ngày mai 14:30", testNow)

	require.Equal(t, ActionCreateEvent, p.Action)
	assert.Equal(t, prefix+" họp", p.Title)
	assert.Equal(t, "2024-06-11", p.Date)
}

func TestExtractTitle_Truncation(t *testing.T) {
	long := strings.Repeat("ô", 60)
	title := ExtractTitle(long)

	runes := []rune(title)
	require.True(t, strings.HasSuffix(title, "..."))
	// 50 content runes plus the three-dot suffix.
	assert.Len(t, runes, 53)
	assert.Equal(t, strings.Repeat("ô", 50), string(runes[:50]))
}

func TestExtractTitle_BoundaryNotTruncated(t *testing.T) {
	exact := strings.Repeat("a", 50)
	assert.Equal(t, exact, ExtractTitle(exact))
}

func TestParseFallback_DescriptionTruncated(t *testing.T) {
	long := "tạo lịch " + strings.Repeat("x", 300)
	p := ParseFallback(long, testNow)
	assert.Len(t, []rune(p.Description), 200)
}
