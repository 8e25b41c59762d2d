package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu-ng/studybot/internal/gcal"
	"github.com/minhvu-ng/studybot/internal/intent"
)

// Monday, June 10th 2024.
var testNow = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

// fakeService records calls and serves canned responses without touching
// Google.
type fakeService struct {
	authenticated bool
	createdEvent  *gcal.EventInput
	createdDL     *gcal.DeadlineInput
	upcoming      []gcal.EventSummary
	listErr       error
	createErr     error
}

func (f *fakeService) IsAuthenticated() bool { return f.authenticated }
func (f *fakeService) GetAuthURL() string    { return "https://accounts.google.com/o/oauth2/auth?test" }

func (f *fakeService) CreateEvent(input gcal.EventInput) (*gcal.CreatedEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdEvent = &input
	return &gcal.CreatedEvent{ID: "evt-1", HTMLLink: "https://calendar.google.com/event?eid=1"}, nil
}

func (f *fakeService) CreateDeadline(input gcal.DeadlineInput) (*gcal.CreatedEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdDL = &input
	return &gcal.CreatedEvent{ID: "dl-1", HTMLLink: "https://calendar.google.com/event?eid=2"}, nil
}

func (f *fakeService) ListUpcomingEvents(daysAhead, max int) ([]gcal.EventSummary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.upcoming, nil
}

func newTestIntegration(service Service) *Integration {
	return NewIntegration(intent.NewResolver(nil), service, nil, time.UTC)
}

func TestExecute_UnclearRequestAsksForClarification(t *testing.T) {
	service := &fakeService{authenticated: true}
	integration := newTestIntegration(service)

	tests := []struct {
		name   string
		parsed *intent.ParsedIntent
	}{
		{"nil intent", nil},
		{"action none", &intent.ParsedIntent{Action: intent.ActionNone, Confidence: 0.9}},
		{"low confidence", &intent.ParsedIntent{Action: intent.ActionCreateEvent, Confidence: 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := integration.Execute(context.Background(), tt.parsed)
			assert.False(t, result.Success)
			assert.Equal(t, "none", result.Action)
			assert.Contains(t, result.Message, "Tôi không hiểu yêu cầu lịch của bạn")
		})
	}
}

func TestExecute_UnauthenticatedShortCircuits(t *testing.T) {
	service := &fakeService{authenticated: false}
	integration := newTestIntegration(service)

	result := integration.Execute(context.Background(), &intent.ParsedIntent{
		Action:     intent.ActionCreateEvent,
		Title:      "Họp nhóm",
		Date:       "2024-06-11",
		Confidence: 0.9,
	})

	assert.False(t, result.Success)
	assert.Equal(t, "auth_required", result.Action)
	assert.True(t, result.RequiresAuth)
	assert.NotEmpty(t, result.AuthURL)
	assert.Nil(t, service.createdEvent, "no event may be created before authentication")
}

func TestExecute_CreateEvent(t *testing.T) {
	service := &fakeService{authenticated: true}
	integration := newTestIntegration(service)

	result := integration.Execute(context.Background(), &intent.ParsedIntent{
		Action:          intent.ActionCreateEvent,
		Title:           "Họp nhóm",
		Date:            "2024-06-11",
		Time:            "09:00",
		DurationMinutes: 90,
		ReminderMinutes: 15,
		Confidence:      0.9,
	})

	require.True(t, result.Success)
	assert.Equal(t, "create_event", result.Action)
	assert.Equal(t, "evt-1", result.EventID)
	assert.Contains(t, result.Message, "✅ Đã tạo sự kiện 'Họp nhóm'")
	assert.Contains(t, result.Message, "11/06/2024 lúc 09:00")
	assert.Contains(t, result.Message, "🔔 Nhắc nhở trước 15 phút")

	require.NotNil(t, service.createdEvent)
	assert.Equal(t, time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC), service.createdEvent.StartTime)
	assert.Equal(t, time.Date(2024, 6, 11, 10, 30, 0, 0, time.UTC), service.createdEvent.EndTime)
}

func TestExecute_CreateEventDefaults(t *testing.T) {
	service := &fakeService{authenticated: true}
	integration := newTestIntegration(service)

	result := integration.Execute(context.Background(), &intent.ParsedIntent{
		Action:     intent.ActionCreateEvent,
		Title:      "Họp nhóm",
		Date:       "2024-06-11",
		Confidence: 0.9,
	})

	require.True(t, result.Success)
	require.NotNil(t, service.createdEvent)
	// Missing time and duration fall back to 09:00 and 60 minutes.
	assert.Equal(t, time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC), service.createdEvent.StartTime)
	assert.Equal(t, time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC), service.createdEvent.EndTime)
}

func TestExecute_CreateEventValidation(t *testing.T) {
	service := &fakeService{authenticated: true}
	integration := newTestIntegration(service)

	noTitle := integration.Execute(context.Background(), &intent.ParsedIntent{
		Action: intent.ActionCreateEvent, Date: "2024-06-11", Confidence: 0.9,
	})
	assert.False(t, noTitle.Success)
	assert.Equal(t, "validation_error", noTitle.Action)

	noDate := integration.Execute(context.Background(), &intent.ParsedIntent{
		Action: intent.ActionCreateEvent, Title: "Họp", Confidence: 0.9,
	})
	assert.False(t, noDate.Success)
	assert.Equal(t, "validation_error", noDate.Action)
}

func TestExecute_CreateDeadline(t *testing.T) {
	service := &fakeService{authenticated: true}
	integration := newTestIntegration(service)

	result := integration.Execute(context.Background(), &intent.ParsedIntent{
		Action:          intent.ActionCreateDeadline,
		Title:           "Nộp báo cáo",
		Date:            "2024-12-15",
		ReminderMinutes: 60,
		Confidence:      0.9,
	})

	require.True(t, result.Success)
	assert.Contains(t, result.Message, "⏰ Đã tạo deadline 'Nộp báo cáo' vào 15/12/2024")
	assert.Contains(t, result.Message, "🔔 Nhắc nhở trước 1 giờ")

	require.NotNil(t, service.createdDL)
	assert.Equal(t, "📅 DEADLINE: Nộp báo cáo", service.createdDL.Summary)
	assert.Equal(t, "Deadline cho: Nộp báo cáo", service.createdDL.Description)
	assert.Equal(t, 60, service.createdDL.ReminderMinutes)
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), service.createdDL.Date)
}

func TestExecute_CreateFailure(t *testing.T) {
	service := &fakeService{authenticated: true, createErr: errors.New("quota exceeded")}
	integration := newTestIntegration(service)

	result := integration.Execute(context.Background(), &intent.ParsedIntent{
		Action: intent.ActionCreateEvent, Title: "Họp", Date: "2024-06-11", Confidence: 0.9,
	})

	assert.False(t, result.Success)
	assert.Equal(t, "create_event_failed", result.Action)
	assert.Contains(t, result.Message, "Không thể tạo sự kiện")
}

func TestExecute_ListEventsEmpty(t *testing.T) {
	service := &fakeService{authenticated: true}
	integration := newTestIntegration(service)

	result := integration.Execute(context.Background(), &intent.ParsedIntent{
		Action: intent.ActionListEvents, Confidence: 0.9,
	})

	require.True(t, result.Success)
	assert.Contains(t, result.Message, "Bạn không có sự kiện nào trong 7 ngày tới")
}

func TestExecute_ListEventsTruncatedAtTen(t *testing.T) {
	var upcoming []gcal.EventSummary
	for n := 1; n <= 12; n++ {
		upcoming = append(upcoming, gcal.EventSummary{
			ID:        fmt.Sprintf("e%d", n),
			Summary:   fmt.Sprintf("Sự kiện %d", n),
			StartTime: testNow.Add(time.Duration(n) * time.Hour),
		})
	}
	service := &fakeService{authenticated: true, upcoming: upcoming}
	integration := newTestIntegration(service)

	result := integration.Execute(context.Background(), &intent.ParsedIntent{
		Action: intent.ActionListEvents, Confidence: 0.9,
	})

	require.True(t, result.Success)
	assert.Contains(t, result.Message, "10. **Sự kiện 10**")
	assert.NotContains(t, result.Message, "11. **")
	assert.Contains(t, result.Message, "... và 2 sự kiện khác")
	assert.Len(t, result.Events, 12)
}

func TestExecute_DeleteNotImplemented(t *testing.T) {
	service := &fakeService{authenticated: true}
	integration := newTestIntegration(service)

	result := integration.Execute(context.Background(), &intent.ParsedIntent{
		Action: intent.ActionDeleteEvent, Confidence: 0.9,
	})

	assert.False(t, result.Success)
	assert.Equal(t, "not_implemented", result.Action)
	assert.Contains(t, result.Message, "chưa được triển khai")
}

func TestProcessRequest_EndToEnd(t *testing.T) {
	service := &fakeService{authenticated: true}
	integration := newTestIntegration(service)

	result, parsed := integration.ProcessRequest(context.Background(), "tạo lịch họp nhóm ngày mai 9h", testNow)

	require.NotNil(t, parsed)
	assert.Equal(t, intent.ActionCreateEvent, parsed.Action)
	require.True(t, result.Success)
	require.NotNil(t, service.createdEvent)
	assert.Equal(t, time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC), service.createdEvent.StartTime)
}

func TestAuthStatus(t *testing.T) {
	connected := newTestIntegration(&fakeService{authenticated: true}).AuthStatus()
	assert.True(t, connected.Success)
	assert.Equal(t, "ready", connected.Action)

	disconnected := newTestIntegration(&fakeService{}).AuthStatus()
	assert.False(t, disconnected.Success)
	assert.Equal(t, "not_authenticated", disconnected.Action)
	assert.True(t, strings.HasPrefix(disconnected.AuthURL, "https://"))
}

func TestAuthStatus_NotConfigured(t *testing.T) {
	result := newTestIntegration(nil).AuthStatus()
	assert.False(t, result.Success)
	assert.Equal(t, "not_configured", result.Action)
}
