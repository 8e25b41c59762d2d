package calendar

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/minhvu-ng/studybot/internal/gcal"
	"github.com/minhvu-ng/studybot/internal/intent"
	"github.com/minhvu-ng/studybot/internal/notify"
	"github.com/minhvu-ng/studybot/internal/timeutil"
)

// minActionConfidence is the floor below which a parsed request is treated
// as unclear and the user is asked to rephrase.
const minActionConfidence = 0.3

const listDaysAhead = 7
const listDisplayLimit = 10

// Service is the calendar backend the integration executes against.
// *gcal.Client satisfies it; tests use a fake.
type Service interface {
	IsAuthenticated() bool
	GetAuthURL() string
	CreateEvent(input gcal.EventInput) (*gcal.CreatedEvent, error)
	CreateDeadline(input gcal.DeadlineInput) (*gcal.CreatedEvent, error)
	ListUpcomingEvents(daysAhead, max int) ([]gcal.EventSummary, error)
}

// Result is the outcome of a calendar request, shaped for the chat UI.
type Result struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message"`
	Action       string              `json:"action"`
	AuthURL      string              `json:"auth_url,omitempty"`
	RequiresAuth bool                `json:"requires_auth,omitempty"`
	EventID      string              `json:"event_id,omitempty"`
	EventLink    string              `json:"event_link,omitempty"`
	Events       []gcal.EventSummary `json:"events,omitempty"`
}

// Integration turns parsed calendar intents into Google Calendar operations
// and user-facing Vietnamese responses.
type Integration struct {
	resolver *intent.Resolver
	service  Service
	notifier *notify.DeadlineNotifier
	location *time.Location
}

// NewIntegration wires the intent resolver to a calendar service. notifier
// may be nil when deadline emails are not configured.
func NewIntegration(resolver *intent.Resolver, service Service, notifier *notify.DeadlineNotifier, loc *time.Location) *Integration {
	if loc == nil {
		loc = time.Local
	}
	return &Integration{
		resolver: resolver,
		service:  service,
		notifier: notifier,
		location: loc,
	}
}

// ProcessRequest parses a message and executes the resulting intent.
func (i *Integration) ProcessRequest(ctx context.Context, message string, now time.Time) (*Result, *intent.ParsedIntent) {
	parsed := i.resolver.Resolve(ctx, message, now)
	return i.Execute(ctx, parsed), parsed
}

// Execute runs an already-parsed intent against the calendar. Callers that
// resolved the intent themselves (to decide routing) use this directly so
// the message is not parsed twice.
func (i *Integration) Execute(ctx context.Context, parsed *intent.ParsedIntent) *Result {
	if parsed == nil || parsed.Action == intent.ActionNone || parsed.Confidence < minActionConfidence {
		return &Result{
			Success: false,
			Message: `Tôi không hiểu yêu cầu lịch của bạn. Hãy thử nói rõ hơn như "Tạo lịch họp ngày mai 9h" hoặc "Đặt deadline dự án ngày 15/12".`,
			Action:  "none",
		}
	}

	if i.service == nil {
		return &Result{
			Success: false,
			Message: "Google Calendar chưa được cấu hình trên máy chủ.",
			Action:  "not_configured",
		}
	}

	if !i.service.IsAuthenticated() {
		return &Result{
			Success:      false,
			Message:      "Bạn cần xác thực Google Calendar trước. Nhấn vào link để đăng nhập.",
			Action:       "auth_required",
			AuthURL:      i.service.GetAuthURL(),
			RequiresAuth: true,
		}
	}

	switch parsed.Action {
	case intent.ActionCreateEvent:
		return i.createEvent(parsed)
	case intent.ActionCreateDeadline:
		return i.createDeadline(parsed)
	case intent.ActionListEvents:
		return i.listEvents()
	case intent.ActionDeleteEvent:
		return &Result{
			Success: false,
			Message: "Chức năng xóa sự kiện chưa được triển khai. Bạn có thể xóa trực tiếp trong Google Calendar.",
			Action:  "not_implemented",
		}
	default:
		return &Result{
			Success: false,
			Message: "Chức năng này chưa được hỗ trợ.",
			Action:  "unsupported",
		}
	}
}

func (i *Integration) createEvent(parsed *intent.ParsedIntent) *Result {
	if parsed.Title == "" {
		return &Result{Success: false, Message: "Vui lòng cung cấp tên sự kiện.", Action: "validation_error"}
	}
	if parsed.Date == "" {
		return &Result{Success: false, Message: "Vui lòng cung cấp ngày cho sự kiện.", Action: "validation_error"}
	}

	clock := parsed.Time
	if clock == "" {
		clock = intent.DefaultTime
	}
	duration := parsed.DurationMinutes
	if duration <= 0 {
		duration = intent.DefaultDurationMinutes
	}

	start, err := timeutil.CombineDateTime(parsed.Date, clock, i.location)
	if err != nil {
		return &Result{Success: false, Message: "Có lỗi xảy ra khi tạo sự kiện.", Action: "error"}
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	created, err := i.service.CreateEvent(gcal.EventInput{
		Summary:         parsed.Title,
		Description:     parsed.Description,
		StartTime:       start,
		EndTime:         end,
		ReminderMinutes: parsed.ReminderMinutes,
	})
	if err != nil {
		return &Result{
			Success: false,
			Message: fmt.Sprintf("Không thể tạo sự kiện: %v", err),
			Action:  "create_event_failed",
		}
	}

	message := fmt.Sprintf("✅ Đã tạo sự kiện '%s' vào %s lúc %s", parsed.Title, formatDate(parsed.Date), clock)
	if parsed.ReminderMinutes > 0 {
		message += fmt.Sprintf("\n🔔 Nhắc nhở trước %d phút", parsed.ReminderMinutes)
	}

	return &Result{
		Success:   true,
		Message:   message,
		Action:    string(intent.ActionCreateEvent),
		EventID:   created.ID,
		EventLink: created.HTMLLink,
	}
}

func (i *Integration) createDeadline(parsed *intent.ParsedIntent) *Result {
	if parsed.Title == "" {
		return &Result{Success: false, Message: "Vui lòng cung cấp tên deadline.", Action: "validation_error"}
	}
	if parsed.Date == "" {
		return &Result{Success: false, Message: "Vui lòng cung cấp ngày deadline.", Action: "validation_error"}
	}

	due, err := timeutil.ParseDate(parsed.Date, i.location)
	if err != nil {
		return &Result{Success: false, Message: "Có lỗi xảy ra khi tạo deadline.", Action: "error"}
	}

	description := parsed.Description
	if description == "" {
		description = fmt.Sprintf("Deadline cho: %s", parsed.Title)
	}
	reminder := parsed.ReminderMinutes
	if reminder <= 0 {
		reminder = intent.DeadlineReminderMinutes
	}

	created, err := i.service.CreateDeadline(gcal.DeadlineInput{
		Summary:         fmt.Sprintf("📅 DEADLINE: %s", parsed.Title),
		Description:     description,
		Date:            due,
		ReminderMinutes: reminder,
	})
	if err != nil {
		return &Result{
			Success: false,
			Message: fmt.Sprintf("Không thể tạo deadline: %v", err),
			Action:  "create_deadline_failed",
		}
	}

	message := fmt.Sprintf("⏰ Đã tạo deadline '%s' vào %s", parsed.Title, formatDate(parsed.Date))
	if reminder > 0 {
		message += fmt.Sprintf("\n🔔 Nhắc nhở trước %s", formatReminder(reminder))
	}

	// Email confirmation is best effort; a send failure never fails the
	// deadline creation itself.
	if i.notifier.IsConfigured() {
		if err := i.notifier.SendDeadlineCreated(parsed.Title, description, due); err != nil {
			log.Printf("calendar: deadline email failed: %v", err)
		}
	}

	return &Result{
		Success:   true,
		Message:   message,
		Action:    string(intent.ActionCreateDeadline),
		EventID:   created.ID,
		EventLink: created.HTMLLink,
	}
}

func (i *Integration) listEvents() *Result {
	events, err := i.service.ListUpcomingEvents(listDaysAhead, 50)
	if err != nil {
		return &Result{
			Success: false,
			Message: fmt.Sprintf("Không thể lấy danh sách sự kiện: %v", err),
			Action:  "list_events_failed",
		}
	}

	if len(events) == 0 {
		return &Result{
			Success: true,
			Message: fmt.Sprintf("📅 Bạn không có sự kiện nào trong %d ngày tới.", listDaysAhead),
			Action:  string(intent.ActionListEvents),
			Events:  []gcal.EventSummary{},
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 Lịch của bạn trong %d ngày tới:\n\n", listDaysAhead)

	shown := events
	if len(shown) > listDisplayLimit {
		shown = shown[:listDisplayLimit]
	}
	for n, event := range shown {
		title := event.Summary
		if title == "" {
			title = "Không có tiêu đề"
		}
		fmt.Fprintf(&b, "%d. **%s**\n", n+1, title)
		if event.AllDay {
			fmt.Fprintf(&b, "   📅 %s\n\n", event.StartTime.Format("02/01/2006"))
		} else {
			fmt.Fprintf(&b, "   📅 %s\n\n", event.StartTime.Format("02/01/2006 15:04"))
		}
	}
	if len(events) > listDisplayLimit {
		fmt.Fprintf(&b, "... và %d sự kiện khác", len(events)-listDisplayLimit)
	}

	return &Result{
		Success: true,
		Message: strings.TrimRight(b.String(), "\n"),
		Action:  string(intent.ActionListEvents),
		Events:  events,
	}
}

// AuthStatus reports whether the calendar is connected, including the auth
// URL when it is not.
func (i *Integration) AuthStatus() *Result {
	if i.service == nil {
		return &Result{
			Success: false,
			Message: "Google Calendar chưa được cấu hình trên máy chủ.",
			Action:  "not_configured",
		}
	}
	if i.service.IsAuthenticated() {
		return &Result{
			Success: true,
			Message: "Google Calendar đã kết nối và sẵn sàng",
			Action:  "ready",
		}
	}
	return &Result{
		Success:      false,
		Message:      "Bạn chưa xác thực Google Calendar. Vui lòng kết nối để sử dụng chức năng lịch.",
		Action:       "not_authenticated",
		AuthURL:      i.service.GetAuthURL(),
		RequiresAuth: true,
	}
}

// formatDate renders YYYY-MM-DD as DD/MM/YYYY for display.
func formatDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("02/01/2006")
}

// formatReminder renders a minute count the way a person would say it.
func formatReminder(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%d phút", minutes)
	case minutes < 1440:
		hours := minutes / 60
		rest := minutes % 60
		if rest == 0 {
			return fmt.Sprintf("%d giờ", hours)
		}
		return fmt.Sprintf("%d giờ %d phút", hours, rest)
	default:
		days := minutes / 1440
		restHours := (minutes % 1440) / 60
		if restHours == 0 {
			return fmt.Sprintf("%d ngày", days)
		}
		return fmt.Sprintf("%d ngày %d giờ", days, restHours)
	}
}
