package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu-ng/studybot/internal/calendar"
	"github.com/minhvu-ng/studybot/internal/database"
	"github.com/minhvu-ng/studybot/internal/gcal"
	"github.com/minhvu-ng/studybot/internal/intent"
	"github.com/minhvu-ng/studybot/internal/tutor"
)

// fakeCalService is an authenticated in-memory calendar backend.
type fakeCalService struct {
	events    []gcal.EventInput
	deadlines []gcal.DeadlineInput
	upcoming  []gcal.EventSummary
}

func (f *fakeCalService) IsAuthenticated() bool { return true }
func (f *fakeCalService) GetAuthURL() string    { return "https://accounts.google.com/auth" }

func (f *fakeCalService) CreateEvent(input gcal.EventInput) (*gcal.CreatedEvent, error) {
	f.events = append(f.events, input)
	return &gcal.CreatedEvent{ID: fmt.Sprintf("evt-%d", len(f.events))}, nil
}

func (f *fakeCalService) CreateDeadline(input gcal.DeadlineInput) (*gcal.CreatedEvent, error) {
	f.deadlines = append(f.deadlines, input)
	return &gcal.CreatedEvent{ID: fmt.Sprintf("dl-%d", len(f.deadlines))}, nil
}

func (f *fakeCalService) ListUpcomingEvents(daysAhead, max int) ([]gcal.EventSummary, error) {
	return f.upcoming, nil
}

func newTestServer(t *testing.T) (*Server, *database.DB, *fakeCalService) {
	t.Helper()

	db := database.NewTestDB(t)
	service := &fakeCalService{}
	resolver := intent.NewResolver(nil)

	srv := New(Config{
		DB:          db,
		Tutor:       tutor.New(nil),
		Resolver:    resolver,
		Integration: calendar.NewIntegration(resolver, service, nil, nil),
		Port:        0,
	})
	return srv, db, service
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealthCheck(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "disconnected", body["gcal"])
}

func TestAsk_StudyQuestionGoesToTutor(t *testing.T) {
	srv, db, service := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/ask", askRequest{Question: "giải phương trình bậc hai"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[askResponse](t, rec)
	assert.Equal(t, "math", body.Mode)
	assert.NotEmpty(t, body.Answer)
	assert.NotEmpty(t, body.Suggestions)
	assert.Nil(t, body.Calendar)
	assert.Empty(t, service.events)

	// The exchange is persisted in the (auto-created) current conversation.
	conv, err := db.GetCurrentConversation()
	require.NoError(t, err)
	require.NotNil(t, conv)
	messages, err := db.GetMessages(conv.ID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "math", messages[0].AIMode)
}

func TestAsk_CalendarRequestCreatesEvent(t *testing.T) {
	srv, db, service := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/ask", askRequest{Question: "tạo lịch họp nhóm ngày mai 9h"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[askResponse](t, rec)
	assert.Equal(t, "calendar", body.Mode)
	require.NotNil(t, body.Calendar)
	assert.True(t, body.Calendar.Success)
	require.Len(t, service.events, 1)

	conv, err := db.GetCurrentConversation()
	require.NoError(t, err)
	messages, err := db.GetMessages(conv.ID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "create_event", messages[0].CalendarAction)
}

// "lịch sử" contains the calendar keyword "lịch" but is a history question;
// it must reach the tutor, not the calendar.
func TestAsk_HistoryQuestionNotHijackedByCalendar(t *testing.T) {
	srv, _, service := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/ask", askRequest{Question: "lịch sử Việt Nam thế kỷ 20"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[askResponse](t, rec)
	assert.Equal(t, "history", body.Mode)
	assert.Nil(t, body.Calendar)
	assert.Empty(t, service.events)
}

func TestAsk_MissingQuestion(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/ask", askRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalendarRequest(t *testing.T) {
	srv, _, service := newTestServer(t)
	service.upcoming = []gcal.EventSummary{{ID: "e1", Summary: "Họp nhóm"}}

	rec := doJSON(t, srv, http.MethodPost, "/api/calendar/request", calendarRequest{Message: "xem lịch tuần này"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[calendar.Result](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "list_events", body.Action)
	assert.Contains(t, body.Message, "Họp nhóm")
}

func TestCalendarRequest_MissingMessage(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/calendar/request", calendarRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalendarAuthStatus(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/calendar/auth/status", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[calendar.Result](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "ready", body.Action)
}

func TestOAuthCallback_NotConfigured(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/oauth/callback?code=abc", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestConversationLifecycle(t *testing.T) {
	srv, _, _ := newTestServer(t)

	created := decodeBody[database.Conversation](t,
		doJSON(t, srv, http.MethodPost, "/api/conversations", createConversationRequest{Title: "Ôn thi"}))
	assert.Equal(t, "Ôn thi", created.Title)
	assert.True(t, created.IsCurrent)

	second := decodeBody[database.Conversation](t,
		doJSON(t, srv, http.MethodPost, "/api/conversations", nil))
	assert.Equal(t, "Cuộc hội thoại mới", second.Title)

	list := decodeBody[[]database.Conversation](t,
		doJSON(t, srv, http.MethodGet, "/api/conversations", nil))
	assert.Len(t, list, 2)

	selectRec := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/conversations/%d/select", created.ID), nil)
	require.Equal(t, http.StatusOK, selectRec.Code)
	selected := decodeBody[database.Conversation](t, selectRec)
	assert.True(t, selected.IsCurrent)

	messages := decodeBody[[]database.ChatMessage](t,
		doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/conversations/%d/messages", created.ID), nil))
	assert.Empty(t, messages)

	deleteRec := doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/conversations/%d", second.ID), nil)
	require.Equal(t, http.StatusOK, deleteRec.Code)

	list = decodeBody[[]database.Conversation](t,
		doJSON(t, srv, http.MethodGet, "/api/conversations", nil))
	assert.Len(t, list, 1)
}

func TestSelectConversation_NotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/conversations/999/select", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidConversationID(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/conversations/abc/messages", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
