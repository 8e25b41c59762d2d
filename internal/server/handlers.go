package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/minhvu-ng/studybot/internal/calendar"
	"github.com/minhvu-ng/studybot/internal/database"
	"github.com/minhvu-ng/studybot/internal/intent"
)

// minCalendarConfidence mirrors the resolver contract: below this the
// request is not acted on and the chat falls through to tutoring.
const minCalendarConfidence = 0.3

// Health Check

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	status := map[string]interface{}{
		"status": "healthy",
		"gcal":   "disconnected",
	}
	if s.gcalClient != nil && s.gcalClient.IsAuthenticated() {
		status["gcal"] = "connected"
	}

	respondJSON(w, http.StatusOK, status)
}

// Chat API

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer      string           `json:"answer"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Mode        string           `json:"ai_mode"`
	Calendar    *calendar.Result `json:"calendar,omitempty"`
}

// handleAsk is the main chat entry point. Messages that carry calendar
// keywords and resolve to an actionable intent go to the calendar; everything
// else, including unclear calendar talk, goes to the tutor. This keeps
// questions like "lịch sử Việt Nam" in tutoring even though they contain the
// word "lịch".
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	ctx := r.Context()

	if intent.HasCalendarKeywords(req.Question) {
		parsed := s.resolver.Resolve(ctx, req.Question, time.Now())
		if parsed.Action != intent.ActionNone && parsed.Confidence >= minCalendarConfidence {
			result := s.integration.Execute(ctx, parsed)
			s.persistExchange(req.Question, result.Message, "calendar", string(parsed.Action))
			respondJSON(w, http.StatusOK, askResponse{
				Answer:   result.Message,
				Mode:     "calendar",
				Calendar: result,
			})
			return
		}
	}

	reply := s.tutor.Answer(ctx, req.Question)
	s.persistExchange(req.Question, reply.Answer, string(reply.Mode), "")
	respondJSON(w, http.StatusOK, askResponse{
		Answer:      reply.Answer,
		Suggestions: reply.Suggestions,
		Mode:        string(reply.Mode),
	})
}

// Calendar API

type calendarRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	var req calendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	result, parsed := s.integration.ProcessRequest(r.Context(), req.Message, time.Now())
	if result.Success {
		s.persistExchange(req.Message, result.Message, "calendar", string(parsed.Action))
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCalendarAuthStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.integration.AuthStatus())
}

func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil {
		respondError(w, http.StatusServiceUnavailable, "Google Calendar not configured")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	if err := s.gcalClient.ExchangeCode(r.Context(), code); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("authentication failed: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<html><body>
<h2>✅ Xác thực Google Calendar thành công!</h2>
<p>Bạn có thể đóng cửa sổ này và quay lại StudyBot.</p>
</body></html>`)
}

// persistExchange appends a question/answer pair to the current conversation,
// creating one when the history is empty. Persistence failures are logged
// and never surface to the chat response.
func (s *Server) persistExchange(question, answer, aiMode, calendarAction string) {
	conv, err := s.currentConversation()
	if err != nil {
		log.Printf("server: could not resolve current conversation: %v", err)
		return
	}
	if _, err := s.db.AddMessage(conv.ID, question, answer, aiMode, calendarAction); err != nil {
		log.Printf("server: could not persist message: %v", err)
	}
}

func (s *Server) currentConversation() (*database.Conversation, error) {
	conv, err := s.db.GetCurrentConversation()
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}
	return s.db.CreateConversation("")
}

// JSON helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("server: error encoding JSON response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
