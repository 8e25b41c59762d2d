package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/minhvu-ng/studybot/internal/database"
)

// Conversations API

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := s.db.ListConversations()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if conversations == nil {
		conversations = []database.Conversation{}
	}
	respondJSON(w, http.StatusOK, conversations)
}

type createConversationRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var req createConversationRequest
	// An empty body is fine; the default title is used.
	_ = json.NewDecoder(r.Body).Decode(&req)

	conv, err := s.db.CreateConversation(req.Title)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, conv)
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteConversation(id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleSelectConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.db.SetCurrentConversation(id); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	conv, err := s.db.GetConversation(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, conv)
}

func (s *Server) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	messages, err := s.db.GetMessages(id, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if messages == nil {
		messages = []database.ChatMessage{}
	}
	respondJSON(w, http.StatusOK, messages)
}

// pathID parses the {id} path segment, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid conversation id")
		return 0, false
	}
	return id, true
}
