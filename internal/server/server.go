package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/minhvu-ng/studybot/internal/calendar"
	"github.com/minhvu-ng/studybot/internal/database"
	"github.com/minhvu-ng/studybot/internal/gcal"
	"github.com/minhvu-ng/studybot/internal/intent"
	"github.com/minhvu-ng/studybot/internal/tutor"
)

type Server struct {
	db          *database.DB
	tutor       *tutor.Tutor
	resolver    *intent.Resolver
	integration *calendar.Integration
	gcalClient  *gcal.Client
	httpSrv     *http.Server
	port        int
}

// Config holds the dependencies for the HTTP server.
type Config struct {
	DB          *database.DB
	Tutor       *tutor.Tutor
	Resolver    *intent.Resolver
	Integration *calendar.Integration
	GCalClient  *gcal.Client
	Port        int
}

func New(cfg Config) *Server {
	s := &Server{
		db:          cfg.DB,
		tutor:       cfg.Tutor,
		resolver:    cfg.Resolver,
		integration: cfg.Integration,
		gcalClient:  cfg.GCalClient,
		port:        cfg.Port,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.corsMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", s.handleHealthCheck)

	// Chat API
	mux.HandleFunc("POST /api/ask", s.handleAsk)

	// Calendar API
	mux.HandleFunc("POST /api/calendar/request", s.handleCalendarRequest)
	mux.HandleFunc("GET /api/calendar/auth/status", s.handleCalendarAuthStatus)
	mux.HandleFunc("GET /oauth/callback", s.handleOAuthCallback)

	// Conversations API
	mux.HandleFunc("GET /api/conversations", s.handleListConversations)
	mux.HandleFunc("POST /api/conversations", s.handleCreateConversation)
	mux.HandleFunc("DELETE /api/conversations/{id}", s.handleDeleteConversation)
	mux.HandleFunc("POST /api/conversations/{id}/select", s.handleSelectConversation)
	mux.HandleFunc("GET /api/conversations/{id}/messages", s.handleGetMessages)
}

func (s *Server) Start() error {
	fmt.Printf("Starting HTTP server on http://localhost:%d\n", s.port)
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handler returns the server's HTTP handler for testing purposes
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// corsMiddleware adds CORS headers so the web frontend can call the API
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
