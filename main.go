package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minhvu-ng/studybot/internal/calendar"
	"github.com/minhvu-ng/studybot/internal/config"
	"github.com/minhvu-ng/studybot/internal/database"
	"github.com/minhvu-ng/studybot/internal/gcal"
	"github.com/minhvu-ng/studybot/internal/intent"
	"github.com/minhvu-ng/studybot/internal/llm"
	"github.com/minhvu-ng/studybot/internal/notify"
	"github.com/minhvu-ng/studybot/internal/server"
	"github.com/minhvu-ng/studybot/internal/timeutil"
	"github.com/minhvu-ng/studybot/internal/tutor"
)

func main() {
	cfg := config.LoadFromEnv()

	db, err := database.New(cfg.DBPath)
	if err != nil {
		fatal("creating database", err)
	}
	defer db.Close()

	tutorBot := initTutor(cfg)
	resolver := intent.NewResolver(initParserClient(cfg))
	gcalClient := initGCal(cfg, db)
	notifier := initNotifier(cfg)

	loc, fallback := timeutil.ResolveLocation(cfg.Timezone)
	if fallback && cfg.Timezone != "" {
		fmt.Printf("Warning: unknown timezone %q, using local time\n", cfg.Timezone)
	}

	var calendarService calendar.Service
	if gcalClient != nil {
		calendarService = gcalClient
	}
	integration := calendar.NewIntegration(resolver, calendarService, notifier, loc)

	srv := server.New(server.Config{
		DB:          db,
		Tutor:       tutorBot,
		Resolver:    resolver,
		Integration: integration,
		GCalClient:  gcalClient,
		Port:        cfg.HTTPPort,
	})
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "HTTP server error: %v\n", err)
		}
	}()

	waitForShutdown(srv)
}

func initTutor(cfg *config.Config) *tutor.Tutor {
	if cfg.OpenAIAPIKey == "" {
		fmt.Println("Warning: OPENAI_API_KEY not set, tutoring uses static answers")
		return tutor.New(nil)
	}
	fmt.Printf("Tutor configured (model %s)\n", cfg.TutorModel)
	return tutor.New(llm.NewClient(cfg.OpenAIAPIKey, cfg.TutorModel))
}

// initParserClient returns the generator for calendar intent extraction, or
// nil when no key is set so the resolver uses rule-based parsing only.
func initParserClient(cfg *config.Config) intent.TextGenerator {
	if cfg.OpenAIAPIKey == "" {
		fmt.Println("Warning: OPENAI_API_KEY not set, calendar parsing is rule-based only")
		return nil
	}
	fmt.Printf("Calendar parser configured (model %s)\n", cfg.ParserModel)
	return llm.NewClient(cfg.OpenAIAPIKey, cfg.ParserModel)
}

func initGCal(cfg *config.Config, db *database.DB) *gcal.Client {
	client, err := gcal.NewClient(cfg.GoogleCredentialsFile, db)
	if err != nil {
		fmt.Printf("Warning: Google Calendar unavailable: %v\n", err)
		return nil
	}
	if client.IsAuthenticated() {
		fmt.Println("Google Calendar connected")
	} else {
		fmt.Println("Google Calendar configured, waiting for authentication")
	}
	return client
}

func initNotifier(cfg *config.Config) *notify.DeadlineNotifier {
	notifier := notify.NewDeadlineNotifier(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailTo)
	if notifier.IsConfigured() {
		fmt.Println("Deadline email notifications configured (Resend)")
	}
	return notifier
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

func waitForShutdown(srv *server.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv.Shutdown(ctx)
}
