package tutor

import (
	"context"
	"log"

	"github.com/minhvu-ng/studybot/internal/llm"
	"github.com/minhvu-ng/studybot/internal/subjects"
)

const (
	tutorTemperature = 0.7
	tutorMaxTokens   = 1000
)

// Generator is the text-generation capability used for tutoring answers.
type Generator interface {
	Complete(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error)
}

// Reply is a tutoring answer with its subject tag and follow-up suggestions.
type Reply struct {
	Answer      string           `json:"answer"`
	Suggestions []string         `json:"suggestions"`
	Mode        subjects.Subject `json:"ai_mode"`
}

// Tutor answers study questions by classifying the subject and asking the
// model with the matching system prompt.
type Tutor struct {
	generator Generator
}

func New(generator Generator) *Tutor {
	return &Tutor{generator: generator}
}

// Answer classifies the question and produces a reply. A failed or
// unconfigured model degrades to a static per-subject answer, never an
// error.
func (t *Tutor) Answer(ctx context.Context, question string) Reply {
	subject := subjects.Classify(question)

	if t.generator == nil {
		return fallbackReply(subject)
	}

	messages := []llm.Message{
		{Role: "system", Content: subjects.SystemPrompt(subject)},
		{Role: "user", Content: question},
	}
	answer, err := t.generator.Complete(ctx, messages, llm.Options{
		Temperature: tutorTemperature,
		MaxTokens:   tutorMaxTokens,
	})
	if err != nil {
		log.Printf("tutor completion failed for subject %s: %v", subject, err)
		return fallbackReply(subject)
	}

	return Reply{
		Answer:      answer,
		Suggestions: subjects.Suggestions(subject),
		Mode:        subject,
	}
}

func fallbackReply(subject subjects.Subject) Reply {
	return Reply{
		Answer:      subjects.FallbackAnswer(subject),
		Suggestions: subjects.Suggestions(subject),
		Mode:        subject,
	}
}
