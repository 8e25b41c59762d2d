package intent

import (
	"context"
	"time"
)

// Resolver is the single public entry point for calendar-triggered requests.
// Callers must treat action=none or confidence below 0.3 as "ask the user to
// clarify" and take no calendar action.
type Resolver struct {
	extractor *Extractor
}

func NewResolver(generator TextGenerator) *Resolver {
	return &Resolver{extractor: NewExtractor(generator)}
}

// Resolve parses the message into a ParsedIntent. It never fails; the worst
// case is action=none with confidence 0.
func (r *Resolver) Resolve(ctx context.Context, message string, now time.Time) *ParsedIntent {
	return r.extractor.Parse(ctx, message, now)
}
