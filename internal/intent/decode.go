package intent

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// rawIntent is the wire shape of the model's extraction output. Numeric and
// time fields are pointers so that "absent" can be told apart from zero when
// merging over defaults.
type rawIntent struct {
	Action          string  `json:"action"`
	Title           string  `json:"title"`
	Date            string  `json:"date"`
	Time            *string `json:"time"`
	Description     string  `json:"description"`
	DurationMinutes *int    `json:"duration_minutes"`
	ReminderMinutes *int    `json:"reminder_minutes"`
	Confidence      float64 `json:"confidence"`
}

// decodeIntentJSON slices the first-{ to last-} span out of the model output
// and decodes it. Three outcomes: well-formed JSON decodes directly;
// malformed-but-recoverable JSON (trailing commas, single quotes, chatter
// inside the braces) goes through jsonrepair; anything else reports failure
// so the caller can fall back to the rule-based parser.
func decodeIntentJSON(text string) (*rawIntent, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	span := text[start : end+1]

	var raw rawIntent
	if err := json.Unmarshal([]byte(span), &raw); err == nil {
		return &raw, true
	}

	repaired, err := jsonrepair.JSONRepair(span)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
		return nil, false
	}
	return &raw, true
}
