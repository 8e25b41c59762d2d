package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/resend/resend-go/v2"
)

// DeadlineNotifier emails the student when a new deadline lands on the
// calendar, via the Resend API.
type DeadlineNotifier struct {
	client      *resend.Client
	fromAddress string
	toAddress   string
}

// NewDeadlineNotifier creates a Resend-backed notifier. Returns nil when no
// API key is configured; callers treat a nil notifier as disabled.
func NewDeadlineNotifier(apiKey, from, to string) *DeadlineNotifier {
	if apiKey == "" {
		return nil
	}
	return &DeadlineNotifier{
		client:      resend.NewClient(apiKey),
		fromAddress: from,
		toAddress:   to,
	}
}

// IsConfigured returns true when the notifier can actually send.
func (n *DeadlineNotifier) IsConfigured() bool {
	return n != nil && n.client != nil && n.fromAddress != "" && n.toAddress != ""
}

// SendDeadlineCreated emails a confirmation for a newly created deadline.
func (n *DeadlineNotifier) SendDeadlineCreated(title, description string, due time.Time) error {
	if !n.IsConfigured() {
		return fmt.Errorf("deadline notifier is not configured")
	}

	subject := fmt.Sprintf("Deadline mới: %s", title)
	html := formatDeadlineHTML(title, description, due)

	params := &resend.SendEmailRequest{
		From:    n.fromAddress,
		To:      []string{n.toAddress},
		Subject: subject,
		Html:    html,
	}

	if _, err := n.client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	log.Printf("notify: deadline email sent for %q", title)
	return nil
}

func formatDeadlineHTML(title, description string, due time.Time) string {
	descriptionHTML := ""
	if description != "" {
		descriptionHTML = fmt.Sprintf(`<p style="margin: 16px 0;">%s</p>`, description)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
  <div style="background-color: white; border-radius: 8px; padding: 24px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
    <div style="margin-bottom: 16px;">
      <span style="background-color: #dc3545; color: white; padding: 4px 12px; border-radius: 4px; font-size: 12px; font-weight: 600;">Deadline</span>
    </div>

    <h2 style="margin: 0 0 16px 0; color: #333;">%s</h2>

    <div style="background: #f8f9fa; padding: 16px; border-radius: 8px; margin: 16px 0; border-left: 4px solid #dc3545;">
      <p style="margin: 8px 0;"><strong>Hạn chót:</strong> %s</p>
    </div>

    %s

    <hr style="margin-top: 32px; border: none; border-top: 1px solid #eee;">
    <p style="color: #999; font-size: 12px; margin-top: 16px;">
      StudyBot - Trợ lý học tập<br>
      <span style="color: #ccc;">Gửi lúc %s</span>
    </p>
  </div>
</body>
</html>`,
		title,
		due.Format("02/01/2006"),
		descriptionHTML,
		time.Now().Format("02/01/2006 15:04"),
	)
}
