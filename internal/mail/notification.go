// Package mail builds the notification email derived from a contact
// submission. Notifications are transient: constructed per request,
// handed to the relay, never persisted.
package mail

import (
	"fmt"
	"html"
	"strings"

	"github.com/mstepanov/contact-backend/internal/contact"
)

// Notification is a fully rendered email ready for the relay.
type Notification struct {
	From     string
	ReplyTo  string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// NewNotification renders a notification for one submission. Reply-To is
// the submitter's address so replies reach them directly. User-supplied
// fields are HTML-escaped in the HTML body; submission newlines become
// <br/> there and are preserved verbatim in the text body.
func NewNotification(from, to string, sub *contact.Submission) *Notification {
	return &Notification{
		From:     from,
		ReplyTo:  sub.Email,
		To:       to,
		Subject:  "New contact from " + sub.Name,
		TextBody: fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", sub.Name, sub.Email, sub.Message),
		HTMLBody: htmlBody(sub),
	}
}

func htmlBody(sub *contact.Submission) string {
	message := strings.ReplaceAll(html.EscapeString(sub.Message), "\n", "<br/>")
	return fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p>\n<p><strong>Email:</strong> %s</p>\n<p><strong>Message:</strong><br/>%s</p>",
		html.EscapeString(sub.Name), html.EscapeString(sub.Email), message,
	)
}
