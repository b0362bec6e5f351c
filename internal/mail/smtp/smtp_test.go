package smtp

import (
	"strings"
	"testing"
	"time"

	"github.com/mstepanov/contact-backend/internal/contact"
	"github.com/mstepanov/contact-backend/internal/mail"
)

func TestBuildMessageHeaders(t *testing.T) {
	msg := string(buildMessage(&mail.Notification{
		From:     "noreply@site.test",
		ReplyTo:  "ada@example.com",
		To:       "inbox@site.test",
		Subject:  "New contact from Ada",
		TextBody: "Name: Ada\nEmail: ada@example.com\n\nhi",
		HTMLBody: "<p>hi</p>",
	}))

	for _, want := range []string{
		"From: noreply@site.test\r\n",
		"To: inbox@site.test\r\n",
		"Reply-To: ada@example.com\r\n",
		"Subject: New contact from Ada\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: multipart/alternative; boundary=",
		"Content-Type: text/plain; charset=utf-8\r\n",
		"Content-Type: text/html; charset=utf-8\r\n",
		"<p>hi</p>",
		"Name: Ada",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildMessageClosesBoundary(t *testing.T) {
	msg := string(buildMessage(&mail.Notification{
		From: "a@b.test", ReplyTo: "c@d.test", To: "a@b.test",
		Subject: "s", TextBody: "t", HTMLBody: "h",
	}))

	headerEnd := strings.Index(msg, "\r\n\r\n")
	if headerEnd < 0 {
		t.Fatal("no header/body separator")
	}
	header := msg[:headerEnd]

	const marker = "boundary="
	i := strings.Index(header, marker)
	if i < 0 {
		t.Fatalf("no boundary parameter in header:\n%s", header)
	}
	boundary := strings.Trim(header[i+len(marker):], "\"")

	if got := strings.Count(msg, "--"+boundary); got != 3 {
		t.Errorf("expected 2 part markers and 1 terminator for boundary %q, got %d", boundary, got)
	}
	if !strings.HasSuffix(msg, "--"+boundary+"--\r\n") {
		t.Errorf("message not terminated with closing boundary:\n%s", msg)
	}
}

func TestBuildMessageNeutralizesHeaderInjection(t *testing.T) {
	// A newline in the submitted name must not become a header of its own.
	sub := &contact.Submission{
		Name:      "Ada\r\nBcc: attacker@evil.test",
		Email:     "ada@example.com",
		Message:   "hi",
		CreatedAt: time.Now().UTC(),
	}
	n := mail.NewNotification("noreply@site.test", "inbox@site.test", sub)
	msg := string(buildMessage(n))

	if strings.Contains(msg, "\r\nBcc:") || strings.Contains(msg, "\nBcc:") {
		t.Errorf("injected header line survived:\n%s", msg)
	}

	headerEnd := strings.Index(msg, "\r\n\r\n")
	if headerEnd < 0 {
		t.Fatal("no header/body separator")
	}
	for _, line := range strings.Split(msg[:headerEnd], "\r\n") {
		if strings.HasPrefix(line, "Bcc:") {
			t.Errorf("unexpected recipient header %q", line)
		}
	}
}

func TestBuildMessageEncodesNonASCIISubject(t *testing.T) {
	msg := string(buildMessage(&mail.Notification{
		From: "a@b.test", ReplyTo: "c@d.test", To: "a@b.test",
		Subject: "New contact from Zoë", TextBody: "t", HTMLBody: "h",
	}))

	if strings.Contains(msg, "Subject: New contact from Zoë\r\n") {
		t.Errorf("raw non-ASCII subject on the wire:\n%s", msg)
	}
	if !strings.Contains(msg, "Subject: =?utf-8?q?") {
		t.Errorf("expected RFC 2047 encoded subject:\n%s", msg)
	}
	// Plain ASCII subjects stay readable.
	plain := string(buildMessage(&mail.Notification{
		From: "a@b.test", ReplyTo: "c@d.test", To: "a@b.test",
		Subject: "New contact from Ada", TextBody: "t", HTMLBody: "h",
	}))
	if !strings.Contains(plain, "Subject: New contact from Ada\r\n") {
		t.Errorf("ASCII subject needlessly encoded:\n%s", plain)
	}
}
