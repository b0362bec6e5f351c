// Package smtp delivers notification email through an external SMTP relay.
package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mstepanov/contact-backend/internal/contact"
	"github.com/mstepanov/contact-backend/internal/mail"
)

// Config carries relay connection settings. Secure selects implicit TLS
// (the usual port 465 mode); otherwise the connection is plain TCP with
// opportunistic STARTTLS.
type Config struct {
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string

	// From is the sending identity; To receives the notifications.
	From string
	To   string
}

// Relay is a long-lived SMTP client configuration. Each send performs one
// complete SMTP transaction; the relay holds no open connection between
// sends.
type Relay struct {
	cfg    Config
	dialer *net.Dialer
}

// NewRelay builds a relay from config.
func NewRelay(cfg Config) *Relay {
	return &Relay{
		cfg:    cfg,
		dialer: &net.Dialer{Timeout: 10 * time.Second},
	}
}

// Send renders the notification for sub and delivers it in a single SMTP
// transaction. There are no retries; the caller decides what a failure
// means.
func (r *Relay) Send(ctx context.Context, sub *contact.Submission) error {
	n := mail.NewNotification(r.cfg.From, r.cfg.To, sub)

	client, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Mail(n.From); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if err := client.Rcpt(n.To); err != nil {
		return fmt.Errorf("RCPT TO: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write(buildMessage(n)); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("DATA close: %w", err)
	}
	return client.Quit()
}

// Verify dials the relay, completes the handshake (including AUTH when
// credentials are configured), and quits. Called once at startup; a
// failure here is reported to the caller but is not meant to stop the
// process.
func (r *Relay) Verify(ctx context.Context) error {
	client, err := r.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()
	return client.Quit()
}

// connect dials, upgrades to TLS as configured, and authenticates.
func (r *Relay) connect(ctx context.Context) (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", r.cfg.Host, r.cfg.Port)

	var conn net.Conn
	var err error
	if r.cfg.Secure {
		tlsDialer := &tls.Dialer{
			NetDialer: r.dialer,
			Config:    &tls.Config{ServerName: r.cfg.Host},
		}
		conn, err = tlsDialer.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = r.dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to relay %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, r.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp handshake: %w", err)
	}

	if !r.cfg.Secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: r.cfg.Host}); err != nil {
				client.Close()
				return nil, fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if r.cfg.Username != "" {
		if err := client.Auth(&plainAuth{user: r.cfg.Username, pass: r.cfg.Password}); err != nil {
			client.Close()
			return nil, fmt.Errorf("auth: %w", err)
		}
	}

	return client, nil
}

// buildMessage assembles the raw RFC 5322 message: headers plus a
// multipart/alternative body with the text and HTML renditions.
// Header values are sanitized here, at the wire boundary: user input
// reaches the subject, and a stray CRLF in any header value would let
// the sender smuggle extra headers into the message.
func buildMessage(n *mail.Notification) []byte {
	boundary := strings.ReplaceAll(uuid.New().String(), "-", "")

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", headerValue(n.From))
	fmt.Fprintf(&buf, "To: %s\r\n", headerValue(n.To))
	fmt.Fprintf(&buf, "Reply-To: %s\r\n", headerValue(n.ReplyTo))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerValue(n.Subject)))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "Message-ID: <%s@contact-backend>\r\n", uuid.New().String())
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	buf.WriteString(n.TextBody)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	buf.WriteString(n.HTMLBody)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}

// headerValue strips CR and LF so no value can terminate its header line.
func headerValue(v string) string {
	v = strings.ReplaceAll(v, "\r", "")
	return strings.ReplaceAll(v, "\n", "")
}

// plainAuth implements AUTH PLAIN without stdlib PlainAuth's TLS
// requirement. Relays on private networks commonly accept AUTH on the
// submission port without TLS.
type plainAuth struct {
	user, pass string
}

func (a *plainAuth) Start(_ *smtp.ServerInfo) (string, []byte, error) {
	return "PLAIN", []byte("\x00" + a.user + "\x00" + a.pass), nil
}

func (a *plainAuth) Next(_ []byte, _ bool) ([]byte, error) {
	return nil, nil
}
