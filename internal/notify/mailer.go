package notify

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/crisisdesk/disaster-response-api/internal/config"
)

// Sender delivers one message to one recipient. Split out so delivery can be
// faked in tests without an SMTP relay.
type Sender interface {
	Send(to, subject, body string) error
}

// DeliveryResult partitions a multi-recipient dispatch.
type DeliveryResult struct {
	Successful []string `json:"successful_recipients"`
	Failed     []string `json:"failed_recipients"`
}

// AllFailed reports whether nothing was delivered.
func (r DeliveryResult) AllFailed() bool {
	return len(r.Successful) == 0 && len(r.Failed) > 0
}

// Partial reports whether some but not all recipients failed.
func (r DeliveryResult) Partial() bool {
	return len(r.Successful) > 0 && len(r.Failed) > 0
}

// Mailer fans a message out to each recipient individually so one bad
// address cannot sink the rest of the batch.
type Mailer struct {
	sender Sender
}

func NewMailer(sender Sender) *Mailer {
	return &Mailer{sender: sender}
}

func (m *Mailer) SendToAll(recipients []string, subject, body string) DeliveryResult {
	result := DeliveryResult{
		Successful: make([]string, 0, len(recipients)),
		Failed:     make([]string, 0),
	}

	for _, recipient := range recipients {
		if err := m.sender.Send(recipient, subject, body); err != nil {
			slog.Error("email delivery failed", "recipient", recipient, "error", err)
			result.Failed = append(result.Failed, recipient)
			continue
		}
		result.Successful = append(result.Successful, recipient)
	}

	return result
}

// SMTPSender sends mail through a plain-auth SMTP relay.
type SMTPSender struct {
	cfg config.SMTPConfig
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("error sending mail to %s: %w", to, err)
	}
	return nil
}
