package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
)

// Mailer sends plain-text mail through the configured SMTP relay.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers one message. Callers treat failures as non-fatal; the
// notification row is the source of truth, mail is best effort.
func (m *Mailer) Send(to, subject, body string) error {
	if m.cfg.Username == "" || m.cfg.From == "" {
		return fmt.Errorf("smtp not configured")
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}
