package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer delivers transactional mail. Delivery failures are reported to
// the caller; whether they abort the operation is the caller's call.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPMailer constructs an SMTPMailer.
func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers a single plain-text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes mail to the application log instead of sending it.
// Used in development when no SMTP relay is configured.
type LogMailer struct{}

// Send logs the message and reports success.
func (LogMailer) Send(to, subject, body string) error {
	log.Printf("[Mail] to=%s subject=%q body=%q", to, subject, body)
	return nil
}

// NewMailer returns an SMTPMailer when a host is configured and falls
// back to LogMailer otherwise.
func NewMailer(host, port, username, password, from string) Mailer {
	if host == "" {
		log.Println("[Mail] SMTP host not configured, logging mail instead")
		return LogMailer{}
	}
	return NewSMTPMailer(host, port, username, password, from)
}
