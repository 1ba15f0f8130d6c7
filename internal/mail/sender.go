package mail

import (
	"context"
	"fmt"

	"github.com/hr-records-api/internal/config"
	"github.com/hr-records-api/pkg/logger"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Message is one outgoing HTML email
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

// Sender delivers messages
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPSender delivers messages over SMTP
type SMTPSender struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewSMTPSender creates a sender from the SMTP settings. Port 465 uses implicit TLS.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
	}
}

// Send delivers msg. gomail has no context support, so ctx is only checked up front.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetAddressHeader("To", msg.To, msg.ToName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}
	return nil
}

// LogSender only logs messages; used when SMTP is not configured
type LogSender struct {
	log zerolog.Logger
}

// NewLogSender creates a new LogSender
func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: logger.Component(log, "mail")}
}

// Send logs the recipient and subject
func (s *LogSender) Send(_ context.Context, msg *Message) error {
	s.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("SMTP not configured, mail not delivered")
	return nil
}
