// File: internal/infra/adapters/mail/smtp_mailer.go
package mail

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"content-studio/internal/config"
	"content-studio/internal/domain/ports/adapter"
)

var _ adapter.Mailer = (*SMTPMailer)(nil)

// SMTPMailer sends multipart text+HTML mail over authenticated SMTP.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	log      zerolog.Logger

	// send is swapped in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg config.EmailConfig, logger *zerolog.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, errors.New("mail: host and from are required")
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	return &SMTPMailer{
		host:     cfg.Host,
		port:     port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		log:      logger.With().Str("component", "smtp_mailer").Logger(),
		send:     smtp.SendMail,
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, email adapter.Email) error {
	if email.To == "" {
		return errors.New("mail: empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := m.buildMessage(email)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := m.send(addr, auth, m.from, []string{email.To}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	m.log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("email sent")
	return nil
}

const mimeBoundary = "MAIL_PART_BOUNDARY"

func (m *SMTPMailer) buildMessage(email adapter.Email) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	if email.HTMLBody != "" {
		fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mimeBoundary)
		fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(email.TextBody)
		fmt.Fprintf(&b, "\r\n--%s\r\n", mimeBoundary)
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(email.HTMLBody)
		fmt.Fprintf(&b, "\r\n--%s--\r\n", mimeBoundary)
	} else {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(email.TextBody)
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}
