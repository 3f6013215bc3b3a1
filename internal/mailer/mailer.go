package mailer

import (
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"innervoice/internal/config"
)

// Mailer sends transactional mail (OTP codes) over SMTP.
type Mailer struct {
	from   string
	dialer *gomail.Dialer
	logger zerolog.Logger
}

// NewMailer creates a new Mailer from the SMTP section of the configuration.
func NewMailer(cfg *config.Config, logger zerolog.Logger) (*Mailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("missing SMTP_HOST configuration")
	}
	if cfg.SMTPFrom == "" {
		return nil, fmt.Errorf("missing SMTP_FROM configuration")
	}

	dialer := gomail.NewDialer(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUsername,
		cfg.SMTPPassword,
	)

	return &Mailer{
		from:   cfg.SMTPFrom,
		dialer: dialer,
		logger: logger,
	}, nil
}

// Send sends a single plain-text email.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error().Err(err).Str("to", to).Msg("failed to send email")
		return err
	}

	m.logger.Debug().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
