// SMTP delivery for rendered reports.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"tor-daily-report/internal/config"
)

// Sender delivers report emails over SMTP. It implements
// report.MailSender. The connection is scoped to a single Send call.
type Sender struct {
	cfg config.SMTPConfig
}

// NewSender returns a Sender for the given transport settings.
func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

// Send builds a plain-text message and delivers it in one SMTP session.
func (s *Sender) Send(ctx context.Context, from, to, subject, body string) error {
	msg, err := buildMessage(from, to, subject, body)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}
	// use_tls selects STARTTLS; otherwise the session uses implicit TLS.
	if s.cfg.UseTLS != nil && *s.cfg.UseTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithSSL())
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return msg, nil
}
