// Package mailer sends transactional email over SMTP.
package mailer

import (
	"context"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/houseofplants/houseofplants/internal/config"
)

const welcomeSubject = "Welcome to House of Plants"

const welcomeBody = `Hi %s,

Welcome to House of Plants! Your account is ready.

List your plants, browse what your neighbours are growing, and keep an eye
on the events page for the next swap near you.

Happy growing,
The House of Plants team
`

// Sender is what the welcome-email task needs from a mailer.
type Sender interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// Mailer sends mail through the configured SMTP host.
type Mailer struct {
	cfg config.Mail
}

func New(cfg config.Mail) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// SendWelcome sends the fixed welcome template to a new user.
func (m *Mailer) SendWelcome(ctx context.Context, to, name string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(welcomeSubject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(welcomeBody, name))

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send welcome mail to %s: %w", to, err)
	}
	return nil
}
