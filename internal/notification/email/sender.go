// Package email sends transactional mail over SMTP.
package email

import (
	"context"

	"github.com/wneessen/go-mail"

	"salesops_backend/platform/config"
	"salesops_backend/platform/logger"
)

// Sender delivers mail through the configured SMTP relay. With email disabled
// it logs and drops, which keeps development environments quiet.
type Sender struct {
	cfg config.EmailConfig
	log *logger.Logger
}

// New creates an SMTP sender.
func New(cfg config.EmailConfig, log *logger.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

// Send delivers one plain-text message.
func (s *Sender) Send(ctx context.Context, toAddress, toName, subject, body string) error {
	if !s.cfg.GetEmailEnabled() {
		s.log.Info("email disabled, dropping message",
			"to", toAddress,
			"subject", subject,
		)
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.GetEmailFromName(), s.cfg.GetEmailFromAddress()); err != nil {
		return err
	}
	if err := msg.AddToFormat(toName, toAddress); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(s.cfg.GetSMTPHost(),
		mail.WithPort(s.cfg.GetSMTPPort()),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.GetSMTPUsername()),
		mail.WithPassword(s.cfg.GetSMTPPassword()),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return err
	}

	return client.DialAndSendWithContext(ctx, msg)
}
