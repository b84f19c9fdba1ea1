package mail

import "github.com/sitecrew/auth-api/internal/config"

// Mailer sends emails. Delivery is best-effort: callers in the verification
// flow dispatch sends in the background and only log failures.
type Mailer interface {
	Send(to, subject, text, html string) error
}

// NewMailer selects the delivery transport from configuration.
func NewMailer(cfg *config.Config) Mailer {
	if cfg.MailTransport == "smtp" {
		return newSMTPMailer(cfg)
	}
	return newAPIMailer(cfg)
}
