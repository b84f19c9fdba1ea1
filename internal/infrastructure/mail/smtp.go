package mail

import (
	"fmt"
	"net/smtp"

	"github.com/sitecrew/auth-api/internal/config"
)

// smtpMailer delivers directly through an MTA. Used by deployments that do
// not expose an HTTP mail endpoint.
type smtpMailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func newSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.MailFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *smtpMailer) Send(to, subject, text, html string) error {
	body := text
	contentType := "text/plain"
	if html != "" {
		body = html
		contentType = "text/html"
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: %s; charset=UTF-8\r\n\r\n%s",
		m.from, to, subject, contentType, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
