package infra

import (
	"fmt"
	"net/smtp"

	"github.com/parmenasoares/track-and-work/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending notification emails.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	from := cfg.MailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     from,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Send delivers a plain-text email.
func (m *Mailer) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
