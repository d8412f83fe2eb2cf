package mail

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer delivers transactional mail. The auth service only ever needs the
// password-reset message.
type Mailer interface {
	SendPasswordReset(to, token string) error
}

// Config holds SMTP settings plus the client-side base URL the reset link
// points at.
type Config struct {
	Host         string
	Port         int
	Username     string
	Password     string
	From         string
	ResetURLBase string // e.g. https://app.example.com/reset
	Enabled      bool
}

type smtpMailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

// NewSMTPMailer creates a gomail-backed Mailer. When cfg.Enabled is false the
// mailer logs the reset link instead of dialing out, which keeps local
// development free of SMTP credentials.
func NewSMTPMailer(cfg Config) Mailer {
	return &smtpMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (m *smtpMailer) SendPasswordReset(to, token string) error {
	link := fmt.Sprintf("%s?token=%s", m.cfg.ResetURLBase, token)

	if !m.cfg.Enabled {
		logrus.WithField("to", to).Infof("mail disabled, reset link: %s", link)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>A password reset was requested for your account.</p>
<p><a href="%s">Set a new password</a> (the link expires in 30 minutes).</p>
<p>If you did not request this, you can ignore this mail.</p>`, link))

	return m.dialer.DialAndSend(msg)
}
