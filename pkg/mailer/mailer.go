package mailer

import (
	"crypto/tls"
	"errors"

	"mess-review/pkg/utils"

	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("smtp is not configured")

// Sender delivers plain HTML notification emails.
type Sender interface {
	Send(to []string, subject, body string) error
	Enabled() bool
}

type smtpSender struct {
	config utils.EmailConfig
	dialer *gomail.Dialer
}

// New returns an SMTP backed sender. When no host is configured every Send
// fails with ErrNotConfigured and Enabled reports false.
func New(config utils.EmailConfig) Sender {
	s := &smtpSender{config: config}
	if config.Host != "" {
		s.dialer = gomail.NewDialer(config.Host, config.Port, config.User, config.Password)
		s.dialer.TLSConfig = &tls.Config{ServerName: config.Host}
	}
	return s
}

func (s *smtpSender) Enabled() bool {
	return s.dialer != nil && s.config.From != ""
}

func (s *smtpSender) Send(to []string, subject, body string) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}
	if len(to) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
