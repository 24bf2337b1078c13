// mailer.go - Outbound email for account verification

package mailer

import (
	"fmt"
	"log"

	"go-store-backend/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers verification mail. The default implementation talks
// SMTP; tests install a fake through the Client variable.
type Sender interface {
	SendVerification(toEmail, username, verifyURL string) error
}

// Client is the process-wide mail sender, set by Connect.
var Client Sender

// SMTPSender implements Sender over gomail/SMTP.
type SMTPSender struct {
	dialer    *gomail.Dialer
	fromName  string
	fromEmail string
}

// Connect installs the SMTP-backed sender. A missing host is only a
// warning at boot: registration will fail until mail is configured,
// since user creation and mail dispatch are a single unit of work.
func Connect(cfg *config.Config) {
	if cfg.SMTPHost == "" {
		log.Println("mailer: SMTP_HOST not set, registration emails will fail")
	}
	Client = &SMTPSender{
		dialer:    gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		fromName:  cfg.SMTPFromName,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// SendVerification sends the account-activation mail with the one-shot
// verification link.
func (s *SMTPSender) SendVerification(toEmail, username, verifyURL string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromEmail, s.fromName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Verifique seu email - Gamer Store")
	m.SetBody("text/html", fmt.Sprintf(
		"<h1>Bem-vindo à Gamer Store, %s!</h1><p>Clique no link para ativar sua conta: <a href=%q>%s</a></p>",
		username, verifyURL, verifyURL,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("sending verification mail to %s: %w", toEmail, err)
	}
	return nil
}
