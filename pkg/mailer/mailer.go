package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/bitebakers/brownie-backend/config"
	"github.com/bitebakers/brownie-backend/pkg/logger"
)

// Mailer sends transactional email. Implementations must treat failures
// as their caller's business: most send sites swallow errors, but
// registration compensates on failure.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends mail through a plain SMTP relay. When no credentials
// are configured it logs the message instead, which keeps local
// development working without a mail account.
type SMTPMailer struct {
	cfg         config.SMTPConfig
	frontendURL string
}

func NewSMTPMailer(cfg config.SMTPConfig, frontendURL string) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, frontendURL: frontendURL}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if m.cfg.Email == "" || m.cfg.Password == "" {
		logger.Info("[DEV MODE] Email not sent, SMTP not configured", map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return nil
	}

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		m.cfg.FromName, m.cfg.Email, to, subject, htmlBody,
	))

	auth := smtp.PlainAuth("", m.cfg.Email, m.cfg.Password, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port

	if err := smtp.SendMail(addr, auth, m.cfg.Email, []string{to}, message); err != nil {
		logger.Error("Failed to send email", err, map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}

// FrontendURL exposes the storefront base URL for building links in
// templates.
func (m *SMTPMailer) FrontendURL() string {
	return m.frontendURL
}
