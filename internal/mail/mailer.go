// Package mail delivers the issued API key to a registrant over SMTP. When no
// SMTP host is configured, delivery is skipped with a log line so local
// development does not require a mail server.
package mail

import (
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"

	"github.com/TanmoyTheBoT/fmdb-api/internal/config"
)

// Mailer sends plain-text mail through a configured SMTP relay
type Mailer struct {
	cfg config.SMTPConfig
}

// NewMailer creates a mailer from SMTP configuration
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendAPIKey composes and delivers the registration email carrying the key.
func (m *Mailer) SendAPIKey(toEmail, firstName, apiKey string) error {
	if m.cfg.Host == "" {
		log.Printf("[mail] SMTP host not configured, skipping delivery to %s", toEmail)
		return nil
	}

	subject := "Your FMDB API key"
	body := strings.Join([]string{
		fmt.Sprintf("Hello %s,", firstName),
		"",
		"Thanks for registering. Your API key is:",
		"",
		"  " + apiKey,
		"",
		"Pass it as the apikey query parameter on every request, e.g.:",
		"  /?apikey=" + apiKey + "&i=tt0111161",
		"",
		"Keep the key private. One key is issued per email address.",
		"",
		"— FMDB API",
	}, "\r\n")

	return m.send(toEmail, subject, body)
}

// send delivers a plain-text message via SMTP
func (m *Mailer) send(toEmail, subject, body string) error {
	headers := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n",
		m.cfg.From, toEmail, subject,
	)
	msg := []byte(headers + body + "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if m.cfg.UseTLS {
		return sendMailTLS(addr, m.cfg.Host, auth, m.cfg.From, []string{toEmail}, msg)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{toEmail}, msg)
}

// sendMailTLS connects over implicit TLS (port 465 / SMTPS). For the port 587
// STARTTLS pattern, smtp.SendMail upgrades the connection itself, so a failed
// dial falls back to that path.
func sendMailTLS(addr, host string, auth smtp.Auth, from string, to []string, msg []byte) error {
	tlsConfig := &tls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return smtp.SendMail(addr, auth, from, to, msg)
	}
	defer conn.Close()

	hostname, _, _ := net.SplitHostPort(addr)
	c, err := smtp.NewClient(conn, hostname)
	if err != nil {
		return fmt.Errorf("smtp new client: %w", err)
	}
	defer c.Quit() //nolint:errcheck

	if auth != nil {
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(from); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp RCPT TO %s: %w", rcpt, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	return w.Close()
}
