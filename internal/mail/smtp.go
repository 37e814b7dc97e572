package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// SMTPConfig holds the SMTP server settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
}

// SMTPMailer sends through an SMTP relay, upgrading with STARTTLS when UseTLS is set
type SMTPMailer struct {
	config SMTPConfig
	now    func() time.Time
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: cfg, now: time.Now}
}

func (m *SMTPMailer) Name() string { return "smtp" }

// Addr is host:port of the relay
func (m *SMTPMailer) Addr() string {
	return fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before sending email: %w", err)
	}

	var auth smtp.Auth
	if m.config.Username != "" && m.config.Password != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	body := []byte(m.buildMessage(msg))
	if !m.config.UseTLS {
		return smtp.SendMail(m.Addr(), auth, msg.From, []string{msg.To}, body)
	}
	return m.sendWithTLS(auth, msg.From, msg.To, body)
}

func (m *SMTPMailer) sendWithTLS(auth smtp.Auth, from, to string, body []byte) error {
	client, err := smtp.Dial(m.Addr())
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{ServerName: m.config.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}
	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient %s: %w", to, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return client.Quit()
}

func (m *SMTPMailer) buildMessage(msg Message) string {
	var b strings.Builder
	b.WriteString("From: " + msg.From + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + headerSafe(msg.Subject) + "\r\n")
	b.WriteString("Date: " + m.now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString(fmt.Sprintf("Message-ID: <%d@%s>\r\n", m.now().UnixNano(), m.config.Host))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return b.String()
}

// headerSafe strips CR and LF so user input cannot inject headers
func headerSafe(s string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(s)
}
