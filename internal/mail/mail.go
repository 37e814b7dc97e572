// Package mail sends outbound HTML email through SMTP, AWS SES or the log.
package mail

import (
	"context"
	"fmt"

	"github.com/localnerve/singletea-api/internal/config"
	"go.uber.org/zap"
)

// Message is a single HTML email
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Mailer delivers messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	// Name identifies the transport in logs and metrics
	Name() string
}

// New selects the transport named by cfg.Mail.Transport
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (Mailer, error) {
	switch cfg.Mail.Transport {
	case "smtp":
		return NewSMTPMailer(SMTPConfig{
			Host:     cfg.Mail.SMTPHost,
			Port:     cfg.Mail.SMTPPort,
			Username: cfg.Mail.SMTPUsername,
			Password: cfg.Mail.SMTPPassword,
			UseTLS:   cfg.Mail.SMTPUseTLS,
		}), nil
	case "ses":
		return NewSESMailer(ctx, cfg.Mail.AWSRegion)
	case "log", "":
		return NewLogMailer(log), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Mail.Transport)
	}
}
