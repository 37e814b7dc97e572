package mail

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer writes messages to the log instead of sending them
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Name() string { return "log" }

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("email",
		zap.String("from", msg.From),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("bytes", len(msg.HTML)),
	)
	return nil
}
