// Package mailer delivers outbound mail for the wishlane backend.
//
// Production deployments plug in a real provider; local and test
// environments use the log-backed implementation, which writes the
// message to the structured log instead of sending it.
package mailer

import (
	"context"
	"fmt"

	"github.com/wishlane/wishlane-backend/pkg/logger"
)

// Message is a single outbound mail.
type Message struct {
	To      string
	From    string
	Subject string
	Body    string
}

// Mailer sends mail. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the structured log instead of
// delivering them. Used in dev and in tests.
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("mailer: recipient is required")
	}
	ctx = m.log.WithFields(ctx, map[string]any{
		"to":      msg.To,
		"from":    msg.From,
		"subject": msg.Subject,
	})
	m.log.Info(ctx, "mail delivered to log")
	return nil
}
