package mail

import (
	"context"

	"accountd/internal/logging"
)

// ConsoleMailer writes notifications to the log instead of sending them.
// Used in development and as the fallback target when a real transport
// fails.
type ConsoleMailer struct {
	logger logging.Logger
}

func NewConsoleMailer(logger logging.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

func (m *ConsoleMailer) SendVerificationCode(ctx context.Context, to string, code string) error {
	m.logger.Info(ctx, "verification code issued", "to", to, "code", code)
	return nil
}

func (m *ConsoleMailer) SendPasswordResetLink(ctx context.Context, to string, link string) error {
	m.logger.Info(ctx, "password reset link issued", "to", to, "link", link)
	return nil
}
