package mail

import (
	"context"

	"accountd/internal/logging"
)

// FallbackMailer wraps a transport and swallows its delivery errors. The
// triggering operation (OTP mint, reset request) is already committed when
// mail goes out, so a transport failure must not fail the request; the
// payload is logged locally instead so an operator can recover it.
type FallbackMailer struct {
	next   Mailer
	logger logging.Logger
}

func NewFallbackMailer(next Mailer, logger logging.Logger) *FallbackMailer {
	return &FallbackMailer{next: next, logger: logger}
}

func (m *FallbackMailer) SendVerificationCode(ctx context.Context, to string, code string) error {
	if err := m.next.SendVerificationCode(ctx, to, code); err != nil {
		m.logger.Error(ctx, "mail delivery failed, verification code", "to", to, "code", code, "error", err)
	}
	return nil
}

func (m *FallbackMailer) SendPasswordResetLink(ctx context.Context, to string, link string) error {
	if err := m.next.SendPasswordResetLink(ctx, to, link); err != nil {
		m.logger.Error(ctx, "mail delivery failed, password reset link", "to", to, "link", link, "error", err)
	}
	return nil
}
