package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer sends plain-text mail through an unauthenticated SMTP relay.
type SMTPMailer struct {
	addr string
	from string
}

func NewSMTPMailer(addr string, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

// sendMail is a seam for testing without a live relay.
var sendMail = smtp.SendMail

func (m *SMTPMailer) send(to string, subject string, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	if err := sendMail(m.addr, nil, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to string, code string) error {
	body := fmt.Sprintf("Your verification code is %s. It expires shortly, so use it right away.", code)
	return m.send(to, "Verify your email", body)
}

func (m *SMTPMailer) SendPasswordResetLink(ctx context.Context, to string, link string) error {
	body := fmt.Sprintf("Use the link below to choose a new password:\n\n%s\n\nIf you did not request this, you can ignore this message.", link)
	return m.send(to, "Reset your password", body)
}
