// Package mail delivers the two account notifications: the email
// verification code and the password-reset link. Delivery is best-effort;
// the operations that trigger a mail are authoritative once committed, so
// transport failures are logged and never surfaced to the caller.
package mail

import "context"

type Mailer interface {
	SendVerificationCode(ctx context.Context, to string, code string) error
	SendPasswordResetLink(ctx context.Context, to string, link string) error
}
