package otps

import "time"

// Purpose tags what an issued code may be consumed for. Only email
// verification exists today; the column is free text so new purposes do not
// need a migration.
type Purpose string

const PurposeVerifyEmail Purpose = "verify_email"

// EmailOTP is one issued one-time code. CodeHash is the SHA-256 digest of
// the plaintext code; the plaintext itself is never persisted. UsedAt stays
// nil until the code is consumed, and consumption happens at most once.
type EmailOTP struct {
	ID        string
	UserID    string
	Purpose   Purpose
	CodeHash  []byte
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Expired reports whether the code's TTL has elapsed at the given instant.
func (o *EmailOTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
