package users

import "time"

// User is a Credential Store row. Email is stored normalized (trimmed,
// lowercased) and unique at the storage layer. EmailVerified and IsActive
// start false and flip together via OTP consumption only.
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	EmailVerified bool
	IsActive      bool
	IsAdmin       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
