package otps

import "context"

type Repository interface {
	// Create persists a freshly minted code and fills in ID and CreatedAt.
	Create(ctx context.Context, otp *EmailOTP) error
	// LatestActive returns the newest unconsumed code for the user and
	// purpose, expired or not. shared.ErrorNotFound when none exists.
	LatestActive(ctx context.Context, userID string, purpose Purpose) (*EmailOTP, error)
	// MarkUsed stamps used_at on an unconsumed code. shared.ErrorNotFound
	// when the code does not exist or was already consumed.
	MarkUsed(ctx context.Context, id string) error
}
