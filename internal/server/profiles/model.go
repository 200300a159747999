package profiles

import "time"

// Profile is the one-to-one companion record of a user. Email is not stored
// on the profiles table; reads join it in from the owning user row so the
// two can never drift apart. AvatarKey is the object-store key of the
// uploaded avatar, empty when none was uploaded.
type Profile struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	AvatarKey string
	CreatedAt time.Time
	UpdatedAt time.Time
}
