package profiles

import "context"

type Repository interface {
	// Create inserts the companion profile for a user and fills in ID,
	// CreatedAt and UpdatedAt. Called in the same transaction as the user
	// insert, so a user without a profile is never observable.
	Create(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	GetByID(ctx context.Context, id string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	UpdateName(ctx context.Context, id string, name string) error
	UpdateAvatarKey(ctx context.Context, id string, key string) error
}
