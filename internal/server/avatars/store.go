// Package avatars stores uploaded profile avatars in an S3-compatible
// object store and hands out short-lived download URLs for them.
package avatars

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// MaxSize is the upload cap for a single avatar, enforced before any
// object-store write.
const MaxSize = 2 << 20 // 2 MiB

type Store interface {
	Put(ctx context.Context, key string, contentType string, data []byte) error
	// PresignGet returns a time-limited download URL for a stored avatar.
	PresignGet(ctx context.Context, key string) (string, error)
}

// NewStorageKey builds a fresh object key for a user's avatar. Keys are
// never reused, so a re-upload cannot be served a stale cached object.
func NewStorageKey(userID string) string {
	return fmt.Sprintf("avatars/%s/%v", userID, uuid.New())
}
