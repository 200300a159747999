package tokens

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newBlacklist(t *testing.T) (*RedisBlacklist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisBlacklist(client), mr
}

func TestBlacklist_AddContains(t *testing.T) {
	bl, _ := newBlacklist(t)
	ctx := context.Background()

	ok, err := bl.Contains(ctx, "jti-1")
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if ok {
		t.Fatal("fresh jti should not be blacklisted")
	}

	if err := bl.Add(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	ok, err = bl.Contains(ctx, "jti-1")
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if !ok {
		t.Fatal("added jti should be blacklisted")
	}
}

func TestBlacklist_EntryExpiresWithToken(t *testing.T) {
	bl, mr := newBlacklist(t)
	ctx := context.Background()

	if err := bl.Add(ctx, "jti-2", time.Minute); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	ok, err := bl.Contains(ctx, "jti-2")
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if ok {
		t.Fatal("entry should expire with the token")
	}
}
