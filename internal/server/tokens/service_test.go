package tokens

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"accountd/internal/logging"
	"accountd/internal/server/auth"
	"accountd/internal/server/config"
	"accountd/internal/server/password"
	"accountd/internal/server/users"
	"accountd/internal/shared"
)

// --- helpers ---

type fakeUsersRepo struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
	err     error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *users.User) (*users.User, error) {
	return u, nil
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, shared.ErrorNotFound
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, shared.ErrorNotFound
}
func (f *fakeUsersRepo) SetVerifiedActive(ctx context.Context, id string) error    { return nil }
func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id, hash string) error { return nil }
func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error               { return nil }

func newTestService(t *testing.T, repo *fakeUsersRepo) *Service {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	bl, _ := newBlacklist(t)
	return NewService(repo, bl, cfg, logging.NewSlogLogger(slog.Default()))
}

func storedUser(t *testing.T, id, email, plain string, verified, active bool) *users.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	return &users.User{ID: id, Email: email, PasswordHash: hash, EmailVerified: verified, IsActive: active}
}

// --- tests ---

func TestLogin_Success(t *testing.T) {
	u := storedUser(t, "u-1", "alice@example.com", "open sesame", true, true)
	svc := newTestService(t, &fakeUsersRepo{byEmail: map[string]*users.User{u.Email: u}})

	pair, err := svc.Login(context.Background(), "  Alice@Example.COM ", "open sesame")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("incomplete pair: %+v", pair)
	}

	claims, err := auth.ParseAccessToken(pair.AccessToken, []byte("k"))
	if err != nil {
		t.Fatalf("access token does not parse: %v", err)
	}
	if claims.UserID != "u-1" || claims.IsAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLogin_RejectionsAreIndistinguishable(t *testing.T) {
	u := storedUser(t, "u-1", "alice@example.com", "open sesame", true, true)
	unverified := storedUser(t, "u-2", "carol@example.com", "open sesame", false, false)
	deactivated := storedUser(t, "u-3", "dave@example.com", "open sesame", true, false)
	repo := &fakeUsersRepo{byEmail: map[string]*users.User{
		u.Email: u, unverified.Email: unverified, deactivated.Email: deactivated,
	}}
	svc := newTestService(t, repo)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "ghost@example.com", "open sesame"},
		{"wrong password", "alice@example.com", "wrong"},
		{"unverified account", "carol@example.com", "open sesame"},
		{"deactivated account", "dave@example.com", "open sesame"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, shared.ErrorUnauthorized) {
				t.Fatalf("expected ErrorUnauthorized, got %v", err)
			}
		})
	}
}

func TestRefresh_MintsNewAccessToken(t *testing.T) {
	u := storedUser(t, "u-1", "alice@example.com", "open sesame", true, true)
	svc := newTestService(t, &fakeUsersRepo{
		byEmail: map[string]*users.User{u.Email: u},
		byID:    map[string]*users.User{u.ID: u},
	})

	pair, err := svc.Login(context.Background(), u.Email, "open sesame")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	access, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if _, err := auth.ParseAccessToken(access, []byte("k")); err != nil {
		t.Fatalf("refreshed access token does not parse: %v", err)
	}
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc := newTestService(t, &fakeUsersRepo{})

	if _, err := svc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, shared.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken, got %v", err)
	}
}

func TestRefresh_DeactivatedUser(t *testing.T) {
	u := storedUser(t, "u-1", "alice@example.com", "open sesame", true, true)
	repo := &fakeUsersRepo{
		byEmail: map[string]*users.User{u.Email: u},
		byID:    map[string]*users.User{u.ID: u},
	}
	svc := newTestService(t, repo)

	pair, err := svc.Login(context.Background(), u.Email, "open sesame")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	u.IsActive = false
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, shared.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken, got %v", err)
	}
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	u := storedUser(t, "u-1", "alice@example.com", "open sesame", true, true)
	svc := newTestService(t, &fakeUsersRepo{
		byEmail: map[string]*users.User{u.Email: u},
		byID:    map[string]*users.User{u.ID: u},
	})

	pair, err := svc.Login(context.Background(), u.Email, "open sesame")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	if err := svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("Logout error: %v", err)
	}

	// revoked token can no longer refresh
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, shared.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken after logout, got %v", err)
	}

	// second logout of the same token is rejected
	if err := svc.Logout(context.Background(), pair.RefreshToken); !errors.Is(err, shared.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken on double logout, got %v", err)
	}
}

func TestLogout_GarbageToken(t *testing.T) {
	svc := newTestService(t, &fakeUsersRepo{})

	if err := svc.Logout(context.Background(), "not-a-token"); !errors.Is(err, shared.ErrorInvalidToken) {
		t.Fatalf("expected ErrorInvalidToken, got %v", err)
	}
}
