// Package tokens implements the session-token lifecycle: login issues an
// access/refresh pair, refresh mints new access tokens while the refresh
// token stays valid, and logout revokes the refresh token through the
// blacklist.
package tokens

import (
	"context"
	"errors"
	"time"

	"accountd/internal/logging"
	"accountd/internal/server/auth"
	"accountd/internal/server/config"
	"accountd/internal/server/password"
	"accountd/internal/server/users"
	"accountd/internal/shared"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service verifies credentials and manages the refresh-token blacklist.
type Service struct {
	users                        users.Repository
	blacklist                    Blacklist
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewService(userRepo users.Repository, blacklist Blacklist, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		users:                        userRepo,
		blacklist:                    blacklist,
		logger:                       logger,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Login verifies the credentials and mints a token pair. Every rejection —
// unknown email, wrong password, unverified or deactivated account — returns
// the same shared.ErrorUnauthorized so the response does not reveal which
// check failed.
func (s *Service) Login(ctx context.Context, email string, plainPassword string) (*TokenPair, error) {
	email = shared.NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, shared.ErrorUnauthorized
		}
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return nil, shared.ErrorInternal
	}

	if !password.Verify(user.PasswordHash, plainPassword) {
		return nil, shared.ErrorUnauthorized
	}
	if !user.EmailVerified || !user.IsActive {
		return nil, shared.ErrorUnauthorized
	}

	return s.generateTokenPair(user)
}

// Refresh validates a refresh token against its signature, expiry, the
// blacklist and the current account state, and mints a new access token.
// The refresh token itself stays usable until logout or expiry.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := auth.ParseRefreshToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", shared.ErrorInvalidToken
	}

	revoked, err := s.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		s.logger.Error(ctx, "blacklist lookup failed", "error", err)
		return "", shared.ErrorInternal
	}
	if revoked {
		return "", shared.ErrorInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return "", shared.ErrorInvalidToken
		}
		s.logger.Error(ctx, "refresh lookup failed", "error", err)
		return "", shared.ErrorInternal
	}
	if !user.EmailVerified || !user.IsActive {
		return "", shared.ErrorInvalidToken
	}

	access, err := auth.GenerateAccessToken(user.ID, user.IsAdmin, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", shared.ErrorInternal
	}

	return access, nil
}

// Logout revokes the refresh token by blacklisting its jti for the token's
// remaining validity. A token that is malformed, expired or already revoked
// reports shared.ErrorInvalidToken.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := auth.ParseRefreshToken(refreshToken, s.jwtSecret)
	if err != nil {
		return shared.ErrorInvalidToken
	}

	revoked, err := s.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		s.logger.Error(ctx, "blacklist lookup failed", "error", err)
		return shared.ErrorInternal
	}
	if revoked {
		return shared.ErrorInvalidToken
	}

	if err := s.blacklist.Add(ctx, claims.ID, claims.RemainingValidity()); err != nil {
		s.logger.Error(ctx, "blacklist add failed", "error", err)
		return shared.ErrorInternal
	}

	return nil
}

func (s *Service) generateTokenPair(user *users.User) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(user.ID, user.IsAdmin, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, shared.ErrorInternal
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, shared.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
