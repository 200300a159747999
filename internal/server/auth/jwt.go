// Package auth issues and validates the signed tokens accountd relies on:
// HS256 access tokens, refresh tokens carrying a blacklist id (jti), and
// stateless password-reset tokens bound to the current credential state.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"accountd/internal/shared"
)

// Claims carries the standard claims plus the accountd user identity and
// role flag embedded in access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string
	IsAdmin bool
}

// RefreshClaims is the payload of refresh tokens. The registered ID (jti)
// is the handle the blacklist keys on.
type RefreshClaims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateAccessToken mints a short-lived HS256 access token.
func GenerateAccessToken(userID string, isAdmin bool, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:  userID,
		IsAdmin: isAdmin,
	})

	return token.SignedString(secretKey)
}

// ParseAccessToken validates the signature and expiry and returns the
// embedded claims.
func ParseAccessToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, shared.ErrorInvalidToken
	}
	if !token.Valid {
		return nil, shared.ErrorInvalidToken
	}

	return claims, nil
}

// GenerateRefreshToken mints a long-lived HS256 refresh token with a fresh
// jti. The jti, not the token string, is what logout blacklists.
func GenerateRefreshToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

// ParseRefreshToken validates the signature and expiry and returns the
// refresh claims. The caller still has to consult the blacklist.
func ParseRefreshToken(tokenString string, secretKey []byte) (*RefreshClaims, error) {
	claims := &RefreshClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, shared.ErrorInvalidToken
	}
	if !token.Valid || claims.ID == "" {
		return nil, shared.ErrorInvalidToken
	}

	return claims, nil
}

// RemainingValidity returns how long the refresh claims stay valid from now.
// Zero when already expired.
func (c *RefreshClaims) RemainingValidity() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	d := time.Until(c.ExpiresAt.Time)
	if d < 0 {
		return 0
	}
	return d
}
