package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"accountd/internal/shared"
)

// ResetClaims is the payload of password-reset tokens. Fingerprint binds the
// token to the credential state at issuance time: once the password hash
// changes, every outstanding token stops validating. No revocation table
// is needed.
type ResetClaims struct {
	jwt.RegisteredClaims
	UserID      string
	Fingerprint string
}

// StateFingerprint derives the value embedded in reset tokens from the
// user's current password hash.
func StateFingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:])
}

// GenerateResetToken mints a stateless password-reset token for the user.
// Nothing is persisted server-side.
func GenerateResetToken(userID, passwordHash string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, ResetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:      userID,
		Fingerprint: StateFingerprint(passwordHash),
	})

	return token.SignedString(secretKey)
}

// ValidateResetToken checks signature, expiry, the expected user, and that
// the fingerprint still matches the user's current password hash. Any
// failure maps to ErrorInvalidOrExpiredToken; callers must not be able to
// tell the cases apart.
func ValidateResetToken(tokenString, userID, currentPasswordHash string, secretKey []byte) error {
	claims := &ResetClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return shared.ErrorInvalidOrExpiredToken
	}
	if claims.UserID != userID {
		return shared.ErrorInvalidOrExpiredToken
	}
	if claims.Fingerprint != StateFingerprint(currentPasswordHash) {
		return shared.ErrorInvalidOrExpiredToken
	}

	return nil
}

// EncodeUID converts a user id into the urlsafe form carried in reset links.
func EncodeUID(userID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(userID))
}

// DecodeUID reverses EncodeUID.
func DecodeUID(uidb64 string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(uidb64)
	if err != nil {
		return "", shared.ErrorInvalidUID
	}
	return string(raw), nil
}
