// Package password wraps bcrypt hashing for user credentials. The digest is
// treated as opaque everywhere else in the server.
package password

import "golang.org/x/crypto/bcrypt"

// MinLength is the policy floor enforced before any credential write.
const MinLength = 8

// Hash derives a bcrypt digest from the plaintext password.
func Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether the plaintext password matches the stored digest.
func Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidPolicy reports whether the password satisfies the minimum-length
// policy. Checked before side effects in registration and reset flows.
func ValidPolicy(password string) bool {
	return len(password) >= MinLength
}
