package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, h)
	assert.NotEqual(t, "correct horse battery", h)

	assert.True(t, Verify(h, "correct horse battery"))
	assert.False(t, Verify(h, "wrong password"))
	assert.False(t, Verify("not-a-bcrypt-hash", "correct horse battery"))
}

func TestHash_DifferentSaltsPerCall(t *testing.T) {
	h1, err := Hash("samepassword")
	require.NoError(t, err)
	h2, err := Hash("samepassword")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestValidPolicy(t *testing.T) {
	assert.False(t, ValidPolicy(""))
	assert.False(t, ValidPolicy("short"))
	assert.False(t, ValidPolicy("1234567"))
	assert.True(t, ValidPolicy("12345678"))
	assert.True(t, ValidPolicy("a perfectly fine passphrase"))
}
