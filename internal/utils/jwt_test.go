package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessToken(t *testing.T) {
	const secret = "test-secret"

	at, err := NewAccessToken(secret, 42, "admin", 15)
	require.NoError(t, err)
	assert.NotEmpty(t, at.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"], "JSON numbers decode as float64")
	assert.Equal(t, "admin", claims["role"])

	// Wrong secret must fail verification.
	_, err = jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
	rt, err := NewRefreshToken(30)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96, "48 random bytes hex-encoded")
	assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), rt.Exp, 5*time.Second)

	other, err := NewRefreshToken(30)
	require.NoError(t, err)
	assert.NotEqual(t, rt.Raw, other.Raw)
}

func TestHashRefreshRaw(t *testing.T) {
	h1 := HashRefreshRaw("token-a")
	h2 := HashRefreshRaw("token-a")
	h3 := HashRefreshRaw("token-b")

	assert.Equal(t, h1, h2, "hashing is deterministic")
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64, "sha256 hex digest")
	assert.NotContains(t, h1, "token", "raw value never appears in the hash")
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2-but-longer", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "hunter2-but-longer"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "hunter2-but-longer"))
}
