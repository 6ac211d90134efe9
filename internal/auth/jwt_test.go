package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseJWT(t *testing.T) {
	token, err := SignJWT("01HZXW5N9GQ4T8RJX2M3K7V0YA", "test-secret", 24*time.Hour)
	require.NoError(t, err)
	assert.Greater(t, len(token), 20)

	uid, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "01HZXW5N9GQ4T8RJX2M3K7V0YA", uid)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := SignJWT("u1", "secret-a", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret-b")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := SignJWT("u1", "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWT_Malformed(t *testing.T) {
	for _, tok := range []string{"", "garbage", "not.a.jwt"} {
		_, err := ParseJWT(tok, "test-secret")
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}
