package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseToken(t *testing.T) {
	claims := &TokenClaims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       "abc123",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := SignToken(claims, "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	parsed, err := ParseToken(signed, "test-secret")
	require.NoError(t, err)
	assert.True(t, parsed.IsAdmin)
	assert.Equal(t, "abc123", parsed.ID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	signed, err := SignToken(&TokenClaims{}, "right-secret")
	require.NoError(t, err)

	_, err = ParseToken(signed, "wrong-secret")
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-jwt", "secret")
	assert.Error(t, err)
}

func TestSignToken_EmptySecret(t *testing.T) {
	_, err := SignToken(&TokenClaims{}, "")
	assert.Error(t, err)
}
