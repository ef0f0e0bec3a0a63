package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTokenRoundTrip(t *testing.T) {
	secret := []byte("s3cret")
	token, err := GenerateEventToken(secret, "auth-trigger", time.Minute)
	require.NoError(t, err)

	claims, err := ValidateEventToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "auth-trigger", claims.Subject)
}

func TestValidateEventTokenRejects(t *testing.T) {
	secret := []byte("s3cret")
	expired, err := GenerateEventToken(secret, "auth-trigger", -time.Minute)
	require.NoError(t, err)
	valid, err := GenerateEventToken(secret, "auth-trigger", time.Minute)
	require.NoError(t, err)

	_, err = ValidateEventToken(secret, expired)
	assert.Error(t, err, "expired token")

	_, err = ValidateEventToken([]byte("other"), valid)
	assert.Error(t, err, "wrong secret")

	_, err = ValidateEventToken(nil, valid)
	assert.Error(t, err, "no secret configured")

	_, err = ValidateEventToken(secret, "not-a-token")
	assert.Error(t, err, "garbage")
}
