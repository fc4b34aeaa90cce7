package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParseJWT(t *testing.T) {
	principal := &Principal{AdminID: "7e0b5a0e-1111-2222-3333-444455556666", Email: "admin@bowlandbrothsociety.com"}

	token, err := SignJWT("test-secret", principal, time.Hour)
	require.NoError(t, err)

	claims, err := ParseAndValidate("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, principal.AdminID, claims.AdminID)
	assert.Equal(t, principal.Email, claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "orderbbs", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := SignJWT("right-secret", &Principal{AdminID: "x"}, time.Hour)
	require.NoError(t, err)

	_, err = ParseAndValidate("wrong-secret", token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := SignJWT("test-secret", &Principal{AdminID: "x"}, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAndValidate("test-secret", token)
	assert.Error(t, err)
}
