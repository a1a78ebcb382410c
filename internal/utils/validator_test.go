// internal/utils/validator_test.go
package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidAccount(t *testing.T) {
	valid := []string{
		"acct:alice",
		"0x52908400098527886E0F7030069857D2E4169EE7",
		"seller_01",
		"abc",
	}
	for _, account := range valid {
		assert.True(t, ValidAccount(account), account)
	}

	invalid := []string{
		"",
		"ab",
		"has space",
		"bad/char",
		strings.Repeat("a", 129),
	}
	for _, account := range invalid {
		assert.False(t, ValidAccount(account), account)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT("acct:alice", "trader", 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "acct:alice", claims.Account)
	assert.Equal(t, "trader", claims.Role)

	// A token signed under a different secret is rejected.
	SetJWTSecret("rotated-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}
