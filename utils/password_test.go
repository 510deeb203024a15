package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_StoresNonPlaintext(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery staple", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2"), "expected a bcrypt hash, got %q", hashed)
	assert.NotContains(t, hashed, "correct horse")

	assert.NoError(t, CheckPassword(hashed, "correct horse battery staple"))
}

func TestCheckPassword_WrongPasswordRejected(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.Error(t, CheckPassword(hashed, "wrong horse battery staple"))
	assert.Error(t, CheckPassword(hashed, ""))
}
