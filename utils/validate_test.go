package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("jane@example.com"))
	assert.NoError(t, ValidateEmail("a@b"))
	assert.Error(t, ValidateEmail("janeexample.com"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidateMobileNo(t *testing.T) {
	assert.NoError(t, ValidateMobileNo("09171234567"))
	assert.Error(t, ValidateMobileNo("0917123456"), "10 digits")
	assert.Error(t, ValidateMobileNo("091712345678"), "12 digits")
	assert.Error(t, ValidateMobileNo("0917123456a"), "non-digit")
	assert.Error(t, ValidateMobileNo(""))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.NoError(t, ValidatePassword("a much longer passphrase"))
	assert.Error(t, ValidatePassword("1234567"))
	assert.Error(t, ValidatePassword(""))
}
