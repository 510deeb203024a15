package utils

import (
	"errors"
	"regexp"
	"strings"
)

var mobileRegex = regexp.MustCompile(`^\d{11}$`)

// Registration rules. The email check is deliberately loose: an
// address only has to contain an "@".

// ValidateEmail checks the email shape
func ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return errors.New("Invalid email format")
	}
	return nil
}

// ValidateMobileNo requires exactly 11 digits
func ValidateMobileNo(mobileNo string) error {
	if !mobileRegex.MatchString(mobileNo) {
		return errors.New("Mobile number is invalid")
	}
	return nil
}

// ValidatePassword requires a minimum length of 8 characters
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters long")
	}
	return nil
}
