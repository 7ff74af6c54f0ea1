package crypto

import (
	"errors"
	"strings"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"

	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 128 characters")
	ErrPasswordNoUpper  = errors.New("password must contain an uppercase letter")
	ErrPasswordNoLower  = errors.New("password must contain a lowercase letter")
	ErrPasswordNoNumber = errors.New("password must contain a number")
)

// CheckPassword reports the first policy rule a new password breaks. It runs
// before register and reset-password requests leave the portal.
func CheckPassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if !strings.ContainsAny(password, uppercaseChars) {
		return ErrPasswordNoUpper
	}
	if !strings.ContainsAny(password, lowercaseChars) {
		return ErrPasswordNoLower
	}
	if !strings.ContainsAny(password, numberChars) {
		return ErrPasswordNoNumber
	}
	return nil
}
