package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinPasswordLen минимальная длина пароля после удаления пробелов по краям
const MinPasswordLen = 12

// SpecialCharacters - символы, один из которых обязан быть в пароле
const SpecialCharacters = ".!@#$%^&*(){};':<>,/?"

// PasswordStrength is the first password policy rule a candidate violates, or Good.
type PasswordStrength int

const (
	PasswordEmpty PasswordStrength = iota
	PasswordTooShort
	PasswordNoCapitals
	PasswordNoLowercase
	PasswordNoDigits
	PasswordNoSpecialCharacters
	PasswordGood
)

// CheckPasswordStrength классифицирует пароль.
// Правила проверяются строго по порядку, возвращается первое нарушенное.
func CheckPasswordStrength(password string) PasswordStrength {
	password = strings.TrimSpace(password)

	switch {
	case password == "":
		return PasswordEmpty
	case utf8.RuneCountInString(password) < MinPasswordLen:
		return PasswordTooShort
	case !strings.ContainsFunc(password, isUpper):
		return PasswordNoCapitals
	case !strings.ContainsFunc(password, isLower):
		return PasswordNoLowercase
	case !strings.ContainsFunc(password, isDigit):
		return PasswordNoDigits
	case !strings.ContainsAny(password, SpecialCharacters):
		return PasswordNoSpecialCharacters
	default:
		return PasswordGood
	}
}

func (s PasswordStrength) String() string {
	switch s {
	case PasswordEmpty:
		return "empty"
	case PasswordTooShort:
		return "too_short"
	case PasswordNoCapitals:
		return "no_capitals"
	case PasswordNoLowercase:
		return "no_lowercase"
	case PasswordNoDigits:
		return "no_digits"
	case PasswordNoSpecialCharacters:
		return "no_special_characters"
	case PasswordGood:
		return "good"
	default:
		return fmt.Sprintf("PasswordStrength(%d)", int(s))
	}
}

// Message returns the text shown to the user next to the password field.
func (s PasswordStrength) Message() string {
	switch s {
	case PasswordEmpty:
		return "The password is empty."
	case PasswordTooShort:
		return fmt.Sprintf("The password is too short (at least %d characters).", MinPasswordLen)
	case PasswordNoCapitals:
		return "The password does not contain capital letters."
	case PasswordNoLowercase:
		return "The password does not contain lowercase letters."
	case PasswordNoDigits:
		return "The password does not contain numbers."
	case PasswordNoSpecialCharacters:
		return "The password does not contain special characters ($, !, @, etc)."
	case PasswordGood:
		return ""
	default:
		return "The password is invalid."
	}
}

// Err returns nil for PasswordGood and a wrapped ErrWeakPassword otherwise.
func (s PasswordStrength) Err() error {
	if s == PasswordGood {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrWeakPassword, s.Message())
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
