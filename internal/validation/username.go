package validation

import (
	"fmt"
	"unicode/utf8"
)

// MinUsernameLen минимальная длина username
const MinUsernameLen = 6

// UsernameStatus is the result of CheckUsername.
type UsernameStatus int

const (
	UsernameEmpty UsernameStatus = iota
	UsernameTooShort
	UsernameGood
)

// CheckUsername проверяет длину username (без проверки уникальности)
func CheckUsername(name string) UsernameStatus {
	switch {
	case name == "":
		return UsernameEmpty
	case utf8.RuneCountInString(name) < MinUsernameLen:
		return UsernameTooShort
	default:
		return UsernameGood
	}
}

func (s UsernameStatus) String() string {
	switch s {
	case UsernameEmpty:
		return "empty"
	case UsernameTooShort:
		return "too_short"
	case UsernameGood:
		return "good"
	default:
		return fmt.Sprintf("UsernameStatus(%d)", int(s))
	}
}

func (s UsernameStatus) Message() string {
	switch s {
	case UsernameEmpty:
		return "The username is empty."
	case UsernameTooShort:
		return fmt.Sprintf("The username is too short (at least %d characters).", MinUsernameLen)
	default:
		return ""
	}
}

func (s UsernameStatus) Err() error {
	if s == UsernameGood {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidUsername, s.Message())
}
