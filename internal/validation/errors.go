package validation

import "errors"

var (
	// ErrWeakPassword indicates that password does not satisfy strength policy
	ErrWeakPassword = errors.New("password does not meet requirements")

	// ErrInvalidUsername indicates that username is empty or too short
	ErrInvalidUsername = errors.New("invalid username")

	// ErrInvalidMail indicates that e-mail address failed the format heuristic
	ErrInvalidMail = errors.New("invalid e-mail address")
)
