package validation

import (
	"fmt"
	"strings"
)

// MailStatus is the result of CheckMail. The check is a light heuristic,
// not RFC 5322 validation.
type MailStatus int

const (
	MailEmpty MailStatus = iota
	MailMissingAt
	MailMissingDot
	MailGood
)

// CheckMail проверяет наличие '@' и '.' в адресе
func CheckMail(mail string) MailStatus {
	switch {
	case mail == "":
		return MailEmpty
	case !strings.Contains(mail, "@"):
		return MailMissingAt
	case !strings.Contains(mail, "."):
		return MailMissingDot
	default:
		return MailGood
	}
}

func (s MailStatus) String() string {
	switch s {
	case MailEmpty:
		return "empty"
	case MailMissingAt:
		return "missing_at"
	case MailMissingDot:
		return "missing_dot"
	case MailGood:
		return "good"
	default:
		return fmt.Sprintf("MailStatus(%d)", int(s))
	}
}

func (s MailStatus) Message() string {
	switch s {
	case MailEmpty:
		return "The e-mail address is empty."
	case MailMissingAt:
		return "The e-mail address does not contain '@'."
	case MailMissingDot:
		return "The e-mail address does not contain a dot."
	default:
		return ""
	}
}

func (s MailStatus) Err() error {
	if s == MailGood {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidMail, s.Message())
}
