package account

import (
	"context"
	"fmt"

	"github.com/iudanet/accountkeeper/internal/crypto"
	"github.com/iudanet/accountkeeper/internal/models"
)

// AuthStatus is the outcome of the authenticate verify step
type AuthStatus int

const (
	AuthAccountNotFound AuthStatus = iota
	AuthPasswordIncorrect
	AuthAuthenticated
)

func (s AuthStatus) String() string {
	switch s {
	case AuthAccountNotFound:
		return "account_not_found"
	case AuthPasswordIncorrect:
		return "password_incorrect"
	case AuthAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("AuthStatus(%d)", int(s))
	}
}

func (s AuthStatus) Message() string {
	switch s {
	case AuthAccountNotFound:
		return "This user does not exist."
	case AuthPasswordIncorrect:
		return "The password is incorrect."
	case AuthAuthenticated:
		return "Authenticated."
	default:
		return ""
	}
}

// AuthResult содержит результат проверки пароля
type AuthResult struct {
	User   *models.User // только для AuthAuthenticated
	Status AuthStatus
}

// Verify проверяет пароль: пересчитывает хеш с сохраненной солью и сравнивает
func (s *Service) Verify(ctx context.Context, name, password string) (AuthResult, error) {
	user, found, err := s.lookup(ctx, name)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return AuthResult{Status: AuthAccountNotFound}, nil
	}

	if !crypto.VerifyHash(password, user.Salt, user.Hash) {
		s.logger.InfoContext(ctx, "authentication failed", "name", name)
		return AuthResult{Status: AuthPasswordIncorrect}, nil
	}

	s.logger.InfoContext(ctx, "authenticated", "name", name)

	return AuthResult{Status: AuthAuthenticated, User: user}, nil
}
