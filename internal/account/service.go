// Package account implements the create, authenticate, reset and delete
// workflows on top of an AccountStore. Each step takes and returns plain
// values; the caller threads them through its own UI state.
package account

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/iudanet/accountkeeper/internal/models"
	"github.com/iudanet/accountkeeper/internal/storage"
)

var (
	// ErrResetNotAllowed indicates that reset was requested without a ready ticket
	ErrResetNotAllowed = errors.New("password reset not allowed")

	// ErrDeleteNotAllowed indicates that delete was requested without a verified ticket
	ErrDeleteNotAllowed = errors.New("delete not allowed")
)

// Service предоставляет операции над аккаунтами
type Service struct {
	store  storage.AccountStore
	logger *slog.Logger

	// один писатель: create/reset/delete выполняются по очереди
	mu sync.Mutex
}

// NewService создает новый сервис аккаунтов
func NewService(store storage.AccountStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Service{
		store:  store,
		logger: logger,
	}
}

// List returns all accounts
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}

// Count returns the number of accounts
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.CountUsers(ctx)
}

// Exists reports whether the name is taken. Advisory only: Create relies on the
// storage uniqueness constraint.
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	return s.store.UserExists(ctx, name)
}

// lookup reports found=false when the account does not exist
func (s *Service) lookup(ctx context.Context, name string) (*models.User, bool, error) {
	user, err := s.store.GetUser(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.DebugContext(ctx, "account lookup miss", "name", name)
			return nil, false, nil
		}
		return nil, false, err
	}

	return user, true, nil
}
