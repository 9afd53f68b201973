package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/iudanet/accountkeeper/internal/models"
	"github.com/iudanet/accountkeeper/internal/storage"
)

// ListUsers returns all users in insertion order
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, email, name, hash, salt FROM users ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// CreateUser inserts a new user
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, name, hash, salt)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Mail,
		user.Name,
		user.Hash,
		user.Salt,
	)

	if err != nil {
		// Уникальность name обеспечивает сама БД, предварительная проверка только подсказка
		if isUniqueViolation(err, "users.name") {
			return storage.ErrDuplicateName
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// UserExists reports whether a user with this name exists
func (s *Storage) UserExists(ctx context.Context, name string) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE name = ?)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}

	return exists, nil
}

// GetUser retrieves user by name
func (s *Storage) GetUser(ctx context.Context, name string) (*models.User, error) {
	query := `SELECT id, email, name, hash, salt FROM users WHERE name = ?`

	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	defer rows.Close()

	users, err := scanUsers(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	switch len(users) {
	case 0:
		return nil, storage.ErrUserNotFound
	case 1:
		return users[0], nil
	default:
		return nil, fmt.Errorf("%w: %d users named %q", storage.ErrInvariantViolated, len(users), name)
	}
}

// DeleteUser deletes every user with this name, missing name is not an error
func (s *Storage) DeleteUser(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// UpdatePasswordHash swaps oldHash for newHash in a single transaction
func (s *Storage) UpdatePasswordHash(ctx context.Context, name, oldHash, newHash string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	current, err := readHashes(ctx, tx, name)
	if err != nil {
		return fmt.Errorf("failed to read password hash: %w", err)
	}

	switch len(current) {
	case 0:
		return storage.ErrUserNotFound
	case 1:
	default:
		return fmt.Errorf("%w: %d users named %q", storage.ErrInvariantViolated, len(current), name)
	}

	if current[0] != oldHash {
		return storage.ErrConcurrentModification
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE users SET hash = ? WHERE name = ? AND hash = ?`,
		newHash, name, oldHash,
	)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows != 1 {
		return fmt.Errorf("%w: %d rows updated for %q", storage.ErrInvariantViolated, rows, name)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit password hash: %w", err)
	}

	return nil
}

// CountUsers returns the number of rows in users
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return n, nil
}

// readHashes возвращает хеши всех строк с этим именем внутри транзакции
func readHashes(ctx context.Context, tx *sql.Tx, name string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT hash FROM users WHERE name = ?`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, err
		}
		hashes = append(hashes, hash)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return hashes, nil
}

func scanUsers(rows *sql.Rows) ([]*models.User, error) {
	users := make([]*models.User, 0)

	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Mail, &user.Name, &user.Hash, &user.Salt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение UNIQUE для указанной колонки
func isUniqueViolation(err error, column string) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE &&
		strings.Contains(sqliteErr.Error(), column)
}
