package boltdb

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/accountkeeper/internal/models"
	"github.com/iudanet/accountkeeper/internal/storage"
)

// Ключи в bucket users - big-endian sequence, поэтому курсор отдает записи в порядке вставки.
// Bucket names - индекс name -> ключ записи.

// ListUsers returns all users in insertion order
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, _, err := buckets(tx)
		if err != nil {
			return err
		}

		return bucket.ForEach(func(_, v []byte) error {
			user, err := decodeUser(v)
			if err != nil {
				return err
			}
			users = append(users, user)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// CreateUser inserts a new user, uniqueness is checked inside the write transaction
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		users, names, err := buckets(tx)
		if err != nil {
			return err
		}

		if names.Get([]byte(user.Name)) != nil {
			return storage.ErrDuplicateName
		}

		seq, err := users.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate key: %w", err)
		}
		key := sequenceKey(seq)

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}

		if err := users.Put(key, data); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		if err := names.Put([]byte(user.Name), key); err != nil {
			return fmt.Errorf("failed to index user name: %w", err)
		}

		return nil
	})
}

// UserExists reports whether a user with this name exists
func (s *Storage) UserExists(ctx context.Context, name string) (bool, error) {
	var exists bool

	err := s.db.View(func(tx *bbolt.Tx) error {
		_, names, err := buckets(tx)
		if err != nil {
			return err
		}
		exists = names.Get([]byte(name)) != nil
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}

	return exists, nil
}

// GetUser retrieves user by name through the names index
func (s *Storage) GetUser(ctx context.Context, name string) (*models.User, error) {
	var user *models.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		user, _, err = lookup(tx, name)
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser deletes every user with this name, missing name is not an error
func (s *Storage) DeleteUser(ctx context.Context, name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		users, names, err := buckets(tx)
		if err != nil {
			return err
		}

		// Полный проход: удаляем и записи, на которые индекс уже не ссылается
		var keys [][]byte
		err = users.ForEach(func(k, v []byte) error {
			user, err := decodeUser(v)
			if err != nil {
				return err
			}
			if user.Name == name {
				keys = append(keys, bytes.Clone(k))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range keys {
			if err := users.Delete(k); err != nil {
				return fmt.Errorf("failed to delete user: %w", err)
			}
		}

		if err := names.Delete([]byte(name)); err != nil {
			return fmt.Errorf("failed to delete user name: %w", err)
		}

		return nil
	})
}

// UpdatePasswordHash swaps oldHash for newHash in a single write transaction
func (s *Storage) UpdatePasswordHash(ctx context.Context, name, oldHash, newHash string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		user, key, err := lookup(tx, name)
		if err != nil {
			return err
		}

		if user.Hash != oldHash {
			return storage.ErrConcurrentModification
		}
		user.Hash = newHash

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}

		users, _, err := buckets(tx)
		if err != nil {
			return err
		}

		if err := users.Put(key, data); err != nil {
			return fmt.Errorf("failed to update password hash: %w", err)
		}

		return nil
	})
}

// CountUsers returns the number of stored users
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	var n int

	err := s.db.View(func(tx *bbolt.Tx) error {
		users, _, err := buckets(tx)
		if err != nil {
			return err
		}
		n = users.Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return n, nil
}

func buckets(tx *bbolt.Tx) (users, names *bbolt.Bucket, err error) {
	users = tx.Bucket(bucketUsers)
	if users == nil {
		return nil, nil, fmt.Errorf("users bucket not found")
	}

	names = tx.Bucket(bucketNames)
	if names == nil {
		return nil, nil, fmt.Errorf("names bucket not found")
	}

	return users, names, nil
}

// lookup находит запись по индексу и проверяет, что индекс с ней согласован
func lookup(tx *bbolt.Tx, name string) (*models.User, []byte, error) {
	users, names, err := buckets(tx)
	if err != nil {
		return nil, nil, err
	}

	key := names.Get([]byte(name))
	if key == nil {
		return nil, nil, storage.ErrUserNotFound
	}

	data := users.Get(key)
	if data == nil {
		return nil, nil, fmt.Errorf("%w: name %q points to a missing record", storage.ErrInvariantViolated, name)
	}

	user, err := decodeUser(data)
	if err != nil {
		return nil, nil, err
	}

	if user.Name != name {
		return nil, nil, fmt.Errorf("%w: name %q points to record of %q", storage.ErrInvariantViolated, name, user.Name)
	}

	return user, bytes.Clone(key), nil
}

func decodeUser(data []byte) (*models.User, error) {
	user := &models.User{}
	if err := json.Unmarshal(data, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return user, nil
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
