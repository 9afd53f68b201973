package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/accountkeeper/internal/storage"
)

var (
	// BoltDB bucket names
	bucketUsers = []byte("users")
	bucketNames = []byte("names")
)

// openTimeout ограничивает ожидание file lock, если файл открыт другим процессом
const openTimeout = time.Second

// Storage represents BoltDB storage implementation
type Storage struct {
	db *bbolt.DB
}

var _ storage.AccountStore = (*Storage)(nil)

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open boltdb: %w", storage.ErrStorageUnavailable, err)
	}

	s := &Storage{db: db}

	if err := s.Initialize(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Initialize создает необходимые buckets если они не существуют
func (s *Storage) Initialize(ctx context.Context) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketUsers); err != nil {
			return fmt.Errorf("failed to create users bucket: %w", err)
		}

		if _, err := tx.CreateBucketIfNotExists(bucketNames); err != nil {
			return fmt.Errorf("failed to create names bucket: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorageUnavailable, err)
	}

	return nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
