// internal/history/bolt.go
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketRecords = []byte("records")

// BoltStore implements Store using BoltDB.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if needed) the journal at path.
func NewBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRecords); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketRecords, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Create stores a new record. An empty ID is assigned.
func (s *BoltStore) Create(ctx context.Context, r *Record) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	return s.db.Update(func(btx *bolt.Tx) error {
		b := btx.Bucket(bucketRecords)
		if b == nil {
			return fmt.Errorf("records bucket not found")
		}

		key := []byte(r.ID)
		if b.Get(key) != nil {
			return ErrAlreadyExists
		}

		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// Get retrieves a record by ID.
func (s *BoltStore) Get(ctx context.Context, id string) (*Record, error) {
	var r Record
	err := s.db.View(func(btx *bolt.Tx) error {
		b := btx.Bucket(bucketRecords)
		if b == nil {
			return &NotFoundError{ID: id}
		}

		data := b.Get([]byte(id))
		if data == nil {
			return &NotFoundError{ID: id}
		}
		return json.Unmarshal(data, &r)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// List walks the records from newest to oldest.
func (s *BoltStore) List(ctx context.Context, opts ListOptions) ([]*Record, error) {
	var records []*Record

	err := s.db.View(func(btx *bolt.Tx) error {
		b := btx.Bucket(bucketRecords)
		if b == nil {
			return nil
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if opts.Limit > 0 && len(records) >= opts.Limit {
				break
			}

			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("failed to decode record %s: %w", k, err)
			}
			if !opts.matches(&r) {
				continue
			}
			records = append(records, &r)
		}
		return nil
	})

	return records, err
}

var _ Store = (*BoltStore)(nil)
