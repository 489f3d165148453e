package storage

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var documentsBucket = []byte("documents")

// Bolt stores documents in a single local bolt file, one key per document.
type Bolt struct {
	DB *bolt.DB
}

// NewBolt opens (or creates) the bolt file at path.
func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt file %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(documentsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create documents bucket: %w", err)
	}

	return &Bolt{DB: db}, nil
}

func (b *Bolt) Load(key string) ([]byte, error) {
	var data []byte
	err := b.DB.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(documentsBucket).Get([]byte(key))
		if value == nil {
			return ErrNotFound
		}
		// bolt values are only valid inside the transaction.
		data = append([]byte(nil), value...)
		return nil
	})
	return data, err
}

func (b *Bolt) Save(key string, data []byte) error {
	return b.DB.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(documentsBucket).Put([]byte(key), data)
	})
}

// Close the bolt database and release the file lock
func (b *Bolt) Close() error {
	return b.DB.Close()
}
