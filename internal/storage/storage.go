// Package storage persists whole JSON documents under fixed keys. Each store
// reads its document once at startup and rewrites it after every mutation.
package storage

import "errors"

// ErrNotFound is returned by Load when no document has been saved under the key.
var ErrNotFound = errors.New("storage: document not found")

// Storage is a key → document persistence backend.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Close() error
}
