// Package storage provides durable key/value backends for the shopper
// state blob. Every backend holds opaque bytes under a named key, like a
// browser's local storage.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no entry
var ErrNotFound = errors.New("storage: entry not found")

// Storage is a named-entry byte store
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
