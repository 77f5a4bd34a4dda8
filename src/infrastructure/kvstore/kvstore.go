package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no document exists under the requested key.
var ErrNotFound = errors.New("not found")

// Store persists named JSON documents. The repository keeps its whole order
// collection under a single key, so Get and Set move one document at a time.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
