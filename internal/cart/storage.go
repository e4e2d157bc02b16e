package cart

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("storage key not found")

// Storage is the durable key-value boundary the cart persists through.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
